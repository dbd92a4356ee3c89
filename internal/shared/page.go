package shared

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Page selects a window of an ordered listing. The zero value means
// "everything".
type Page struct {
	Number int
	Size   int
}

// NewPage validates page and size.
func NewPage(number, size int) (Page, error) {
	if number < 1 {
		return Page{}, NewValidationError("INVALID_PAGE", "page must be at least 1")
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, NewValidationError("INVALID_PAGE_SIZE", "size must be between 1 and %d", MaxPageSize)
	}
	return Page{Number: number, Size: size}, nil
}

// Apply returns the slice of items that falls inside the page.
func Apply[T any](items []T, p Page) []T {
	if p.Size == 0 {
		return items
	}
	// compare page indexes so huge page numbers cannot overflow the offset
	if pages := (len(items) + p.Size - 1) / p.Size; p.Number-1 >= pages {
		return []T{}
	}
	start := (p.Number - 1) * p.Size
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
