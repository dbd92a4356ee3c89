package vehicles

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"api_vehicles/internal/shared"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the stock state of a vehicle.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusSold      Status = "SOLD"
)

const minYear = 1900

// ParseStatus accepts AVAILABLE or SOLD in any case.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusSold:
		return StatusSold, nil
	}
	return "", shared.NewValidationError("INVALID_VEHICLE_STATUS", "invalid vehicle status %q", s)
}

// Vehicle represents a vehicle in stock.
type Vehicle struct {
	ID        int64
	Brand     string
	Model     string
	Year      int
	Color     string
	Price     decimal.Decimal
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleInput carries the fields needed to register a vehicle.
type VehicleInput struct {
	Brand string
	Model string
	Year  int
	Color string
	Price decimal.Decimal
}

// VehicleUpdate carries the fields to change. Nil fields are left as they are.
type VehicleUpdate struct {
	Brand *string
	Model *string
	Year  *int
	Color *string
	Price *decimal.Decimal
}

// NewVehicle validates and normalizes its inputs and returns an AVAILABLE
// vehicle without an ID.
func NewVehicle(brand, model string, year int, color string, price decimal.Decimal) (*Vehicle, error) {
	v := &Vehicle{Status: StatusAvailable}
	var err error
	if v.Brand, err = normalizeBrand(brand); err != nil {
		return nil, err
	}
	if v.Model, err = normalizeModel(model); err != nil {
		return nil, err
	}
	if v.Year, err = validateYear(year, time.Now()); err != nil {
		return nil, err
	}
	if v.Color, err = normalizeColor(color); err != nil {
		return nil, err
	}
	if v.Price, err = shared.ValidateMoney("INVALID_PRICE", "price", price); err != nil {
		return nil, err
	}

	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	return v, nil
}

// IsAvailable reports whether the vehicle can still be edited or sold.
func (v *Vehicle) IsAvailable() bool {
	return v.Status == StatusAvailable
}

// MarkSold moves an available vehicle to SOLD.
func (v *Vehicle) MarkSold() error {
	if !v.IsAvailable() {
		return shared.NewInvalidStateError("VEHICLE_NOT_AVAILABLE", "vehicle %d is not available", v.ID)
	}
	v.Status = StatusSold
	v.UpdatedAt = time.Now()
	return nil
}

// Edit applies the update. Every provided field is validated before any of
// them is written, so a failed edit leaves the vehicle untouched.
func (v *Vehicle) Edit(u VehicleUpdate) error {
	if !v.IsAvailable() {
		return shared.NewInvalidStateError("VEHICLE_NOT_AVAILABLE", "vehicle %d is sold and cannot be edited", v.ID)
	}

	next := *v
	var err error
	if u.Brand != nil {
		if next.Brand, err = normalizeBrand(*u.Brand); err != nil {
			return err
		}
	}
	if u.Model != nil {
		if next.Model, err = normalizeModel(*u.Model); err != nil {
			return err
		}
	}
	if u.Year != nil {
		if next.Year, err = validateYear(*u.Year, time.Now()); err != nil {
			return err
		}
	}
	if u.Color != nil {
		if next.Color, err = normalizeColor(*u.Color); err != nil {
			return err
		}
	}
	if u.Price != nil {
		if next.Price, err = shared.ValidateMoney("INVALID_PRICE", "price", *u.Price); err != nil {
			return err
		}
	}

	next.UpdatedAt = time.Now()
	*v = next
	return nil
}

func normalizeBrand(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < 2 || n > 50 {
		return "", shared.NewValidationError("INVALID_BRAND", "brand must have between 2 and 50 characters")
	}
	if !onlyRunes(s, unicode.IsLetter, unicode.IsDigit, unicode.IsSpace) {
		return "", shared.NewValidationError("INVALID_BRAND", "brand must contain only letters, digits and spaces")
	}
	return titleCase(s), nil
}

func normalizeModel(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < 1 || n > 100 {
		return "", shared.NewValidationError("INVALID_MODEL", "model must have between 1 and 100 characters")
	}
	return titleCase(s), nil
}

func normalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < 3 || n > 30 {
		return "", shared.NewValidationError("INVALID_COLOR", "color must have between 3 and 30 characters")
	}
	if !onlyRunes(s, unicode.IsLetter, unicode.IsSpace) {
		return "", shared.NewValidationError("INVALID_COLOR", "color must contain only letters and spaces")
	}
	return titleCase(s), nil
}

func validateYear(year int, now time.Time) (int, error) {
	if latest := now.Year() + 1; year < minYear || year > latest {
		return 0, shared.NewValidationError("INVALID_YEAR", "year must be between %d and %d", minYear, latest)
	}
	return year, nil
}

func onlyRunes(s string, allowed ...func(rune) bool) bool {
	for _, r := range s {
		ok := false
		for _, fn := range allowed {
			if fn(r) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Casers keep state and must not be shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
