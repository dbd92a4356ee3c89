// Package shared holds the pieces every business package depends on: the
// error taxonomy, the transaction boundary and pagination.
package shared

import "context"

// TxManager runs fn as a single unit of work. Storage calls made with the
// context passed to fn take part in the same transaction; if fn returns an
// error nothing it wrote is kept.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
