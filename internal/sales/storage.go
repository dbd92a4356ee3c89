package sales

import "context"

// Storage is the persistence gateway for sales. Lookups return a
// shared.NotFoundError when nothing matches.
type Storage interface {
	FindByID(ctx context.Context, id int64) (*Sale, error)
	FindByPaymentCode(ctx context.Context, code string) (*Sale, error)
	FindByVehicleID(ctx context.Context, vehicleID int64) (*Sale, error)
	// Save inserts the sale when its ID is zero, assigning one, and
	// overwrites it otherwise.
	Save(ctx context.Context, sale *Sale) error
	// List returns every sale ordered by ID.
	List(ctx context.Context) ([]*Sale, error)
	// TransitionPaymentStatus persists sale.PaymentStatus only if the stored
	// status is still from. applied is false when another writer got there
	// first.
	TransitionPaymentStatus(ctx context.Context, sale *Sale, from PaymentStatus) (applied bool, err error)
}
