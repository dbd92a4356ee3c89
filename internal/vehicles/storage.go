package vehicles

import "context"

// Storage is the persistence gateway for vehicles. FindByID returns a
// shared.NotFoundError when the vehicle does not exist.
type Storage interface {
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	// Save inserts the vehicle when its ID is zero, assigning one, and
	// overwrites it otherwise.
	Save(ctx context.Context, vehicle *Vehicle) error
	// ListByStatus returns every vehicle in the given status, in no
	// particular order.
	ListByStatus(ctx context.Context, status Status) ([]*Vehicle, error)
	// List returns every vehicle ordered by ID.
	List(ctx context.Context) ([]*Vehicle, error)
	// MarkSold flips the stored vehicle to SOLD only if it is still
	// AVAILABLE. It returns a shared.InvalidStateError when it is not and a
	// shared.NotFoundError when the vehicle does not exist.
	MarkSold(ctx context.Context, id int64) error
}
