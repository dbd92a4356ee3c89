// Package memory keeps vehicles and sales in process memory. It is the
// default backend and the one the service tests run against.
package memory

import (
	"context"
	"sync"

	"api_vehicles/internal/sales"
	"api_vehicles/internal/vehicles"
)

type txKey struct{}

// Store holds both collections behind one lock so a transaction can span
// them.
type Store struct {
	mu sync.RWMutex

	vehicles      map[int64]*vehicles.Vehicle
	sales         map[int64]*sales.Sale
	lastVehicleID int64
	lastSaleID    int64
}

// NewStore instantiates a new Store with empty maps.
func NewStore() *Store {
	return &Store{
		vehicles: map[int64]*vehicles.Vehicle{},
		sales:    map[int64]*sales.Sale{},
	}
}

// Vehicles returns the vehicle gateway backed by this store.
func (s *Store) Vehicles() *VehicleStorage {
	return &VehicleStorage{s: s}
}

// Sales returns the sale gateway backed by this store.
func (s *Store) Sales() *SaleStorage {
	return &SaleStorage{s: s}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// WithTransaction holds the write lock while fn runs. Storage calls made
// with the context handed to fn skip their own locking. If fn fails the
// collections are restored to what they were before.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	vehicles      map[int64]*vehicles.Vehicle
	sales         map[int64]*sales.Sale
	lastVehicleID int64
	lastSaleID    int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		vehicles:      make(map[int64]*vehicles.Vehicle, len(s.vehicles)),
		sales:         make(map[int64]*sales.Sale, len(s.sales)),
		lastVehicleID: s.lastVehicleID,
		lastSaleID:    s.lastSaleID,
	}
	for id, v := range s.vehicles {
		snap.vehicles[id] = cloneVehicle(v)
	}
	for id, sale := range s.sales {
		snap.sales[id] = cloneSale(sale)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.vehicles = snap.vehicles
	s.sales = snap.sales
	s.lastVehicleID = snap.lastVehicleID
	s.lastSaleID = snap.lastSaleID
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func cloneVehicle(v *vehicles.Vehicle) *vehicles.Vehicle {
	c := *v
	return &c
}

func cloneSale(sale *sales.Sale) *sales.Sale {
	c := *sale
	return &c
}
