package memory

import (
	"context"
	"sort"

	"api_vehicles/internal/shared"
	"api_vehicles/internal/vehicles"
)

// VehicleStorage implements vehicles.Storage. Callers always get copies, so
// mutating a returned vehicle does not touch the store until Save.
type VehicleStorage struct {
	s *Store
}

var _ vehicles.Storage = (*VehicleStorage)(nil)

func (r *VehicleStorage) FindByID(ctx context.Context, id int64) (*vehicles.Vehicle, error) {
	defer r.s.rlock(ctx)()

	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, shared.NewNotFoundError("VEHICLE_NOT_FOUND", "vehicle %d not found", id)
	}
	return cloneVehicle(v), nil
}

func (r *VehicleStorage) Save(ctx context.Context, v *vehicles.Vehicle) error {
	defer r.s.lock(ctx)()

	if v.ID == 0 {
		r.s.lastVehicleID++
		v.ID = r.s.lastVehicleID
		r.s.vehicles[v.ID] = cloneVehicle(v)
		return nil
	}

	stored, ok := r.s.vehicles[v.ID]
	if !ok {
		return shared.NewNotFoundError("VEHICLE_NOT_FOUND", "vehicle %d not found", v.ID)
	}
	// status only moves through MarkSold
	if stored.Status != v.Status {
		return shared.NewInvalidStateError("VEHICLE_NOT_AVAILABLE", "vehicle %d is not available", v.ID)
	}
	r.s.vehicles[v.ID] = cloneVehicle(v)
	return nil
}

func (r *VehicleStorage) ListByStatus(ctx context.Context, status vehicles.Status) ([]*vehicles.Vehicle, error) {
	defer r.s.rlock(ctx)()

	out := make([]*vehicles.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		if v.Status == status {
			out = append(out, cloneVehicle(v))
		}
	}
	return out, nil
}

func (r *VehicleStorage) List(ctx context.Context) ([]*vehicles.Vehicle, error) {
	defer r.s.rlock(ctx)()

	out := make([]*vehicles.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		out = append(out, cloneVehicle(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *VehicleStorage) MarkSold(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	v, ok := r.s.vehicles[id]
	if !ok {
		return shared.NewNotFoundError("VEHICLE_NOT_FOUND", "vehicle %d not found", id)
	}
	stored := cloneVehicle(v)
	if err := stored.MarkSold(); err != nil {
		return err
	}
	r.s.vehicles[id] = stored
	return nil
}
