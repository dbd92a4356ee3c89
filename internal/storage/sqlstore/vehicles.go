package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"api_vehicles/internal/shared"
	"api_vehicles/internal/vehicles"

	"gorm.io/gorm"
)

// VehicleRepository implements vehicles.Storage using GORM
type VehicleRepository struct {
	db *DB
}

var _ vehicles.Storage = (*VehicleRepository)(nil)

// FindByID finds a vehicle by ID
func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicles.Vehicle, error) {
	var m VehicleModel
	if err := r.db.conn(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("VEHICLE_NOT_FOUND", "vehicle %d not found", id)
		}
		return nil, fmt.Errorf("find vehicle %d: %w", id, err)
	}
	return m.ToDomain(), nil
}

// Save inserts a new vehicle or updates an existing one. An update never
// changes the status: it only applies while the stored status still matches.
func (r *VehicleRepository) Save(ctx context.Context, v *vehicles.Vehicle) error {
	m := VehicleModelFromDomain(v)
	if v.ID == 0 {
		if err := r.db.conn(ctx).Create(m).Error; err != nil {
			return fmt.Errorf("insert vehicle: %w", err)
		}
		v.ID = m.ID
		return nil
	}

	result := r.db.conn(ctx).Model(m).
		Where("status = ?", string(v.Status)).
		Select("*").Omit("created_at").
		Updates(m)
	if result.Error != nil {
		return fmt.Errorf("update vehicle %d: %w", v.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return r.notUpdated(ctx, v.ID)
	}
	return nil
}

// ListByStatus returns every vehicle in the given status
func (r *VehicleRepository) ListByStatus(ctx context.Context, status vehicles.Status) ([]*vehicles.Vehicle, error) {
	var models []VehicleModel
	if err := r.db.conn(ctx).Where("status = ?", string(status)).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list %s vehicles: %w", status, err)
	}
	return vehiclesToDomain(models), nil
}

// List returns every vehicle ordered by ID
func (r *VehicleRepository) List(ctx context.Context) ([]*vehicles.Vehicle, error) {
	var models []VehicleModel
	if err := r.db.conn(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehiclesToDomain(models), nil
}

// MarkSold flips the vehicle to SOLD only while it is still AVAILABLE.
func (r *VehicleRepository) MarkSold(ctx context.Context, id int64) error {
	result := r.db.conn(ctx).Model(&VehicleModel{}).
		Where("id = ? AND status = ?", id, string(vehicles.StatusAvailable)).
		Update("status", string(vehicles.StatusSold))
	if result.Error != nil {
		return fmt.Errorf("mark vehicle %d sold: %w", id, result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}
	return r.notUpdated(ctx, id)
}

// notUpdated explains a conditional update that matched no row.
func (r *VehicleRepository) notUpdated(ctx context.Context, id int64) error {
	var count int64
	if err := r.db.conn(ctx).Model(&VehicleModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check vehicle %d: %w", id, err)
	}
	if count == 0 {
		return shared.NewNotFoundError("VEHICLE_NOT_FOUND", "vehicle %d not found", id)
	}
	return shared.NewInvalidStateError("VEHICLE_NOT_AVAILABLE", "vehicle %d is not available", id)
}

func vehiclesToDomain(models []VehicleModel) []*vehicles.Vehicle {
	out := make([]*vehicles.Vehicle, len(models))
	for i := range models {
		out[i] = models[i].ToDomain()
	}
	return out
}
