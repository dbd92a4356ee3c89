package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"api_vehicles/internal/sales"
	"api_vehicles/internal/shared"

	"gorm.io/gorm"
)

// SaleRepository implements sales.Storage using GORM
type SaleRepository struct {
	db *DB
}

var _ sales.Storage = (*SaleRepository)(nil)

func (r *SaleRepository) findOne(ctx context.Context, notFound *shared.DomainError, query string, args ...any) (*sales.Sale, error) {
	var m SaleModel
	if err := r.db.conn(ctx).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find sale: %w", err)
	}
	return m.ToDomain(), nil
}

// FindByID finds a sale by ID
func (r *SaleRepository) FindByID(ctx context.Context, id int64) (*sales.Sale, error) {
	return r.findOne(ctx, shared.NewNotFoundError("SALE_NOT_FOUND", "sale %d not found", id), "id = ?", id)
}

// FindByPaymentCode finds a sale by its external payment reference
func (r *SaleRepository) FindByPaymentCode(ctx context.Context, code string) (*sales.Sale, error) {
	return r.findOne(ctx, shared.NewNotFoundError("SALE_NOT_FOUND", "no sale with payment code %q", code), "payment_code = ?", code)
}

// FindByVehicleID finds the sale recorded for a vehicle
func (r *SaleRepository) FindByVehicleID(ctx context.Context, vehicleID int64) (*sales.Sale, error) {
	return r.findOne(ctx, shared.NewNotFoundError("SALE_NOT_FOUND", "no sale for vehicle %d", vehicleID), "vehicle_id = ?", vehicleID)
}

// Save inserts a new sale or updates an existing one
func (r *SaleRepository) Save(ctx context.Context, s *sales.Sale) error {
	m := SaleModelFromDomain(s)
	if s.ID == 0 {
		if err := r.db.conn(ctx).Create(m).Error; err != nil {
			if err := r.duplicateError(s, err); err != nil {
				return err
			}
			return fmt.Errorf("insert sale: %w", err)
		}
		s.ID = m.ID
		return nil
	}

	result := r.db.conn(ctx).Model(m).Select("*").Omit("created_at").Updates(m)
	if result.Error != nil {
		if err := r.duplicateError(s, result.Error); err != nil {
			return err
		}
		return fmt.Errorf("update sale %d: %w", s.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("SALE_NOT_FOUND", "sale %d not found", s.ID)
	}
	return nil
}

// duplicateError maps a unique violation to the domain error of the index
// it hit, or returns nil when err is something else.
func (r *SaleRepository) duplicateError(s *sales.Sale, err error) error {
	switch r.db.uniqueViolation(err, "vehicle_id", "payment_code") {
	case "vehicle_id":
		return shared.NewInvalidStateError("VEHICLE_ALREADY_SOLD", "vehicle %d already has a sale", s.VehicleID)
	case "payment_code":
		return shared.NewInvalidStateError("PAYMENT_CODE_IN_USE", "payment code %q is already used by another sale", s.PaymentCode)
	}
	return nil
}

// List returns every sale ordered by ID
func (r *SaleRepository) List(ctx context.Context) ([]*sales.Sale, error) {
	var models []SaleModel
	if err := r.db.conn(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	out := make([]*sales.Sale, len(models))
	for i := range models {
		out[i] = models[i].ToDomain()
	}
	return out, nil
}

// TransitionPaymentStatus writes the sale's payment status only if the row
// still holds from.
func (r *SaleRepository) TransitionPaymentStatus(ctx context.Context, s *sales.Sale, from sales.PaymentStatus) (bool, error) {
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	result := r.db.conn(ctx).Model(&SaleModel{}).
		Where("id = ? AND payment_status = ?", s.ID, string(from)).
		Updates(map[string]any{
			"payment_status": string(s.PaymentStatus),
			"updated_at":     updatedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("update payment status of sale %d: %w", s.ID, result.Error)
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	var count int64
	if err := r.db.conn(ctx).Model(&SaleModel{}).Where("id = ?", s.ID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check sale %d: %w", s.ID, err)
	}
	if count == 0 {
		return false, shared.NewNotFoundError("SALE_NOT_FOUND", "sale %d not found", s.ID)
	}
	return false, nil
}
