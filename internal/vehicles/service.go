package vehicles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"api_vehicles/internal/sales"
	"api_vehicles/internal/logger"
	"api_vehicles/internal/shared"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides vehicle stock operations, including selling, on top of
// the vehicle and sale gateways.
type Service struct {
	storage Storage
	sales   sales.Storage
	tx      shared.TxManager
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, salesStorage sales.Storage, tx shared.TxManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		storage: storage,
		sales:   salesStorage,
		tx:      tx,
		logger:  logger,
	}
}

// log returns the service logger tagged with the request ID in ctx.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.Tagged(ctx, s.logger)
}

// SellInput describes a sale of an available vehicle. A zero SaleDate means
// now and an empty PaymentCode is generated.
type SellInput struct {
	VehicleID   int64
	CustomerCPF string
	Amount      decimal.Decimal
	SaleDate    time.Time
	PaymentCode string
}

// CreateVehicle registers a new available vehicle.
func (s *Service) CreateVehicle(ctx context.Context, in VehicleInput) (*Vehicle, error) {
	v, err := NewVehicle(in.Brand, in.Model, in.Year, in.Color, in.Price)
	if err != nil {
		s.log(ctx).Debug("invalid vehicle input", zap.Error(err))
		return nil, err
	}

	if err := s.storage.Save(ctx, v); err != nil {
		s.log(ctx).Error("failed to save vehicle", zap.Error(err))
		return nil, fmt.Errorf("failed to save vehicle: %w", err)
	}

	s.log(ctx).Info("vehicle created",
		zap.Int64("vehicle_id", v.ID),
		zap.String("brand", v.Brand),
		zap.String("model", v.Model),
		zap.String("price", v.Price.StringFixed(2)),
	)
	return v, nil
}

// UpdateVehicle edits an available vehicle.
func (s *Service) UpdateVehicle(ctx context.Context, id int64, u VehicleUpdate) (*Vehicle, error) {
	v, err := s.storage.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := v.Edit(u); err != nil {
		s.log(ctx).Debug("vehicle edit refused", zap.Int64("vehicle_id", id), zap.Error(err))
		return nil, err
	}

	if err := s.storage.Save(ctx, v); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			s.log(ctx).Warn("vehicle sold while being edited", zap.Int64("vehicle_id", id))
			return nil, err
		}
		s.log(ctx).Error("failed to update vehicle", zap.Int64("vehicle_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update vehicle %d: %w", id, err)
	}

	s.log(ctx).Info("vehicle updated", zap.Int64("vehicle_id", id))
	return v, nil
}

// GetVehicle returns the vehicle with the given id.
func (s *Service) GetVehicle(ctx context.Context, id int64) (*Vehicle, error) {
	return s.storage.FindByID(ctx, id)
}

// ListVehicles returns every vehicle ordered by id.
func (s *Service) ListVehicles(ctx context.Context, page shared.Page) ([]*Vehicle, error) {
	all, err := s.storage.List(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return shared.Apply(all, page), nil
}

// ListAvailableSortedByPrice returns available vehicles, cheapest first.
func (s *Service) ListAvailableSortedByPrice(ctx context.Context, page shared.Page) ([]*Vehicle, error) {
	return s.listByPrice(ctx, StatusAvailable, page)
}

// ListSoldSortedByPrice returns sold vehicles, cheapest first.
func (s *Service) ListSoldSortedByPrice(ctx context.Context, page shared.Page) ([]*Vehicle, error) {
	return s.listByPrice(ctx, StatusSold, page)
}

func (s *Service) listByPrice(ctx context.Context, status Status, page shared.Page) ([]*Vehicle, error) {
	list, err := s.storage.ListByStatus(ctx, status)
	if err != nil {
		s.log(ctx).Error("failed to list vehicles", zap.String("status", string(status)), zap.Error(err))
		return nil, fmt.Errorf("failed to list %s vehicles: %w", status, err)
	}

	sortByPrice(list)
	return shared.Apply(list, page), nil
}

// sortByPrice orders ascending by price, ties broken by id.
func sortByPrice(list []*Vehicle) {
	sort.SliceStable(list, func(i, j int) bool {
		if c := list[i].Price.Cmp(list[j].Price); c != 0 {
			return c < 0
		}
		return list[i].ID < list[j].ID
	})
}

// checkPaymentCode refuses a caller-supplied code that another sale holds.
func (s *Service) checkPaymentCode(ctx context.Context, code string) error {
	existing, err := s.sales.FindByPaymentCode(ctx, code)
	switch {
	case err == nil:
		return shared.NewInvalidStateError("PAYMENT_CODE_IN_USE", "payment code %q is already used by sale %d", code, existing.ID)
	case errors.Is(err, shared.ErrNotFound):
		return nil
	}
	return fmt.Errorf("failed to check payment code: %w", err)
}

// SellVehicle records a sale and marks the vehicle sold as one unit of work.
func (s *Service) SellVehicle(ctx context.Context, in SellInput) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		v, err := s.storage.FindByID(ctx, in.VehicleID)
		if err != nil {
			return err
		}
		if !v.IsAvailable() {
			return shared.NewInvalidStateError("VEHICLE_NOT_AVAILABLE", "vehicle %d is not available", v.ID)
		}

		existing, err := s.sales.FindByVehicleID(ctx, v.ID)
		switch {
		case err == nil:
			return shared.NewInvalidStateError("VEHICLE_ALREADY_SOLD", "vehicle %d already has sale %d", v.ID, existing.ID)
		case !errors.Is(err, shared.ErrNotFound):
			return fmt.Errorf("failed to check existing sale: %w", err)
		}

		sale, err = sales.NewSale(v.ID, in.CustomerCPF, in.Amount, in.SaleDate)
		if err != nil {
			return err
		}
		sale.PaymentCode = in.PaymentCode
		if sale.PaymentCode == "" {
			sale.PaymentCode = sales.NewPaymentCode()
		} else if err := s.checkPaymentCode(ctx, sale.PaymentCode); err != nil {
			return err
		}

		if err := v.MarkSold(); err != nil {
			return err
		}
		if err := s.storage.MarkSold(ctx, v.ID); err != nil {
			return err
		}
		if err := s.sales.Save(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log(ctx).Warn("vehicle sale failed", zap.Int64("vehicle_id", in.VehicleID), zap.Error(err))
		return nil, err
	}

	s.log(ctx).Info("vehicle sold",
		zap.Int64("vehicle_id", in.VehicleID),
		zap.Int64("sale_id", sale.ID),
		zap.String("payment_code", sale.PaymentCode),
		zap.String("amount", sale.Amount.StringFixed(2)),
	)
	return sale, nil
}
