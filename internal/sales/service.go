package sales

import (
	"context"
	"fmt"

	"api_vehicles/internal/logger"
	"api_vehicles/internal/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// transitionAttempts bounds the re-read loop after losing a conditional
// update. One retry is enough because the winner always leaves a terminal
// status behind.
const transitionAttempts = 2

// Service provides payment and lookup operations on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// log returns the service logger tagged with the request ID in ctx.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.Tagged(ctx, s.logger)
}

// WebhookEvent is a payment notification. PaymentCode takes precedence over
// SaleID when both are set.
type WebhookEvent struct {
	PaymentCode string
	SaleID      int64
	Status      string
}

// WebhookResult reports the sale after the event was applied and whether the
// event changed anything. Replayed events come back with Changed=false.
type WebhookResult struct {
	Sale           *Sale
	PreviousStatus PaymentStatus
	Changed        bool
}

// SalesMetadata summarizes a listing before pagination.
type SalesMetadata struct {
	Quantity    int             `json:"quantity"`
	Approved    int             `json:"approved"`
	Rejected    int             `json:"rejected"`
	Pending     int             `json:"pending"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPaymentCode returns a fresh external payment reference.
func NewPaymentCode() string {
	return "PAY-" + uuid.NewString()
}

// CreatePaymentWebhookEvent applies a payment notification to its sale.
func (s *Service) CreatePaymentWebhookEvent(ctx context.Context, ev WebhookEvent) (*WebhookResult, error) {
	target, err := ParsePaymentStatus(ev.Status)
	if err != nil {
		s.log(ctx).Warn("webhook with invalid status", zap.String("status", ev.Status))
		return nil, err
	}

	var load func(ctx context.Context) (*Sale, error)
	switch {
	case ev.PaymentCode != "":
		load = func(ctx context.Context) (*Sale, error) {
			return s.storage.FindByPaymentCode(ctx, ev.PaymentCode)
		}
	case ev.SaleID > 0:
		load = func(ctx context.Context) (*Sale, error) {
			return s.storage.FindByID(ctx, ev.SaleID)
		}
	default:
		return nil, shared.NewValidationError("MISSING_SALE_REFERENCE", "payment_code or sale_id is required")
	}

	res, err := s.applyStatus(ctx, load, target)
	if err != nil {
		s.log(ctx).Warn("webhook not applied",
			zap.String("payment_code", ev.PaymentCode),
			zap.Int64("sale_id", ev.SaleID),
			zap.String("status", string(target)),
			zap.Error(err),
		)
		return nil, err
	}

	s.log(ctx).Info("webhook processed",
		zap.Int64("sale_id", res.Sale.ID),
		zap.String("previous_status", string(res.PreviousStatus)),
		zap.String("status", string(res.Sale.PaymentStatus)),
		zap.Bool("changed", res.Changed),
	)
	return res, nil
}

// UpdatePaymentStatus applies a status to the sale with the given id. It has
// the same idempotency rules as the webhook.
func (s *Service) UpdatePaymentStatus(ctx context.Context, saleID int64, status string) (*WebhookResult, error) {
	target, err := ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	res, err := s.applyStatus(ctx, func(ctx context.Context) (*Sale, error) {
		return s.storage.FindByID(ctx, saleID)
	}, target)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("payment status updated",
		zap.Int64("sale_id", saleID),
		zap.String("status", string(res.Sale.PaymentStatus)),
		zap.Bool("changed", res.Changed),
	)
	return res, nil
}

func (s *Service) applyStatus(ctx context.Context, load func(ctx context.Context) (*Sale, error), target PaymentStatus) (*WebhookResult, error) {
	for attempt := 1; attempt <= transitionAttempts; attempt++ {
		sale, err := load(ctx)
		if err != nil {
			return nil, err
		}

		prev := sale.PaymentStatus
		changed, err := sale.ApplyPaymentStatus(target)
		if err != nil {
			return nil, err
		}
		if !changed {
			return &WebhookResult{Sale: sale, PreviousStatus: prev}, nil
		}

		applied, err := s.storage.TransitionPaymentStatus(ctx, sale, prev)
		if err != nil {
			s.log(ctx).Error("failed to persist payment status", zap.Int64("sale_id", sale.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to update sale %d: %w", sale.ID, err)
		}
		if applied {
			return &WebhookResult{Sale: sale, PreviousStatus: prev, Changed: true}, nil
		}

		s.log(ctx).Warn("payment status changed concurrently, re-reading sale",
			zap.Int64("sale_id", sale.ID),
			zap.Int("attempt", attempt),
		)
	}
	return nil, shared.NewInvalidStateError("CONCURRENT_UPDATE", "payment status changed concurrently")
}

// GetSale returns the sale with the given id.
func (s *Service) GetSale(ctx context.Context, id int64) (*Sale, error) {
	return s.storage.FindByID(ctx, id)
}

// GetSaleByVehicle returns the sale recorded for a vehicle.
func (s *Service) GetSaleByVehicle(ctx context.Context, vehicleID int64) (*Sale, error) {
	return s.storage.FindByVehicleID(ctx, vehicleID)
}

// ListSales returns sales ordered by id, optionally filtered by payment
// status. The metadata covers the whole filtered set, not just the page.
func (s *Service) ListSales(ctx context.Context, status string, page shared.Page) ([]*Sale, SalesMetadata, error) {
	var filter PaymentStatus
	if status != "" {
		parsed, err := ParsePaymentStatus(status)
		if err != nil {
			s.log(ctx).Warn("invalid status filter provided", zap.String("status_filter", status))
			return nil, SalesMetadata{}, err
		}
		filter = parsed
	}

	all, err := s.storage.List(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list sales", zap.Error(err))
		return nil, SalesMetadata{}, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	filtered := make([]*Sale, 0, len(all))
	metadata := SalesMetadata{TotalAmount: decimal.Zero}
	for _, sale := range all {
		if filter != "" && sale.PaymentStatus != filter {
			continue
		}
		filtered = append(filtered, sale)

		metadata.Quantity++
		metadata.TotalAmount = metadata.TotalAmount.Add(sale.Amount)
		switch sale.PaymentStatus {
		case PaymentApproved:
			metadata.Approved++
		case PaymentRejected:
			metadata.Rejected++
		case PaymentPending:
			metadata.Pending++
		}
	}

	s.log(ctx).Debug("sales search completed",
		zap.String("status_filter", status),
		zap.Int("results_count", len(filtered)),
	)
	return shared.Apply(filtered, page), metadata, nil
}
