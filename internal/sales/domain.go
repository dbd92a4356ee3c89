package sales

import (
	"strings"
	"time"

	"api_vehicles/internal/cpf"
	"api_vehicles/internal/shared"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment state of a sale.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// maxSaleAgeDays is how far in the past a sale date may be.
const maxSaleAgeDays = 30

// IsTerminal reports whether no further transition can leave this status.
func (p PaymentStatus) IsTerminal() bool {
	return p == PaymentApproved || p == PaymentRejected
}

// ParsePaymentStatus accepts the canonical names in any case plus the
// aliases sent by the payment provider (PAID, CANCELED, CANCELLED).
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return PaymentPending, nil
	case "APPROVED", "PAID":
		return PaymentApproved, nil
	case "REJECTED", "CANCELED", "CANCELLED":
		return PaymentRejected, nil
	}
	return "", shared.NewValidationError("INVALID_PAYMENT_STATUS", "invalid payment status %q", s)
}

// Sale represents the sale of one vehicle to one customer.
type Sale struct {
	ID            int64
	VehicleID     int64
	CustomerCPF   string
	Amount        decimal.Decimal
	SaleDate      time.Time
	PaymentStatus PaymentStatus
	PaymentCode   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSale validates its inputs and returns a PENDING sale. The CPF may be
// given formatted; it is stored as digits only. A zero saleDate means now.
func NewSale(vehicleID int64, customerCPF string, amount decimal.Decimal, saleDate time.Time) (*Sale, error) {
	return newSaleAt(vehicleID, customerCPF, amount, saleDate, time.Now())
}

func newSaleAt(vehicleID int64, customerCPF string, amount decimal.Decimal, saleDate, now time.Time) (*Sale, error) {
	if vehicleID <= 0 {
		return nil, shared.NewValidationError("INVALID_VEHICLE_ID", "vehicle id must be greater than zero")
	}

	doc := cpf.Normalize(customerCPF)
	if doc == "" {
		return nil, shared.NewValidationError("INVALID_CPF", "customer cpf is required")
	}
	if !cpf.Valid(doc) {
		return nil, shared.NewValidationError("INVALID_CPF", "customer cpf %q is invalid", customerCPF)
	}

	amount, err := shared.ValidateMoney("INVALID_AMOUNT", "amount", amount)
	if err != nil {
		return nil, err
	}

	if saleDate.IsZero() {
		saleDate = now
	}
	if err := validateSaleDate(saleDate, now); err != nil {
		return nil, err
	}

	return &Sale{
		VehicleID:     vehicleID,
		CustomerCPF:   doc,
		Amount:        amount,
		SaleDate:      saleDate,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func validateSaleDate(d, now time.Time) error {
	y, m, day := now.Date()
	endOfDay := time.Date(y, m, day, 23, 59, 59, 0, now.Location())
	if d.After(endOfDay) {
		return shared.NewValidationError("INVALID_SALE_DATE", "sale date cannot be in the future")
	}
	if int(now.Sub(d).Hours()/24) > maxSaleAgeDays {
		return shared.NewValidationError("INVALID_SALE_DATE", "sale date cannot be more than %d days old", maxSaleAgeDays)
	}
	return nil
}

// ApprovePayment moves a pending sale to APPROVED. Approving an approved
// sale is a no-op and reports changed=false.
func (s *Sale) ApprovePayment() (bool, error) {
	switch s.PaymentStatus {
	case PaymentApproved:
		return false, nil
	case PaymentRejected:
		return false, shared.NewInvalidStateError("PAYMENT_ALREADY_REJECTED", "sale %d payment was already rejected", s.ID)
	}
	s.PaymentStatus = PaymentApproved
	s.UpdatedAt = time.Now()
	return true, nil
}

// RejectPayment moves a pending sale to REJECTED. Rejecting a rejected
// sale is a no-op and reports changed=false.
func (s *Sale) RejectPayment() (bool, error) {
	switch s.PaymentStatus {
	case PaymentRejected:
		return false, nil
	case PaymentApproved:
		return false, shared.NewInvalidStateError("PAYMENT_ALREADY_APPROVED", "sale %d payment was already approved", s.ID)
	}
	s.PaymentStatus = PaymentRejected
	s.UpdatedAt = time.Now()
	return true, nil
}

// ApplyPaymentStatus drives the sale toward a terminal status.
func (s *Sale) ApplyPaymentStatus(target PaymentStatus) (bool, error) {
	switch target {
	case PaymentApproved:
		return s.ApprovePayment()
	case PaymentRejected:
		return s.RejectPayment()
	}
	return false, shared.NewValidationError("INVALID_PAYMENT_STATUS", "payment status %q is not a valid target", target)
}
