package sqlstore

import (
	"time"

	"api_vehicles/internal/sales"
	"api_vehicles/internal/vehicles"

	"github.com/shopspring/decimal"
)

// VehicleModel is the persistence model for vehicles.
type VehicleModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Brand     string          `gorm:"size:50;not null"`
	Model     string          `gorm:"size:100;not null"`
	Year      int             `gorm:"not null"`
	Color     string          `gorm:"size:30;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status    string          `gorm:"size:16;not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the model to the domain entity.
func (m *VehicleModel) ToDomain() *vehicles.Vehicle {
	return &vehicles.Vehicle{
		ID:        m.ID,
		Brand:     m.Brand,
		Model:     m.Model,
		Year:      m.Year,
		Color:     m.Color,
		Price:     m.Price,
		Status:    vehicles.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// VehicleModelFromDomain builds the persistence model for a vehicle.
func VehicleModelFromDomain(v *vehicles.Vehicle) *VehicleModel {
	return &VehicleModel{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		Price:     v.Price,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// SaleModel is the persistence model for sales. A vehicle has at most one
// sale and a payment code points at one sale, both enforced by unique
// indexes. PaymentCode is NULL when the sale has none.
type SaleModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	VehicleID     int64           `gorm:"not null;uniqueIndex:idx_sales_vehicle_id"`
	CustomerCPF   string          `gorm:"column:customer_cpf;size:11;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate      time.Time       `gorm:"not null"`
	PaymentStatus string          `gorm:"size:16;not null;index"`
	PaymentCode   *string         `gorm:"size:64;uniqueIndex:idx_sales_payment_code"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the model to the domain entity.
func (m *SaleModel) ToDomain() *sales.Sale {
	return &sales.Sale{
		ID:            m.ID,
		VehicleID:     m.VehicleID,
		CustomerCPF:   m.CustomerCPF,
		Amount:        m.Amount,
		SaleDate:      m.SaleDate,
		PaymentStatus: sales.PaymentStatus(m.PaymentStatus),
		PaymentCode:   deref(m.PaymentCode),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SaleModelFromDomain builds the persistence model for a sale.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	return &SaleModel{
		ID:            s.ID,
		VehicleID:     s.VehicleID,
		CustomerCPF:   s.CustomerCPF,
		Amount:        s.Amount,
		SaleDate:      s.SaleDate,
		PaymentStatus: string(s.PaymentStatus),
		PaymentCode:   nullable(s.PaymentCode),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
