package api

import (
	"time"

	"api_vehicles/internal/cpf"
	"api_vehicles/internal/sales"
	"api_vehicles/internal/vehicles"
)

// VehicleResponse is the JSON view of a vehicle. Money is a string with two
// decimals.
type VehicleResponse struct {
	ID        int64     `json:"id" example:"1"`
	Brand     string    `json:"brand" example:"Toyota"`
	Model     string    `json:"model" example:"Corolla"`
	Year      int       `json:"year" example:"2023"`
	Color     string    `json:"color" example:"White"`
	Price     string    `json:"price" example:"85000.00"`
	Status    string    `json:"status" example:"AVAILABLE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VehicleListResponse is a page of vehicles.
type VehicleListResponse struct {
	Results []VehicleResponse `json:"results"`
	Count   int               `json:"count"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
}

// SaleResponse is the JSON view of a sale.
type SaleResponse struct {
	ID            int64     `json:"id" example:"1"`
	VehicleID     int64     `json:"vehicle_id" example:"1"`
	CustomerCPF   string    `json:"customer_cpf" example:"111.444.777-35"`
	Amount        string    `json:"amount" example:"85000.00"`
	SaleDate      time.Time `json:"sale_date"`
	PaymentStatus string    `json:"payment_status" example:"PENDING"`
	PaymentCode   string    `json:"payment_code" example:"PAY-3f1c..."`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SalesMetadataResponse summarizes a sales listing.
type SalesMetadataResponse struct {
	Quantity    int    `json:"quantity"`
	Approved    int    `json:"approved"`
	Rejected    int    `json:"rejected"`
	Pending     int    `json:"pending"`
	TotalAmount string `json:"total_amount" example:"85000.00"`
}

// SaleListResponse is a page of sales plus totals over every match.
type SaleListResponse struct {
	Results  []SaleResponse        `json:"results"`
	Metadata SalesMetadataResponse `json:"metadata"`
	Page     int                   `json:"page"`
	Size     int                   `json:"size"`
}

// PaymentStatusResponse is returned by the payment endpoints.
type PaymentStatusResponse struct {
	SaleID         int64        `json:"sale_id" example:"1"`
	PaymentStatus  string       `json:"payment_status" example:"APPROVED"`
	PreviousStatus string       `json:"previous_status,omitempty" example:"PENDING"`
	Changed        bool         `json:"changed"`
	Sale           SaleResponse `json:"sale"`
}

// HealthResponse reports liveness and storage reachability.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	App     string `json:"app" example:"vehicle-resale-api"`
	Storage string `json:"storage" example:"ok"`
}

func presentVehicle(v *vehicles.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		Price:     v.Price.StringFixed(2),
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func presentVehicles(list []*vehicles.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, len(list))
	for i, v := range list {
		out[i] = presentVehicle(v)
	}
	return out
}

// presentSale shows the full CPF; listings use presentSaleMasked.
func presentSale(s *sales.Sale) SaleResponse {
	r := presentSaleMasked(s)
	r.CustomerCPF = cpf.Format(s.CustomerCPF)
	return r
}

func presentSaleMasked(s *sales.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		VehicleID:     s.VehicleID,
		CustomerCPF:   cpf.Mask(s.CustomerCPF),
		Amount:        s.Amount.StringFixed(2),
		SaleDate:      s.SaleDate,
		PaymentStatus: string(s.PaymentStatus),
		PaymentCode:   s.PaymentCode,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func presentMetadata(m sales.SalesMetadata) SalesMetadataResponse {
	return SalesMetadataResponse{
		Quantity:    m.Quantity,
		Approved:    m.Approved,
		Rejected:    m.Rejected,
		Pending:     m.Pending,
		TotalAmount: m.TotalAmount.StringFixed(2),
	}
}

func presentPaymentResult(res *sales.WebhookResult) PaymentStatusResponse {
	return PaymentStatusResponse{
		SaleID:         res.Sale.ID,
		PaymentStatus:  string(res.Sale.PaymentStatus),
		PreviousStatus: string(res.PreviousStatus),
		Changed:        res.Changed,
		Sale:           presentSale(res.Sale),
	}
}
