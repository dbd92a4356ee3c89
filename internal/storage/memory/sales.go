package memory

import (
	"context"
	"sort"

	"api_vehicles/internal/sales"
	"api_vehicles/internal/shared"
)

// SaleStorage implements sales.Storage on top of Store.
type SaleStorage struct {
	s *Store
}

var _ sales.Storage = (*SaleStorage)(nil)

func (r *SaleStorage) FindByID(ctx context.Context, id int64) (*sales.Sale, error) {
	defer r.s.rlock(ctx)()

	sale, ok := r.s.sales[id]
	if !ok {
		return nil, shared.NewNotFoundError("SALE_NOT_FOUND", "sale %d not found", id)
	}
	return cloneSale(sale), nil
}

func (r *SaleStorage) FindByPaymentCode(ctx context.Context, code string) (*sales.Sale, error) {
	defer r.s.rlock(ctx)()

	for _, sale := range r.s.sales {
		if sale.PaymentCode == code {
			return cloneSale(sale), nil
		}
	}
	return nil, shared.NewNotFoundError("SALE_NOT_FOUND", "no sale with payment code %q", code)
}

func (r *SaleStorage) FindByVehicleID(ctx context.Context, vehicleID int64) (*sales.Sale, error) {
	defer r.s.rlock(ctx)()

	for _, sale := range r.s.sales {
		if sale.VehicleID == vehicleID {
			return cloneSale(sale), nil
		}
	}
	return nil, shared.NewNotFoundError("SALE_NOT_FOUND", "no sale for vehicle %d", vehicleID)
}

func (r *SaleStorage) Save(ctx context.Context, sale *sales.Sale) error {
	defer r.s.lock(ctx)()

	for id, other := range r.s.sales {
		if id == sale.ID {
			continue
		}
		if other.VehicleID == sale.VehicleID {
			return shared.NewInvalidStateError("VEHICLE_ALREADY_SOLD", "vehicle %d already has sale %d", sale.VehicleID, id)
		}
		if sale.PaymentCode != "" && other.PaymentCode == sale.PaymentCode {
			return shared.NewInvalidStateError("PAYMENT_CODE_IN_USE", "payment code %q is already used by sale %d", sale.PaymentCode, id)
		}
	}

	if sale.ID == 0 {
		r.s.lastSaleID++
		sale.ID = r.s.lastSaleID
	} else if _, ok := r.s.sales[sale.ID]; !ok {
		return shared.NewNotFoundError("SALE_NOT_FOUND", "sale %d not found", sale.ID)
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleStorage) List(ctx context.Context) ([]*sales.Sale, error) {
	defer r.s.rlock(ctx)()

	out := make([]*sales.Sale, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		out = append(out, cloneSale(sale))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SaleStorage) TransitionPaymentStatus(ctx context.Context, sale *sales.Sale, from sales.PaymentStatus) (bool, error) {
	defer r.s.lock(ctx)()

	stored, ok := r.s.sales[sale.ID]
	if !ok {
		return false, shared.NewNotFoundError("SALE_NOT_FOUND", "sale %d not found", sale.ID)
	}
	if stored.PaymentStatus != from {
		return false, nil
	}
	next := cloneSale(stored)
	next.PaymentStatus = sale.PaymentStatus
	next.UpdatedAt = sale.UpdatedAt
	r.s.sales[sale.ID] = next
	return true, nil
}
