package vehicles_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"api_vehicles/internal/sales"
	"api_vehicles/internal/shared"
	"api_vehicles/internal/storage/memory"
	"api_vehicles/internal/vehicles"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	store    *memory.Store
	vehicles *vehicles.Service
	sales    *sales.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	logger := zaptest.NewLogger(t)
	return &fixture{
		store:    store,
		vehicles: vehicles.NewService(store.Vehicles(), store.Sales(), store, logger),
		sales:    sales.NewService(store.Sales(), logger),
	}
}

func (f *fixture) create(t *testing.T, price string) *vehicles.Vehicle {
	t.Helper()
	v, err := f.vehicles.CreateVehicle(context.Background(), vehicles.VehicleInput{
		Brand: "Toyota", Model: "Corolla", Year: 2023, Color: "White",
		Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return v
}

func prices(list []*vehicles.Vehicle) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = v.Price.StringFixed(2)
	}
	return out
}

func TestCreateVehicle(t *testing.T) {
	f := newFixture(t)
	v := f.create(t, "85000")
	assert.NotZero(t, v.ID)
	assert.Equal(t, vehicles.StatusAvailable, v.Status)

	_, err := f.vehicles.CreateVehicle(context.Background(), vehicles.VehicleInput{
		Brand: "Toyota", Model: "Corolla", Year: 2023, Color: "White", Price: decimal.Zero,
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateVehicle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.create(t, "85000")

	model := "corolla cross"
	updated, err := f.vehicles.UpdateVehicle(ctx, v.ID, vehicles.VehicleUpdate{Model: &model})
	require.NoError(t, err)
	assert.Equal(t, "Corolla Cross", updated.Model)

	got, err := f.vehicles.GetVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corolla Cross", got.Model)

	_, err = f.vehicles.UpdateVehicle(ctx, 999, vehicles.VehicleUpdate{Model: &model})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	bad := decimal.NewFromInt(-1)
	_, err = f.vehicles.UpdateVehicle(ctx, v.ID, vehicles.VehicleUpdate{Price: &bad})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateVehicle_SoldIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.create(t, "85000")
	_, err := f.vehicles.SellVehicle(ctx, vehicles.SellInput{VehicleID: v.ID, CustomerCPF: "11144477735", Amount: v.Price})
	require.NoError(t, err)

	color := "Black"
	_, err = f.vehicles.UpdateVehicle(ctx, v.ID, vehicles.VehicleUpdate{Color: &color})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestListAvailableSortedByPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "50000")
	f.create(t, "30000")
	f.create(t, "70000")

	list, err := f.vehicles.ListAvailableSortedByPrice(ctx, shared.Page{})
	require.NoError(t, err)
	assert.Equal(t, []string{"30000.00", "50000.00", "70000.00"}, prices(list))

	list, err = f.vehicles.ListAvailableSortedByPrice(ctx, shared.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"70000.00"}, prices(list))

	sold, err := f.vehicles.ListSoldSortedByPrice(ctx, shared.Page{})
	require.NoError(t, err)
	assert.Empty(t, sold)
}

func TestListVehicles(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "50000")
	b := f.create(t, "30000")

	list, err := f.vehicles.ListVehicles(context.Background(), shared.Page{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestSellVehicle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.create(t, "85000")

	sale, err := f.vehicles.SellVehicle(ctx, vehicles.SellInput{
		VehicleID: v.ID, CustomerCPF: "111.444.777-35", Amount: decimal.NewFromInt(84000),
	})
	require.NoError(t, err)
	assert.NotZero(t, sale.ID)
	assert.Equal(t, sales.PaymentPending, sale.PaymentStatus)
	assert.Equal(t, "11144477735", sale.CustomerCPF)
	assert.Contains(t, sale.PaymentCode, "PAY-")

	got, err := f.vehicles.GetVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicles.StatusSold, got.Status)

	sold, err := f.vehicles.ListSoldSortedByPrice(ctx, shared.Page{})
	require.NoError(t, err)
	assert.Len(t, sold, 1)
}

func TestSellVehicle_KeepsGivenPaymentCode(t *testing.T) {
	f := newFixture(t)
	v := f.create(t, "85000")

	sale, err := f.vehicles.SellVehicle(context.Background(), vehicles.SellInput{
		VehicleID: v.ID, CustomerCPF: "11144477735", Amount: v.Price, PaymentCode: "EXT-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "EXT-1", sale.PaymentCode)
}

func TestSellVehicle_PaymentCodeInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.create(t, "85000")
	second := f.create(t, "90000")

	sale, err := f.vehicles.SellVehicle(ctx, vehicles.SellInput{
		VehicleID: first.ID, CustomerCPF: "11144477735", Amount: first.Price, PaymentCode: "DUP",
	})
	require.NoError(t, err)

	_, err = f.vehicles.SellVehicle(ctx, vehicles.SellInput{
		VehicleID: second.ID, CustomerCPF: "52998224725", Amount: second.Price, PaymentCode: "DUP",
	})
	require.ErrorIs(t, err, shared.ErrInvalidState)
	assert.ErrorIs(t, err, shared.NewInvalidStateError("PAYMENT_CODE_IN_USE", ""))

	t.Run("second vehicle stays available", func(t *testing.T) {
		got, err := f.vehicles.GetVehicle(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicles.StatusAvailable, got.Status)

		_, err = f.sales.GetSaleByVehicle(ctx, second.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("webhook reaches the original sale", func(t *testing.T) {
		res, err := f.sales.CreatePaymentWebhookEvent(ctx, sales.WebhookEvent{PaymentCode: "DUP", Status: "APPROVED"})
		require.NoError(t, err)
		assert.Equal(t, sale.ID, res.Sale.ID)
		assert.Equal(t, first.ID, res.Sale.VehicleID)

		all, _, err := f.sales.ListSales(ctx, "", shared.Page{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestSellVehicle_AlreadySold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.create(t, "85000")
	first, err := f.vehicles.SellVehicle(ctx, vehicles.SellInput{VehicleID: v.ID, CustomerCPF: "11144477735", Amount: v.Price})
	require.NoError(t, err)

	_, err = f.vehicles.SellVehicle(ctx, vehicles.SellInput{VehicleID: v.ID, CustomerCPF: "52998224725", Amount: v.Price})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	all, _, err := f.sales.ListSales(ctx, "", shared.Page{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
}

func TestSellVehicle_FailuresLeaveVehicleAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.create(t, "85000")

	tests := []struct {
		name string
		in   vehicles.SellInput
		want error
	}{
		{"unknown vehicle", vehicles.SellInput{VehicleID: 999, CustomerCPF: "11144477735", Amount: v.Price}, shared.ErrNotFound},
		{"invalid cpf", vehicles.SellInput{VehicleID: v.ID, CustomerCPF: "11111111111", Amount: v.Price}, shared.ErrValidation},
		{"invalid amount", vehicles.SellInput{VehicleID: v.ID, CustomerCPF: "11144477735", Amount: decimal.Zero}, shared.ErrValidation},
		{"future date", vehicles.SellInput{VehicleID: v.ID, CustomerCPF: "11144477735", Amount: v.Price, SaleDate: time.Now().AddDate(0, 0, 2)}, shared.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.vehicles.SellVehicle(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)

			got, err := f.vehicles.GetVehicle(ctx, v.ID)
			require.NoError(t, err)
			assert.Equal(t, vehicles.StatusAvailable, got.Status)
		})
	}
}

func TestSellVehicle_ConcurrentBuyers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.create(t, "85000")

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.vehicles.SellVehicle(ctx, vehicles.SellInput{VehicleID: v.ID, CustomerCPF: "11144477735", Amount: v.Price})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	}
	assert.Equal(t, 1, wins)
}

func TestEndToEnd_SellAndApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.vehicles.CreateVehicle(ctx, vehicles.VehicleInput{
		Brand: "Toyota", Model: "Corolla", Year: 2023, Color: "White",
		Price: decimal.RequireFromString("85000.00"),
	})
	require.NoError(t, err)

	sale, err := f.vehicles.SellVehicle(ctx, vehicles.SellInput{
		VehicleID: v.ID, CustomerCPF: "11144477735", Amount: decimal.RequireFromString("85000.00"),
	})
	require.NoError(t, err)

	res, err := f.sales.CreatePaymentWebhookEvent(ctx, sales.WebhookEvent{SaleID: sale.ID, Status: "APPROVED"})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, sales.PaymentApproved, res.Sale.PaymentStatus)

	replay, err := f.sales.CreatePaymentWebhookEvent(ctx, sales.WebhookEvent{SaleID: sale.ID, Status: "APPROVED"})
	require.NoError(t, err)
	assert.False(t, replay.Changed)
	assert.Equal(t, sales.PaymentApproved, replay.Sale.PaymentStatus)
	assert.Equal(t, res.Sale.ID, replay.Sale.ID)

	got, err := f.vehicles.GetVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicles.StatusSold, got.Status)
}
