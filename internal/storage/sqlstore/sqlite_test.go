package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"api_vehicles/internal/config"
	"api_vehicles/internal/sales"
	"api_vehicles/internal/shared"
	"api_vehicles/internal/vehicles"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := New(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func newVehicle(t *testing.T, price string) *vehicles.Vehicle {
	t.Helper()
	v, err := vehicles.NewVehicle("Toyota", "Corolla", 2023, "White", decimal.RequireFromString(price))
	require.NoError(t, err)
	return v
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func newSale(t *testing.T, vehicleID int64, code string) *sales.Sale {
	t.Helper()
	s, err := sales.NewSale(vehicleID, "11144477735", decimal.RequireFromString("85000"), time.Time{})
	require.NoError(t, err)
	s.PaymentCode = code
	return s
}

func TestVehicleRepository_SQLite(t *testing.T) {
	store := setupTestDB(t)
	repo := store.Vehicles()
	ctx := context.Background()

	t.Run("save assigns id and round trips", func(t *testing.T) {
		v := newVehicle(t, "85000.50")
		require.NoError(t, repo.Save(ctx, v))
		require.NotZero(t, v.ID)

		got, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "Toyota", got.Brand)
		assert.Equal(t, "85000.50", got.Price.StringFixed(2))
		assert.Equal(t, vehicles.StatusAvailable, got.Status)
	})

	t.Run("update existing", func(t *testing.T) {
		v := newVehicle(t, "1000")
		require.NoError(t, repo.Save(ctx, v))

		color := "Black"
		require.NoError(t, v.Edit(vehicles.VehicleUpdate{Color: &color}))
		require.NoError(t, repo.Save(ctx, v))

		got, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "Black", got.Color)
	})

	t.Run("update missing", func(t *testing.T) {
		v := newVehicle(t, "1000")
		v.ID = 4242
		assert.ErrorIs(t, repo.Save(ctx, v), shared.ErrNotFound)
	})

	t.Run("find missing", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("mark sold is conditional", func(t *testing.T) {
		v := newVehicle(t, "2000")
		require.NoError(t, repo.Save(ctx, v))

		require.NoError(t, repo.MarkSold(ctx, v.ID))
		assert.ErrorIs(t, repo.MarkSold(ctx, v.ID), shared.ErrInvalidState)
		assert.ErrorIs(t, repo.MarkSold(ctx, 999), shared.ErrNotFound)

		sold, err := repo.ListByStatus(ctx, vehicles.StatusSold)
		require.NoError(t, err)
		require.Len(t, sold, 1)
		assert.Equal(t, v.ID, sold[0].ID)
	})

	t.Run("update after sale is refused", func(t *testing.T) {
		v := newVehicle(t, "1500")
		require.NoError(t, repo.Save(ctx, v))
		require.NoError(t, repo.MarkSold(ctx, v.ID))

		color := "Black"
		require.NoError(t, v.Edit(vehicles.VehicleUpdate{Color: &color}))
		assert.ErrorIs(t, repo.Save(ctx, v), shared.ErrInvalidState)

		got, err := repo.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, vehicles.StatusSold, got.Status)
		assert.Equal(t, "White", got.Color)
	})

	t.Run("list ordered by id", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID)
		}
	})
}

func TestSaleRepository_SQLite(t *testing.T) {
	store := setupTestDB(t)
	repo := store.Sales()
	ctx := context.Background()

	sale := newSale(t, 1, "PAY-1")
	require.NoError(t, repo.Save(ctx, sale))
	require.NotZero(t, sale.ID)

	t.Run("lookups", func(t *testing.T) {
		got, err := repo.FindByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, "11144477735", got.CustomerCPF)
		assert.Equal(t, sales.PaymentPending, got.PaymentStatus)

		got, err = repo.FindByPaymentCode(ctx, "PAY-1")
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)

		got, err = repo.FindByVehicleID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)

		_, err = repo.FindByPaymentCode(ctx, "PAY-X")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = repo.FindByVehicleID(ctx, 2)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("one sale per vehicle", func(t *testing.T) {
		err := repo.Save(ctx, newSale(t, 1, "PAY-2"))
		assert.Equal(t, "VEHICLE_ALREADY_SOLD", errorCode(t, err))
	})

	t.Run("payment code is unique", func(t *testing.T) {
		err := repo.Save(ctx, newSale(t, 5, "PAY-1"))
		assert.Equal(t, "PAYMENT_CODE_IN_USE", errorCode(t, err))

		got, err := repo.FindByPaymentCode(ctx, "PAY-1")
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)

		_, err = repo.FindByVehicleID(ctx, 5)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("conditional transition", func(t *testing.T) {
		approved := *sale
		_, err := approved.ApprovePayment()
		require.NoError(t, err)
		applied, err := repo.TransitionPaymentStatus(ctx, &approved, sales.PaymentPending)
		require.NoError(t, err)
		assert.True(t, applied)

		rejected := *sale
		_, err = rejected.RejectPayment()
		require.NoError(t, err)
		applied, err = repo.TransitionPaymentStatus(ctx, &rejected, sales.PaymentPending)
		require.NoError(t, err)
		assert.False(t, applied)

		missing := approved
		missing.ID = 999
		_, err = repo.TransitionPaymentStatus(ctx, &missing, sales.PaymentPending)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		got, err := repo.FindByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.PaymentApproved, got.PaymentStatus)
	})

	t.Run("list", func(t *testing.T) {
		second := newSale(t, 2, "PAY-3")
		require.NoError(t, repo.Save(ctx, second))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, sale.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})

	t.Run("sales without payment code", func(t *testing.T) {
		a := newSale(t, 6, "")
		b := newSale(t, 7, "")
		require.NoError(t, repo.Save(ctx, a))
		require.NoError(t, repo.Save(ctx, b))

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, got.PaymentCode)
	})
}

func TestWithTransaction_SQLite(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	v := newVehicle(t, "5000")
	require.NoError(t, store.Vehicles().Save(ctx, v))

	boom := errors.New("boom")
	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Vehicles().MarkSold(ctx, v.ID))
		require.NoError(t, store.Sales().Save(ctx, newSale(t, v.ID, "PAY-TX")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Vehicles().FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicles.StatusAvailable, got.Status)
	_, err = store.Sales().FindByVehicleID(ctx, v.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServices_SQLite(t *testing.T) {
	store := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	vehicleSvc := vehicles.NewService(store.Vehicles(), store.Sales(), store, logger)
	saleSvc := sales.NewService(store.Sales(), logger)
	ctx := context.Background()

	for _, p := range []string{"50000", "30000", "70000"} {
		_, err := vehicleSvc.CreateVehicle(ctx, vehicles.VehicleInput{
			Brand: "Fiat", Model: "Uno", Year: 2020, Color: "Red", Price: decimal.RequireFromString(p),
		})
		require.NoError(t, err)
	}

	available, err := vehicleSvc.ListAvailableSortedByPrice(ctx, shared.Page{})
	require.NoError(t, err)
	require.Len(t, available, 3)
	assert.Equal(t, "30000.00", available[0].Price.StringFixed(2))
	assert.Equal(t, "70000.00", available[2].Price.StringFixed(2))

	sale, err := vehicleSvc.SellVehicle(ctx, vehicles.SellInput{
		VehicleID: available[0].ID, CustomerCPF: "529.982.247-25", Amount: available[0].Price,
	})
	require.NoError(t, err)

	_, err = vehicleSvc.SellVehicle(ctx, vehicles.SellInput{
		VehicleID: available[0].ID, CustomerCPF: "11144477735", Amount: available[0].Price,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	res, err := saleSvc.CreatePaymentWebhookEvent(ctx, sales.WebhookEvent{PaymentCode: sale.PaymentCode, Status: "PAID"})
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = saleSvc.CreatePaymentWebhookEvent(ctx, sales.WebhookEvent{PaymentCode: sale.PaymentCode, Status: "APPROVED"})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, sales.PaymentApproved, res.Sale.PaymentStatus)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}
	store, err := Open(context.Background(), cfg, gormlogger.Discard)
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))
	v := newVehicle(t, "100")
	assert.NoError(t, store.Vehicles().Save(context.Background(), v))

	_, err = Open(context.Background(), config.DatabaseConfig{Driver: "oracle"}, gormlogger.Discard)
	assert.Error(t, err)
}
