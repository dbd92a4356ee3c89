// Package sqlstore implements the vehicle and sale gateways on GORM. It
// runs on postgres in production and on sqlite for local use and tests.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"api_vehicles/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type txKey struct{}

// DB wraps the GORM connection and hands out the gateways.
type DB struct {
	db *gorm.DB
}

// New wraps an already opened connection.
func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Open connects with the configured driver, applies pool settings, checks
// the connection and migrates the schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, log gormlogger.Interface) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	// TranslateError stays off: it drops the driver message that names the
	// violated index, see uniqueViolation.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 log,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// single writer; ":memory:" databases are per connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	store := New(db)
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Migrate creates or updates the tables.
func (d *DB) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(&VehicleModel{}, &SaleModel{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping checks if the database connection is alive
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// WithTransaction runs fn inside a database transaction carried by the
// context. Nested calls join the outer transaction.
func (d *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction in ctx, if any, or the base connection.
func (d *DB) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// Vehicles returns the vehicle gateway.
func (d *DB) Vehicles() *VehicleRepository {
	return &VehicleRepository{db: d}
}

// Sales returns the sale gateway.
func (d *DB) Sales() *SaleRepository {
	return &SaleRepository{db: d}
}

// uniqueViolation reports which of the given columns a failed write
// collided on. It returns "" when err is not a unique violation or names
// none of them. Postgres reports the index name (idx_sales_payment_code),
// sqlite the column (sales.payment_code); both contain the column.
func (d *DB) uniqueViolation(err error, columns ...string) string {
	duplicate := errors.Is(err, gorm.ErrDuplicatedKey)
	if t, ok := d.db.Dialector.(gorm.ErrorTranslator); ok && !duplicate {
		duplicate = errors.Is(t.Translate(err), gorm.ErrDuplicatedKey)
	}
	if !duplicate {
		return ""
	}

	msg := err.Error()
	for _, c := range columns {
		if strings.Contains(msg, c) {
			return c
		}
	}
	return ""
}
