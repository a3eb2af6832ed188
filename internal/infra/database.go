package infra

import (
	"fmt"

	"github.com/baikov/orders-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies idempotent SQL patches for the
// DDL GORM cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Customer{},
		&model.TradePoint{},
		&model.Product{},
		&model.CustomerProduct{},
		&model.CustomerOrder{},
		&model.Order{},
		&model.ProductInOrder{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that GORM tags cannot express.
// Each statement is guarded so re-running on an already-patched schema is a
// no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The sapcode natural key only binds non-empty codes: name-keyed
		// formats leave sapcode blank on every row they create, and those
		// rows must not collide with each other.
		{"partial unique index on trade point sapcode", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_trade_points_customer_sapcode') THEN
    CREATE UNIQUE INDEX idx_trade_points_customer_sapcode
        ON trade_points (customer_id, sap_code)
        WHERE sap_code <> '';
  END IF;
END $$`},
		// The conflict-tolerant upsert in the parse pipeline targets the
		// join table's full row; make the duplicate-insert a no-op.
		{"unique pair on customer_order_products", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'customer_order_products')
    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_customer_order_products_pair') THEN
    CREATE UNIQUE INDEX idx_customer_order_products_pair
        ON customer_order_products (customer_order_id, customer_product_id);
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
