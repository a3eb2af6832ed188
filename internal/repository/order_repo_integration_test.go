//go:build integration

package repository

// Integration tests for the parse-time get-or-create operations against a
// real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/repository/... -v

import (
	"context"
	"sync"
	"testing"

	"github.com/baikov/orders-backend/internal/infra"
	"github.com/baikov/orders-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("orders_test"),
		tcPostgres.WithUsername("orders"),
		tcPostgres.WithPassword("orders"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(pgURL)
	require.NoError(t, err)
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()
	c := &model.Customer{Name: "Test Chain", Code: "stroytorgovlya"}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Concurrent uploads racing to create the same trade point must converge on
// a single row.
func TestGetOrCreateTradePointConcurrent(t *testing.T) {
	db := setupDB(t)
	customer := seedCustomer(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	const goroutines = 8
	ids := make([]uuid.UUID, goroutines)
	errs := make(chan error, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tp, err := repo.GetOrCreateTradePointByName(ctx, nil, customer.ID, "Store A")
			if err != nil {
				errs <- err
				return
			}
			ids[i] = tp.ID
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}

	var count int64
	require.NoError(t, db.Model(&model.TradePoint{}).
		Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// The same trade point name under different customers yields distinct rows.
func TestTradePointScopedPerCustomer(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	c1 := seedCustomer(t, db)
	c2 := &model.Customer{Name: "Other Chain", Code: "oseni"}
	require.NoError(t, db.Create(c2).Error)

	tp1, err := repo.GetOrCreateTradePointByName(ctx, nil, c1.ID, "Store A")
	require.NoError(t, err)
	tp2, err := repo.GetOrCreateTradePointByName(ctx, nil, c2.ID, "Store A")
	require.NoError(t, err)
	assert.NotEqual(t, tp1.ID, tp2.ID)
}

func TestGetOrCreateTradePointBySapCodeIgnoresNameOnHit(t *testing.T) {
	db := setupDB(t)
	customer := seedCustomer(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateTradePointBySapCode(ctx, nil, customer.ID, "SAP1", "Original Name")
	require.NoError(t, err)

	second, err := repo.GetOrCreateTradePointBySapCode(ctx, nil, customer.ID, "SAP1", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Original Name", second.Name)
}

func TestGetOrCreateProductNaturalKey(t *testing.T) {
	db := setupDB(t)
	customer := seedCustomer(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	a, err := repo.GetOrCreateProduct(ctx, nil, customer.ID, "Widget", "001")
	require.NoError(t, err)
	b, err := repo.GetOrCreateProduct(ctx, nil, customer.ID, "Widget", "001")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	// A different vendor code is a different product.
	c, err := repo.GetOrCreateProduct(ctx, nil, customer.ID, "Widget", "002")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestGetOrCreateProductByNameKeepsFirstCode(t *testing.T) {
	db := setupDB(t)
	customer := seedCustomer(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	a, err := repo.GetOrCreateProductByName(ctx, nil, customer.ID, "Эклер", "code-one")
	require.NoError(t, err)
	b, err := repo.GetOrCreateProductByName(ctx, nil, customer.ID, "Эклер", "code-two")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "code-one", b.VendorCode)
}

// A parse transaction that fails must leave no partial rows behind.
func TestParseTransactionRollsBack(t *testing.T) {
	db := setupDB(t)
	customer := seedCustomer(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		co := &model.CustomerOrder{CustomerID: customer.ID, FilePath: "orders/x.xlsx"}
		if err := repo.CreateCustomerOrder(ctx, tx, co); err != nil {
			return err
		}
		if _, err := repo.GetOrCreateTradePointByName(ctx, tx, customer.ID, "Store A"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	var orders, tps int64
	require.NoError(t, db.Model(&model.CustomerOrder{}).Count(&orders).Error)
	require.NoError(t, db.Model(&model.TradePoint{}).Count(&tps).Error)
	assert.Zero(t, orders)
	assert.Zero(t, tps)
}
