package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKruasanBasicParse(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"", "Центр", "Север"},
		{"", "Магазин 1", "Магазин 2"},
		{"", "SAP1", "SAP2"},
		{"Круассан с миндалём", 5, 0},
		{"Эклер", 2, "1,5"},
	})

	store := newMemStore()
	job := newTestJob("kruasan", data, store)
	p, err := New(job)
	require.NoError(t, err)
	require.NoError(t, p.Parse(context.Background()))

	// Trade points keyed by external code with a composed display name.
	require.Len(t, store.tradePoints, 2)
	tp1 := store.tradePointByName("Магазин 1 (Центр)")
	require.NotNil(t, tp1)
	assert.Equal(t, "SAP1", tp1.SapCode)

	// Products carry a synthesized opaque vendor code.
	croissant := store.productByName("Круассан с миндалём")
	require.NotNil(t, croissant)
	assert.Len(t, croissant.VendorCode, 32)
	eclair := store.productByName("Эклер")
	require.NotNil(t, eclair)
	assert.NotEqual(t, croissant.VendorCode, eclair.VendorCode)

	// First column: both products ordered. Second: only the fractional
	// eclair quantity, truncated to 1.
	require.Len(t, store.orders, 2)
	o1 := store.orderFor(t, "Магазин 1 (Центр)")
	require.Len(t, store.items[o1.ID], 2)
	o2 := store.orderFor(t, "Магазин 2 (Север)")
	items2 := store.items[o2.ID]
	require.Len(t, items2, 1)
	assert.Equal(t, eclair.ID, items2[0].ProductID)
	assert.Equal(t, 1, items2[0].Amount)

	assert.Equal(t, 1, store.attachCalls)
	assert.Len(t, store.attached, 2)
}

func TestKruasanBlankCodeColumnIsSkipped(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"", "Центр", ""},
		{"", "Магазин 1", ""},
		{"", "SAP1", ""},
		{"Эклер", 2, 7},
	})

	store := newMemStore()
	job := newTestJob("kruasan", data, store)
	p, err := New(job)
	require.NoError(t, err)
	require.NoError(t, p.Parse(context.Background()))

	// The third column has no trade point block: no record, no order,
	// even though it carries quantities.
	require.Len(t, store.tradePoints, 1)
	require.Len(t, store.orders, 1)
	assert.Equal(t, store.tradePoints[0].ID, store.orders[0].TradePointID)
}

func TestKruasanEmptyWorkbook(t *testing.T) {
	data := xlsxBytes(t, nil)

	store := newMemStore()
	job := newTestJob("kruasan", data, store)
	p, err := New(job)
	require.NoError(t, err)
	require.NoError(t, p.Parse(context.Background()))

	assert.Empty(t, store.tradePoints)
	assert.Empty(t, store.orders)
}

func TestKruasanExistingProductKeptOnReparse(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"", "Центр"},
		{"", "Магазин 1"},
		{"", "SAP1"},
		{"Эклер", 3},
	})

	store := newMemStore()
	job := newTestJob("kruasan", data, store)
	p, err := New(job)
	require.NoError(t, err)
	require.NoError(t, p.Parse(context.Background()))
	firstCode := store.productByName("Эклер").VendorCode

	// Second upload resolves the product by name; the synthesized code is
	// not regenerated.
	job2 := newTestJob("kruasan", data, store)
	job2.Customer = job.Customer
	p2, err := New(job2)
	require.NoError(t, err)
	require.NoError(t, p2.Parse(context.Background()))

	require.Len(t, store.products, 1)
	assert.Equal(t, firstCode, store.products[0].VendorCode)
}
