package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memberSheet builds one bundle member: the trade point block in the fixed
// header cells, a caption row, then product rows (name, vendor code, qty).
func memberSheet(t *testing.T, name, address, sapCode string, products [][]interface{}) []byte {
	t.Helper()
	rows := [][]interface{}{
		{"Магазин:", name},
		{"Адрес:", address},
		{"Код:", sapCode},
		{"Товар", "Артикул", "Кол-во"},
	}
	rows = append(rows, products...)
	return xlsxBytes(t, rows)
}

// zipBytes assembles an in-memory ZIP from named members.
func zipBytes(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestTeremokBundleParse(t *testing.T) {
	data := zipBytes(t, map[string][]byte{
		"store1.xlsx": memberSheet(t, "Теремок Центральный", "ул. Ленина, 1", "T001", [][]interface{}{
			{"Блины", "BL-01", 10},
			{"Сырники", "SR-02", 0},
		}),
		"store2.xlsx": memberSheet(t, "Теремок Северный", "", "T002", [][]interface{}{
			{"Блины", "BL-01", 4},
		}),
	})

	store := newMemStore()
	job := newTestJob("teremok", data, store)
	p, err := New(job)
	require.NoError(t, err)
	require.NoError(t, p.Parse(context.Background()))

	// Trade point names: "name (address)" when an address is present.
	tp1 := store.tradePointByName("Теремок Центральный (ул. Ленина, 1)")
	require.NotNil(t, tp1)
	assert.Equal(t, "T001", tp1.SapCode)
	tp2 := store.tradePointByName("Теремок Северный")
	require.NotNil(t, tp2)

	// One order per member with positive quantities.
	require.Len(t, store.orders, 2)
	o1 := store.orderFor(t, "Теремок Центральный (ул. Ленина, 1)")
	items1 := store.items[o1.ID]
	require.Len(t, items1, 1)
	assert.Equal(t, 10, items1[0].Amount)

	// The same product in both members resolves to one record; the bundle
	// shares a single touched set.
	assert.Equal(t, 1, store.attachCalls)
	assert.Len(t, store.attached, 1)
}

func TestTeremokMemberWithoutCode(t *testing.T) {
	data := zipBytes(t, map[string][]byte{
		"store.xlsx": memberSheet(t, "Теремок", "", "", [][]interface{}{
			{"Блины", "BL-01", 1},
		}),
	})

	store := newMemStore()
	job := newTestJob("teremok", data, store)
	p, err := New(job)
	require.NoError(t, err)
	err = p.Parse(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

func TestTeremokZeroQuantityMemberPersistsNoOrder(t *testing.T) {
	data := zipBytes(t, map[string][]byte{
		"store.xlsx": memberSheet(t, "Теремок", "", "T001", [][]interface{}{
			{"Блины", "BL-01", 0},
		}),
	})

	store := newMemStore()
	job := newTestJob("teremok", data, store)
	p, err := New(job)
	require.NoError(t, err)
	require.NoError(t, p.Parse(context.Background()))

	// Product and trade point exist, order does not.
	assert.NotNil(t, store.productByName("Блины"))
	assert.Len(t, store.tradePoints, 1)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.attached)
}

func TestReadArchiveIgnoresNonSpreadsheetMembers(t *testing.T) {
	data := zipBytes(t, map[string][]byte{
		"readme.txt":       []byte("ignore me"),
		"store.xlsx":       memberSheet(t, "Теремок", "", "T001", nil),
		"photo.jpeg":       {0xff, 0xd8},
		"nested/.DS_Store": {0x00},
	})

	sheets, err := ReadArchive(data)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "store.xlsx", sheets[0].FileName)
	assert.Equal(t, "T001", sheets[0].Meta.SapCode)
}

func TestReadArchiveNotAnArchive(t *testing.T) {
	_, err := ReadArchive([]byte("just some text, not a zip"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAnArchive)
}

func TestReadArchiveSizeCeiling(t *testing.T) {
	data := make([]byte, MaxArchiveSize+1)
	_, err := ReadArchive(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestReadArchiveCorruptMember(t *testing.T) {
	data := zipBytes(t, map[string][]byte{
		"store.xlsx": []byte("not really a workbook"),
	})
	_, err := ReadArchive(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}
