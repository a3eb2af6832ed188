package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/infra"
	"github.com/baikov/orders-backend/internal/model"
	"github.com/baikov/orders-backend/internal/parser"
	"github.com/baikov/orders-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo(customers ...*model.Customer) *stubCustomerRepo {
	r := &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByCode(_ context.Context, code string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) CountTradePoints(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubOrderRepo keeps everything the parse pipeline writes in memory.
// DB() is nil, so runTx calls straight through without a transaction.
type stubOrderRepo struct {
	customerOrders map[uuid.UUID]*model.CustomerOrder
	tradePoints    []*model.TradePoint
	products       []*model.CustomerProduct
	orders         []*model.Order
	items          []model.ProductInOrder
	attached       map[uuid.UUID][]uuid.UUID
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		customerOrders: make(map[uuid.UUID]*model.CustomerOrder),
		attached:       make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) FindCustomerOrderByID(_ context.Context, id uuid.UUID) (*model.CustomerOrder, error) {
	co, ok := r.customerOrders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return co, nil
}

func (r *stubOrderRepo) ListCustomerOrders(_ context.Context, filter dto.CustomerOrderFilter) ([]model.CustomerOrder, int64, error) {
	var out []model.CustomerOrder
	for _, co := range r.customerOrders {
		if filter.CustomerID == "" || co.CustomerID.String() == filter.CustomerID {
			out = append(out, *co)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) FindOrderByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubOrderRepo) ListOrders(_ context.Context, _ dto.OrderFilter) ([]model.Order, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) CreateCustomerOrder(_ context.Context, _ *gorm.DB, co *model.CustomerOrder) error {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	r.customerOrders[co.ID] = co
	return nil
}

func (r *stubOrderRepo) GetOrCreateTradePointByName(_ context.Context, _ *gorm.DB, customerID uuid.UUID, name string) (*model.TradePoint, error) {
	for _, tp := range r.tradePoints {
		if tp.CustomerID == customerID && tp.Name == name {
			return tp, nil
		}
	}
	tp := &model.TradePoint{ID: uuid.New(), CustomerID: customerID, Name: name}
	r.tradePoints = append(r.tradePoints, tp)
	return tp, nil
}

func (r *stubOrderRepo) GetOrCreateTradePointBySapCode(_ context.Context, _ *gorm.DB, customerID uuid.UUID, sapCode, name string) (*model.TradePoint, error) {
	for _, tp := range r.tradePoints {
		if tp.CustomerID == customerID && tp.SapCode == sapCode {
			return tp, nil
		}
	}
	tp := &model.TradePoint{ID: uuid.New(), CustomerID: customerID, SapCode: sapCode, Name: name}
	r.tradePoints = append(r.tradePoints, tp)
	return tp, nil
}

func (r *stubOrderRepo) GetOrCreateProduct(_ context.Context, _ *gorm.DB, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error) {
	for _, cp := range r.products {
		if cp.CustomerID == customerID && cp.Name == name && cp.VendorCode == vendorCode {
			return cp, nil
		}
	}
	cp := &model.CustomerProduct{ID: uuid.New(), CustomerID: customerID, Name: name, VendorCode: vendorCode}
	r.products = append(r.products, cp)
	return cp, nil
}

func (r *stubOrderRepo) GetOrCreateProductByName(_ context.Context, _ *gorm.DB, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error) {
	for _, cp := range r.products {
		if cp.CustomerID == customerID && cp.Name == name {
			return cp, nil
		}
	}
	cp := &model.CustomerProduct{ID: uuid.New(), CustomerID: customerID, Name: name, VendorCode: vendorCode}
	r.products = append(r.products, cp)
	return cp, nil
}

func (r *stubOrderRepo) FindProductByName(_ context.Context, _ *gorm.DB, customerID uuid.UUID, name string) (*model.CustomerProduct, error) {
	for _, cp := range r.products {
		if cp.CustomerID == customerID && cp.Name == name {
			return cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubOrderRepo) CreateOrder(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) CreateLineItems(_ context.Context, _ *gorm.DB, items []model.ProductInOrder) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *stubOrderRepo) AttachProducts(_ context.Context, _ *gorm.DB, customerOrderID uuid.UUID, productIDs []uuid.UUID) error {
	r.attached[customerOrderID] = append(r.attached[customerOrderID], productIDs...)
	return nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Fixtures ─────────────────────────────────────────────────────────────────

func uploadFixture(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func buildOrderSvc(t *testing.T, customer *model.Customer) (OrderService, *stubOrderRepo, string) {
	t.Helper()
	storage := t.TempDir()
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, newStubCustomerRepo(customer), infra.NewFileStore(storage), nil, t.TempDir())
	return svc, repo, storage
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestProcessUploadHappyPath(t *testing.T) {
	customer := &model.Customer{ID: uuid.New(), Name: "Строй-Торговля", Code: "stroytorgovlya"}
	svc, repo, storage := buildOrderSvc(t, customer)

	data := uploadFixture(t, [][]interface{}{
		{"Заказ поставщику"},
		{"Артикул", "Второе наименование товара", "Store A", "Store B"},
		{"001", "Widget", 5, 0},
	})

	resp, err := svc.ProcessUpload(context.Background(), dto.CreateCustomerOrderRequest{
		CustomerID: customer.ID.String(),
		FileName:   "order.xlsx",
		Data:       data,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, customer.ID.String(), resp.CustomerID)
	assert.Equal(t, "Строй-Торговля", resp.CustomerName)
	assert.NotEmpty(t, resp.File)
	assert.Regexp(t, `^\d{2}\.\d{2}\.\d{4}$`, resp.Created)

	// The upload record, one order for Store A, one line item.
	require.Len(t, repo.customerOrders, 1)
	require.Len(t, repo.orders, 1)
	require.Len(t, repo.items, 1)
	assert.Equal(t, 5, repo.items[0].Amount)
	assert.Len(t, repo.attached[repo.orders[0].CustomerOrderID], 1)

	// The raw file hit disk.
	assert.Len(t, storedFiles(t, storage), 1)
}

func TestProcessUploadUnknownCustomer(t *testing.T) {
	customer := &model.Customer{ID: uuid.New(), Name: "X", Code: "stroytorgovlya"}
	svc, repo, storage := buildOrderSvc(t, customer)

	_, err := svc.ProcessUpload(context.Background(), dto.CreateCustomerOrderRequest{
		CustomerID: uuid.NewString(),
		FileName:   "order.xlsx",
		Data:       []byte("x"),
	})
	require.Error(t, err)
	assert.Equal(t, "customer not found", err.Error())
	assert.Empty(t, repo.customerOrders)
	assert.Empty(t, storedFiles(t, storage))
}

func TestProcessUploadUnknownFormatStoresNothing(t *testing.T) {
	// A customer whose code has no adapter: rejected before the file is
	// written or any record created.
	customer := &model.Customer{ID: uuid.New(), Name: "Legacy Chain", Code: "legacy"}
	svc, repo, storage := buildOrderSvc(t, customer)

	_, err := svc.ProcessUpload(context.Background(), dto.CreateCustomerOrderRequest{
		CustomerID: customer.ID.String(),
		FileName:   "order.xlsx",
		Data:       []byte("irrelevant"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnknownFormat)
	assert.Empty(t, repo.customerOrders)
	assert.Empty(t, storedFiles(t, storage))
}

func TestProcessUploadCorruptFileRemovesStoredFile(t *testing.T) {
	customer := &model.Customer{ID: uuid.New(), Name: "Строй-Торговля", Code: "stroytorgovlya"}
	svc, _, storage := buildOrderSvc(t, customer)

	_, err := svc.ProcessUpload(context.Background(), dto.CreateCustomerOrderRequest{
		CustomerID: customer.ID.String(),
		FileName:   "order.xlsx",
		Data:       []byte("not a workbook at all"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnreadableFile)
	// The stored copy is cleaned up after the failed parse.
	assert.Empty(t, storedFiles(t, storage))
}

func TestGetCustomerOrderNotFound(t *testing.T) {
	customer := &model.Customer{ID: uuid.New(), Name: "X", Code: "stroytorgovlya"}
	svc, _, _ := buildOrderSvc(t, customer)

	_, err := svc.GetCustomerOrder(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestListCustomerOrdersDefaultsPagination(t *testing.T) {
	customer := &model.Customer{ID: uuid.New(), Name: "X", Code: "stroytorgovlya"}
	svc, _, _ := buildOrderSvc(t, customer)

	resp, err := svc.ListCustomerOrders(context.Background(), dto.CustomerOrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Empty(t, resp.Data)
}
