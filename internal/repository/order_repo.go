package repository

import (
	"context"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository covers everything the upload pipeline and the read API
// need: CRUD-ish reads for customer orders and trade-point orders, plus the
// parse-time operations. Parse-time methods take the tx instance — the whole
// parse of one upload runs inside a single transaction opened by the service.
//
// Get-or-create methods are implemented as INSERT … ON CONFLICT DO NOTHING
// followed by a re-fetch, so concurrent uploads racing to create the same
// trade point or product converge on one row instead of failing or
// duplicating.
type OrderRepository interface {
	// Reads
	FindCustomerOrderByID(ctx context.Context, id uuid.UUID) (*model.CustomerOrder, error)
	ListCustomerOrders(ctx context.Context, filter dto.CustomerOrderFilter) ([]model.CustomerOrder, int64, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error)

	// Parse-time operations — callers must pass the tx instance
	CreateCustomerOrder(ctx context.Context, tx *gorm.DB, co *model.CustomerOrder) error
	GetOrCreateTradePointByName(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name string) (*model.TradePoint, error)
	GetOrCreateTradePointBySapCode(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, sapCode, name string) (*model.TradePoint, error)
	GetOrCreateProduct(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error)
	GetOrCreateProductByName(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error)
	FindProductByName(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name string) (*model.CustomerProduct, error)
	CreateOrder(ctx context.Context, tx *gorm.DB, o *model.Order) error
	CreateLineItems(ctx context.Context, tx *gorm.DB, items []model.ProductInOrder) error
	AttachProducts(ctx context.Context, tx *gorm.DB, customerOrderID uuid.UUID, productIDs []uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

// conn prefers the transaction when one is passed.
func (r *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ─── Reads ───────────────────────────────────────────────────────────────────

func (r *orderRepo) FindCustomerOrderByID(ctx context.Context, id uuid.UUID) (*model.CustomerOrder, error) {
	var co model.CustomerOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Products").
		Preload("Products.Product").
		First(&co, id).Error
	return &co, err
}

func (r *orderRepo) ListCustomerOrders(ctx context.Context, filter dto.CustomerOrderFilter) ([]model.CustomerOrder, int64, error) {
	var orders []model.CustomerOrder
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CustomerOrder{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").
		Preload("Products").
		Preload("Products.Product").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) FindOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("TradePoint").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Product").
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) ListOrders(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error) {
	var orders []model.Order

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.CustomerOrderID != "" {
		q = q.Where("customer_order_id = ?", filter.CustomerOrderID)
	}
	if filter.TradePointID != "" {
		q = q.Where("trade_point_id = ?", filter.TradePointID)
	}
	err := q.Preload("TradePoint").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Product").
		Order("id").
		Find(&orders).Error
	return orders, err
}

// ─── Parse-time operations ───────────────────────────────────────────────────

func (r *orderRepo) CreateCustomerOrder(ctx context.Context, tx *gorm.DB, co *model.CustomerOrder) error {
	return r.conn(tx).WithContext(ctx).Create(co).Error
}

func (r *orderRepo) GetOrCreateTradePointByName(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name string) (*model.TradePoint, error) {
	db := r.conn(tx).WithContext(ctx)

	tp := model.TradePoint{CustomerID: customerID, Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&tp).Error
	if err != nil {
		return nil, err
	}

	// Re-fetch: on conflict the insert returned no row.
	var out model.TradePoint
	err = db.Where("customer_id = ? AND name = ?", customerID, name).First(&out).Error
	return &out, err
}

func (r *orderRepo) GetOrCreateTradePointBySapCode(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, sapCode, name string) (*model.TradePoint, error) {
	db := r.conn(tx).WithContext(ctx)

	var out model.TradePoint
	err := db.Where("customer_id = ? AND sap_code = ?", customerID, sapCode).First(&out).Error
	if err == nil {
		return &out, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tp := model.TradePoint{CustomerID: customerID, SapCode: sapCode, Name: name}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "sap_code"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			clause.Neq{Column: clause.Column{Name: "sap_code"}, Value: ""},
		}},
		DoNothing: true,
	}).Create(&tp).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("customer_id = ? AND sap_code = ?", customerID, sapCode).First(&out).Error
	return &out, err
}

func (r *orderRepo) GetOrCreateProduct(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error) {
	db := r.conn(tx).WithContext(ctx)

	cp := model.CustomerProduct{CustomerID: customerID, Name: name, VendorCode: vendorCode}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "name"}, {Name: "vendor_code"}},
		DoNothing: true,
	}).Create(&cp).Error
	if err != nil {
		return nil, err
	}

	var out model.CustomerProduct
	err = db.Where("customer_id = ? AND name = ? AND vendor_code = ?", customerID, name, vendorCode).
		First(&out).Error
	return &out, err
}

func (r *orderRepo) GetOrCreateProductByName(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error) {
	db := r.conn(tx).WithContext(ctx)

	var out model.CustomerProduct
	err := db.Where("customer_id = ? AND name = ?", customerID, name).Order("id").First(&out).Error
	if err == nil {
		return &out, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// vendorCode here is a synthesized unique token, so the natural-key
	// conflict target cannot fire for it; the insert only races with an
	// identical concurrent upload, which the re-fetch absorbs.
	cp := model.CustomerProduct{CustomerID: customerID, Name: name, VendorCode: vendorCode}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "name"}, {Name: "vendor_code"}},
		DoNothing: true,
	}).Create(&cp).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("customer_id = ? AND name = ?", customerID, name).Order("id").First(&out).Error
	return &out, err
}

func (r *orderRepo) FindProductByName(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, name string) (*model.CustomerProduct, error) {
	var out model.CustomerProduct
	err := r.conn(tx).WithContext(ctx).
		Where("customer_id = ? AND name = ?", customerID, name).
		Order("id").First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *orderRepo) CreateOrder(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return r.conn(tx).WithContext(ctx).Create(o).Error
}

func (r *orderRepo) CreateLineItems(ctx context.Context, tx *gorm.DB, items []model.ProductInOrder) error {
	if len(items) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&items).Error
}

func (r *orderRepo) AttachProducts(ctx context.Context, tx *gorm.DB, customerOrderID uuid.UUID, productIDs []uuid.UUID) error {
	db := r.conn(tx).WithContext(ctx)
	// Plain join-table inserts: gorm's association Append would upsert the
	// product rows themselves, which parsing already owns.
	for _, pid := range productIDs {
		err := db.Exec(
			`INSERT INTO customer_order_products (customer_order_id, customer_product_id)
			 VALUES (?, ?) ON CONFLICT DO NOTHING`,
			customerOrderID, pid,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}
