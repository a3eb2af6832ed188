package repository

import (
	"context"

	"github.com/baikov/orders-backend/internal/model"
	"github.com/baikov/orders-backend/internal/parser"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parseStore binds an OrderRepository and one transaction into the narrow
// parser.Store surface. Everything an adapter writes through it lands in the
// same transaction and commits or rolls back as a whole.
type parseStore struct {
	repo OrderRepository
	tx   *gorm.DB
}

// NewParseStore returns a parser.Store scoped to tx.
func NewParseStore(repo OrderRepository, tx *gorm.DB) parser.Store {
	return &parseStore{repo: repo, tx: tx}
}

func (s *parseStore) GetOrCreateTradePointByName(ctx context.Context, customerID uuid.UUID, name string) (*model.TradePoint, error) {
	return s.repo.GetOrCreateTradePointByName(ctx, s.tx, customerID, name)
}

func (s *parseStore) GetOrCreateTradePointBySapCode(ctx context.Context, customerID uuid.UUID, sapCode, name string) (*model.TradePoint, error) {
	return s.repo.GetOrCreateTradePointBySapCode(ctx, s.tx, customerID, sapCode, name)
}

func (s *parseStore) GetOrCreateProduct(ctx context.Context, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error) {
	return s.repo.GetOrCreateProduct(ctx, s.tx, customerID, name, vendorCode)
}

func (s *parseStore) GetOrCreateProductByName(ctx context.Context, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error) {
	return s.repo.GetOrCreateProductByName(ctx, s.tx, customerID, name, vendorCode)
}

func (s *parseStore) FindProductByName(ctx context.Context, customerID uuid.UUID, name string) (*model.CustomerProduct, error) {
	return s.repo.FindProductByName(ctx, s.tx, customerID, name)
}

func (s *parseStore) CreateOrder(ctx context.Context, o *model.Order) error {
	return s.repo.CreateOrder(ctx, s.tx, o)
}

func (s *parseStore) CreateLineItems(ctx context.Context, items []model.ProductInOrder) error {
	return s.repo.CreateLineItems(ctx, s.tx, items)
}

func (s *parseStore) AttachProducts(ctx context.Context, customerOrderID uuid.UUID, productIDs []uuid.UUID) error {
	return s.repo.AttachProducts(ctx, s.tx, customerOrderID, productIDs)
}
