package parser

import (
	"context"

	"github.com/baikov/orders-backend/internal/model"

	"github.com/google/uuid"
)

// Store is the narrow persistence surface an adapter uses during one parse.
// The caller binds it to a single transaction: everything a parse writes is
// committed or rolled back as a whole.
//
// Get-or-create operations must be atomic under concurrent uploads racing to
// create the same record (unique constraint + conflict-tolerant insert, not
// read-then-write).
type Store interface {
	// GetOrCreateTradePointByName resolves a trade point by its name
	// within the customer, creating it on first reference.
	GetOrCreateTradePointByName(ctx context.Context, customerID uuid.UUID, name string) (*model.TradePoint, error)

	// GetOrCreateTradePointBySapCode resolves a trade point by external
	// system code; name is only applied when the record is created.
	GetOrCreateTradePointBySapCode(ctx context.Context, customerID uuid.UUID, sapCode, name string) (*model.TradePoint, error)

	// GetOrCreateProduct resolves a customer product by its natural key
	// (name, vendor code) within the customer.
	GetOrCreateProduct(ctx context.Context, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error)

	// GetOrCreateProductByName resolves by name alone; vendorCode is only
	// applied on creation (used by formats without a vendor code column,
	// which synthesize an opaque one).
	GetOrCreateProductByName(ctx context.Context, customerID uuid.UUID, name, vendorCode string) (*model.CustomerProduct, error)

	// FindProductByName looks a customer product up by name. The product
	// must already exist — extraction runs before order building — so a
	// miss is reported by the caller as ErrIntegrity.
	FindProductByName(ctx context.Context, customerID uuid.UUID, name string) (*model.CustomerProduct, error)

	CreateOrder(ctx context.Context, o *model.Order) error
	CreateLineItems(ctx context.Context, items []model.ProductInOrder) error

	// AttachProducts records the de-duplicated set of customer products
	// touched by the upload on its CustomerOrder. Called once per parse.
	AttachProducts(ctx context.Context, customerOrderID uuid.UUID, productIDs []uuid.UUID) error
}
