package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/infra"
	"github.com/baikov/orders-backend/internal/model"
	"github.com/baikov/orders-backend/internal/parser"
	"github.com/baikov/orders-backend/internal/repository"
	"github.com/baikov/orders-backend/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type OrderService interface {
	ProcessUpload(ctx context.Context, req dto.CreateCustomerOrderRequest) (*dto.CustomerOrderResponse, error)
	GetCustomerOrder(ctx context.Context, id uuid.UUID) (*dto.CustomerOrderResponse, error)
	ListCustomerOrders(ctx context.Context, filter dto.CustomerOrderFilter) (*dto.CustomerOrderListResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error)
	ExportOrderPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type orderService struct {
	repo         repository.OrderRepository
	customerRepo repository.CustomerRepository
	files        *infra.FileStore
	dispatcher   *worker.Dispatcher
	pdfPath      string
}

func NewOrderService(
	repo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	files *infra.FileStore,
	dispatcher *worker.Dispatcher,
	pdfPath string,
) OrderService {
	return &orderService{
		repo:         repo,
		customerRepo: customerRepo,
		files:        files,
		dispatcher:   dispatcher,
		pdfPath:      pdfPath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── ProcessUpload ─────────────────────────────────────────────────────────────
// One upload is one atomic operation:
//   1. Resolve customer, verify an adapter exists for its code
//   2. Store the raw file
//   3. BEGIN TX: create the upload record, run the adapter against a
//      transaction-bound store
//   4. COMMIT — on any parse error the whole tx rolls back and the stored
//      file is removed
//   5. (async) notification email

func (s *orderService) ProcessUpload(ctx context.Context, req dto.CreateCustomerOrderRequest) (*dto.CustomerOrderResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer id")
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	// Fail before anything is stored when no adapter can ever parse this.
	if !parser.Registered(customer.Code) {
		return nil, fmt.Errorf("%w: %q", parser.ErrUnknownFormat, customer.Code)
	}

	relPath, err := s.files.Save(customerID, req.FileName, req.Data)
	if err != nil {
		return nil, err
	}

	co := &model.CustomerOrder{
		CustomerID: customerID,
		FilePath:   relPath,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateCustomerOrder(ctx, tx, co); err != nil {
			return err
		}

		job := &parser.Job{
			Customer:      customer,
			CustomerOrder: co,
			FileName:      req.FileName,
			Data:          req.Data,
			Store:         repository.NewParseStore(s.repo, tx),
		}
		p, err := parser.New(job)
		if err != nil {
			return err
		}
		return p.Parse(ctx)
	})
	if txErr != nil {
		if rmErr := s.files.Remove(relPath); rmErr != nil {
			log.Warn().Err(rmErr).Str("file", relPath).Msg("could not remove stored file after failed parse")
		}
		return nil, txErr
	}

	// Best-effort notification — fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, map[string]interface{}{
			"customer_order_id": co.ID.String(),
			"customer_name":     customer.Name,
			"file":              relPath,
		})
	}

	// Re-fetch with associations for the response; fall back to the bare
	// record when associations cannot load (nil-DB unit tests).
	full, err := s.repo.FindCustomerOrderByID(ctx, co.ID)
	if err != nil {
		full = co
	}
	if full.Customer == nil {
		full.Customer = customer
	}
	return customerOrderToResponse(full), nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *orderService) GetCustomerOrder(ctx context.Context, id uuid.UUID) (*dto.CustomerOrderResponse, error) {
	co, err := s.repo.FindCustomerOrderByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer order not found")
	}
	return customerOrderToResponse(co), nil
}

func (s *orderService) ListCustomerOrders(ctx context.Context, filter dto.CustomerOrderFilter) (*dto.CustomerOrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	orders, total, err := s.repo.ListCustomerOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CustomerOrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *customerOrderToResponse(&orders[i]))
	}
	return &dto.CustomerOrderListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	return orderToResponse(o), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, *orderToResponse(&orders[i]))
	}
	return resp, nil
}

// ExportOrderPDF renders the picking sheet for one trade-point order and
// returns the path of the generated file.
func (s *orderService) ExportOrderPDF(ctx context.Context, id uuid.UUID) (string, error) {
	o, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return "", errors.New("order not found")
	}
	return infra.GenerateOrderPDF(o, s.pdfPath)
}

// ── Converters ────────────────────────────────────────────────────────────────

func customerOrderToResponse(co *model.CustomerOrder) *dto.CustomerOrderResponse {
	customerName := ""
	if co.Customer != nil {
		customerName = co.Customer.Name
	}
	products := make([]dto.CustomerProductResponse, 0, len(co.Products))
	for i := range co.Products {
		products = append(products, *customerProductToResponse(&co.Products[i]))
	}
	return &dto.CustomerOrderResponse{
		ID:           co.ID.String(),
		CustomerID:   co.CustomerID.String(),
		CustomerName: customerName,
		File:         co.FilePath,
		Products:     products,
		Created:      co.CreatedAt.Format("02.01.2006"),
	}
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              o.ID.String(),
		CustomerOrderID: o.CustomerOrderID.String(),
		TradePointID:    o.TradePointID.String(),
	}
	if o.TradePoint != nil {
		resp.TradePointName = o.TradePoint.Name
		resp.TradePointSapCode = o.TradePoint.SapCode
	}
	resp.Products = make([]dto.LineItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		li := dto.LineItemResponse{
			ID:     item.ID.String(),
			Amount: item.Amount,
		}
		if item.Product != nil {
			li.ProductName = item.Product.Name
			li.VendorCode = item.Product.VendorCode
			if item.Product.Product != nil {
				li.BaseProductName = item.Product.Product.Name
				li.BaseVendorCode = item.Product.Product.VendorCode
				li.AmountInPack = item.Product.Product.AmountInPack
			}
		}
		resp.Products = append(resp.Products, li)
	}
	return resp
}
