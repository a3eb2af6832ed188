package service

import (
	"context"
	"errors"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"
	"github.com/baikov/orders-backend/internal/parser"
	"github.com/baikov/orders-backend/internal/repository"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo      repository.CustomerRepository
	orderRepo repository.OrderRepository
}

func NewCustomerService(repo repository.CustomerRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{repo: repo, orderRepo: orderRepo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	// A customer without an adapter would accept uploads that can never be
	// parsed, so the code must be registered up front.
	if !parser.Registered(req.Code) {
		return nil, errors.New("no parser is registered for this customer code")
	}
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, errors.New("customer code already in use")
	}

	c := &model.Customer{
		Name:         req.Name,
		Code:         req.Code,
		OrderInPacks: req.OrderInPacks,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c), nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	return s.toResponse(ctx, c), nil
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, *s.toResponse(ctx, &customers[i]))
	}
	return resp, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	// Code is immutable: it is the adapter-dispatch key for already stored
	// uploads.
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.OrderInPacks != nil {
		c.OrderInPacks = *req.OrderInPacks
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c), nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// toResponse enriches the customer with the trade point count and the most
// recent upload; enrichment failures degrade to the bare customer.
func (s *customerService) toResponse(ctx context.Context, c *model.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Code:         c.Code,
		OrderInPacks: c.OrderInPacks,
	}

	if n, err := s.repo.CountTradePoints(ctx, c.ID); err == nil {
		resp.TradePointCount = n
	}

	orders, _, err := s.orderRepo.ListCustomerOrders(ctx, dto.CustomerOrderFilter{
		CustomerID: c.ID.String(), Page: 1, Limit: 1,
	})
	if err == nil && len(orders) > 0 {
		resp.LastOrder = customerOrderToResponse(&orders[0])
	}
	return resp
}
