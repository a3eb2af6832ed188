package service

import (
	"context"
	"errors"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"
	"github.com/baikov/orders-backend/internal/repository"

	"github.com/google/uuid"
)

type TradePointService interface {
	Create(ctx context.Context, req dto.CreateTradePointRequest) (*dto.TradePointResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TradePointResponse, error)
	List(ctx context.Context, filter dto.TradePointFilter) ([]dto.TradePointResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateTradePointRequest) (*dto.TradePointResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tradePointService struct {
	repo         repository.TradePointRepository
	customerRepo repository.CustomerRepository
}

func NewTradePointService(repo repository.TradePointRepository, customerRepo repository.CustomerRepository) TradePointService {
	return &tradePointService{repo: repo, customerRepo: customerRepo}
}

func (s *tradePointService) Create(ctx context.Context, req dto.CreateTradePointRequest) (*dto.TradePointResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, errors.New("customer not found")
	}

	tp := &model.TradePoint{
		Name:       req.Name,
		SapCode:    req.SapCode,
		CustomerID: customerID,
	}
	if err := s.repo.Create(ctx, tp); err != nil {
		return nil, err
	}
	return tradePointToResponse(tp), nil
}

func (s *tradePointService) Get(ctx context.Context, id uuid.UUID) (*dto.TradePointResponse, error) {
	tp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("trade point not found")
	}
	return tradePointToResponse(tp), nil
}

func (s *tradePointService) List(ctx context.Context, filter dto.TradePointFilter) ([]dto.TradePointResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	tps, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.TradePointResponse, 0, len(tps))
	for i := range tps {
		resp = append(resp, *tradePointToResponse(&tps[i]))
	}
	return resp, total, nil
}

func (s *tradePointService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTradePointRequest) (*dto.TradePointResponse, error) {
	tp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("trade point not found")
	}
	if req.Name != nil {
		tp.Name = *req.Name
	}
	if req.SapCode != nil {
		tp.SapCode = *req.SapCode
	}
	if err := s.repo.Update(ctx, tp); err != nil {
		return nil, err
	}
	return tradePointToResponse(tp), nil
}

func (s *tradePointService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func tradePointToResponse(tp *model.TradePoint) *dto.TradePointResponse {
	return &dto.TradePointResponse{
		ID:         tp.ID.String(),
		Name:       tp.Name,
		SapCode:    tp.SapCode,
		CustomerID: tp.CustomerID.String(),
	}
}
