package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"
	"github.com/baikov/orders-backend/internal/repository"

	"github.com/google/uuid"
)

// ─── Global catalog ──────────────────────────────────────────────────────────

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:         req.Name,
		VendorCode:   req.VendorCode,
		AmountInPack: req.AmountInPack,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, *productToResponse(&products[i]))
	}
	return resp, total, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.VendorCode != nil {
		p.VendorCode = *req.VendorCode
	}
	if req.AmountInPack != nil {
		p.AmountInPack = req.AmountInPack
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		VendorCode:   p.VendorCode,
		AmountInPack: p.AmountInPack,
		Option:       fmt.Sprintf("%s (%s)", p.Name, p.VendorCode),
	}
}

// ─── Customer products ───────────────────────────────────────────────────────

type CustomerProductService interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerProductResponse, error)
	List(ctx context.Context, filter dto.CustomerProductFilter) ([]dto.CustomerProductResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerProductRequest) (*dto.CustomerProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerProductService struct {
	repo        repository.CustomerProductRepository
	productRepo repository.ProductRepository
}

func NewCustomerProductService(repo repository.CustomerProductRepository, productRepo repository.ProductRepository) CustomerProductService {
	return &customerProductService{repo: repo, productRepo: productRepo}
}

func (s *customerProductService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerProductResponse, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer product not found")
	}
	return customerProductToResponse(cp), nil
}

func (s *customerProductService) List(ctx context.Context, filter dto.CustomerProductFilter) ([]dto.CustomerProductResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	cps, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CustomerProductResponse, 0, len(cps))
	for i := range cps {
		resp = append(resp, *customerProductToResponse(&cps[i]))
	}
	return resp, total, nil
}

func (s *customerProductService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerProductRequest) (*dto.CustomerProductResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("customer product not found")
	}

	var productID *uuid.UUID
	if req.ProductID != nil {
		pid, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, errors.New("invalid product_id")
		}
		if _, err := s.productRepo.FindByID(ctx, pid); err != nil {
			return nil, errors.New("base product not found")
		}
		productID = &pid
	}

	if err := s.repo.SetBaseProduct(ctx, id, productID); err != nil {
		return nil, err
	}
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return customerProductToResponse(cp), nil
}

func (s *customerProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func customerProductToResponse(cp *model.CustomerProduct) *dto.CustomerProductResponse {
	resp := &dto.CustomerProductResponse{
		ID:         cp.ID.String(),
		Name:       cp.Name,
		VendorCode: cp.VendorCode,
		CustomerID: cp.CustomerID.String(),
	}
	if cp.Product != nil {
		resp.Product = productToResponse(cp.Product)
	}
	return resp
}
