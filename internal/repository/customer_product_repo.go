package repository

import (
	"context"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerProductRepository is the access contract for per-customer product
// aliases. Creation happens only inside the parse pipeline (see
// OrderRepository); this interface serves the admin API, where the only
// mutable field is the base-product link.
type CustomerProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerProduct, error)
	List(ctx context.Context, filter dto.CustomerProductFilter) ([]model.CustomerProduct, int64, error)
	SetBaseProduct(ctx context.Context, id uuid.UUID, productID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerProductRepo struct{ db *gorm.DB }

func NewCustomerProductRepository(db *gorm.DB) CustomerProductRepository {
	return &customerProductRepo{db: db}
}

func (r *customerProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerProduct, error) {
	var cp model.CustomerProduct
	err := r.db.WithContext(ctx).Preload("Product").First(&cp, id).Error
	return &cp, err
}

func (r *customerProductRepo) List(ctx context.Context, filter dto.CustomerProductFilter) ([]model.CustomerProduct, int64, error) {
	var cps []model.CustomerProduct
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CustomerProduct{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Order("id").Limit(filter.Limit).Offset(offset).Find(&cps).Error
	return cps, total, err
}

func (r *customerProductRepo) SetBaseProduct(ctx context.Context, id uuid.UUID, productID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CustomerProduct{}).
		Where("id = ?", id).Update("product_id", productID).Error
}

func (r *customerProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CustomerProduct{}, id).Error
}
