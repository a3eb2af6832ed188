package repository

import (
	"context"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TradePointRepository interface {
	Create(ctx context.Context, tp *model.TradePoint) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TradePoint, error)
	List(ctx context.Context, filter dto.TradePointFilter) ([]model.TradePoint, int64, error)
	Update(ctx context.Context, tp *model.TradePoint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tradePointRepo struct{ db *gorm.DB }

func NewTradePointRepository(db *gorm.DB) TradePointRepository { return &tradePointRepo{db: db} }

func (r *tradePointRepo) Create(ctx context.Context, tp *model.TradePoint) error {
	return r.db.WithContext(ctx).Create(tp).Error
}

func (r *tradePointRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TradePoint, error) {
	var tp model.TradePoint
	err := r.db.WithContext(ctx).First(&tp, id).Error
	return &tp, err
}

func (r *tradePointRepo) List(ctx context.Context, filter dto.TradePointFilter) ([]model.TradePoint, int64, error) {
	var tps []model.TradePoint
	var total int64

	q := r.db.WithContext(ctx).Model(&model.TradePoint{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("id").Limit(filter.Limit).Offset(offset).Find(&tps).Error
	return tps, total, err
}

func (r *tradePointRepo) Update(ctx context.Context, tp *model.TradePoint) error {
	return r.db.WithContext(ctx).Save(tp).Error
}

func (r *tradePointRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TradePoint{}, id).Error
}
