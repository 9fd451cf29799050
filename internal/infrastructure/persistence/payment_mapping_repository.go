package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/syncbridge/backend/internal/domain/payment"
	"github.com/syncbridge/backend/internal/infrastructure/persistence/models"
)

// GormPaymentMappingRepository implements payment.MappingRepository using GORM
type GormPaymentMappingRepository struct {
	db *gorm.DB
}

// NewGormPaymentMappingRepository creates a new GormPaymentMappingRepository
func NewGormPaymentMappingRepository(db *gorm.DB) *GormPaymentMappingRepository {
	return &GormPaymentMappingRepository{db: db}
}

var _ payment.MappingRepository = (*GormPaymentMappingRepository)(nil)

// FindByPayID finds a payment mapping by gateway pay ID
func (r *GormPaymentMappingRepository) FindByPayID(ctx context.Context, payID string) (*payment.Mapping, error) {
	var model models.PaymentMappingModel
	if err := r.db.WithContext(ctx).Where("pay_id = ?", payID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID finds the most recent payment mapping for an order
func (r *GormPaymentMappingRepository) FindByOrderID(ctx context.Context, orderID string) (*payment.Mapping, error) {
	var model models.PaymentMappingModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new payment mapping
func (r *GormPaymentMappingRepository) Create(ctx context.Context, mapping *payment.Mapping) error {
	var model models.PaymentMappingModel
	model.FromDomain(mapping)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists status changes to an existing payment mapping
func (r *GormPaymentMappingRepository) Update(ctx context.Context, mapping *payment.Mapping) error {
	var model models.PaymentMappingModel
	model.FromDomain(mapping)

	result := r.db.WithContext(ctx).Model(&models.PaymentMappingModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return payment.ErrPaymentMappingNotFound
	}
	return nil
}
