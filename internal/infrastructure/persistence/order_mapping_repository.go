package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/infrastructure/persistence/models"
)

// GormOrderMappingRepository implements sync.OrderMappingRepository using GORM
type GormOrderMappingRepository struct {
	db *gorm.DB
}

// NewGormOrderMappingRepository creates a new GormOrderMappingRepository
func NewGormOrderMappingRepository(db *gorm.DB) *GormOrderMappingRepository {
	return &GormOrderMappingRepository{db: db}
}

var _ sync.OrderMappingRepository = (*GormOrderMappingRepository)(nil)

// FindByWooID finds a mapping by WooCommerce order ID
func (r *GormOrderMappingRepository) FindByWooID(ctx context.Context, wooOrderID string) (*sync.OrderMapping, error) {
	var model models.OrderMappingModel
	if err := r.db.WithContext(ctx).Where("woo_order_id = ?", wooOrderID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShopifyID finds a mapping by Shopify order ID
func (r *GormOrderMappingRepository) FindByShopifyID(ctx context.Context, shopifyOrderID string) (*sync.OrderMapping, error) {
	var model models.OrderMappingModel
	if err := r.db.WithContext(ctx).Where("shopify_order_id = ?", shopifyOrderID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new order mapping
func (r *GormOrderMappingRepository) Create(ctx context.Context, mapping *sync.OrderMapping) error {
	var model models.OrderMappingModel
	model.FromDomain(mapping)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return sync.ErrMappingAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteByWooID removes a mapping by WooCommerce order ID
func (r *GormOrderMappingRepository) DeleteByWooID(ctx context.Context, wooOrderID string) error {
	return r.db.WithContext(ctx).
		Where("woo_order_id = ?", wooOrderID).
		Delete(&models.OrderMappingModel{}).Error
}
