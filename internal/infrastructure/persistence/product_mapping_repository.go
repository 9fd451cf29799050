package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/infrastructure/persistence/models"
)

// GormProductMappingRepository implements sync.ProductMappingRepository using GORM
type GormProductMappingRepository struct {
	db *gorm.DB
}

// NewGormProductMappingRepository creates a new GormProductMappingRepository
func NewGormProductMappingRepository(db *gorm.DB) *GormProductMappingRepository {
	return &GormProductMappingRepository{db: db}
}

var _ sync.ProductMappingRepository = (*GormProductMappingRepository)(nil)

// ---------------------------------------------------------------------------
// ProductMappingReader implementation
// ---------------------------------------------------------------------------

// FindByWooID finds a mapping by WooCommerce product ID
func (r *GormProductMappingRepository) FindByWooID(ctx context.Context, wooProductID string) (*sync.ProductMapping, error) {
	var model models.ProductMappingModel
	if err := r.db.WithContext(ctx).Where("woo_product_id = ?", wooProductID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShopifyID finds a mapping by Shopify product ID
func (r *GormProductMappingRepository) FindByShopifyID(ctx context.Context, shopifyProductID string) (*sync.ProductMapping, error) {
	var model models.ProductMappingModel
	if err := r.db.WithContext(ctx).Where("shopify_product_id = ?", shopifyProductID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByWooID reports whether a mapping exists for a WooCommerce product
func (r *GormProductMappingRepository) ExistsByWooID(ctx context.Context, wooProductID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductMappingModel{}).
		Where("woo_product_id = ?", wooProductID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByShopifyID reports whether a mapping exists for a Shopify product
func (r *GormProductMappingRepository) ExistsByShopifyID(ctx context.Context, shopifyProductID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductMappingModel{}).
		Where("shopify_product_id = ?", shopifyProductID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ---------------------------------------------------------------------------
// ProductMappingWriter implementation
// ---------------------------------------------------------------------------

// Create inserts a new mapping
func (r *GormProductMappingRepository) Create(ctx context.Context, mapping *sync.ProductMapping) error {
	var model models.ProductMappingModel
	model.FromDomain(mapping)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return sync.ErrMappingAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteByWooID removes a mapping by WooCommerce product ID
func (r *GormProductMappingRepository) DeleteByWooID(ctx context.Context, wooProductID string) error {
	return r.db.WithContext(ctx).
		Where("woo_product_id = ?", wooProductID).
		Delete(&models.ProductMappingModel{}).Error
}

// DeleteByShopifyID removes a mapping by Shopify product ID
func (r *GormProductMappingRepository) DeleteByShopifyID(ctx context.Context, shopifyProductID string) error {
	return r.db.WithContext(ctx).
		Where("shopify_product_id = ?", shopifyProductID).
		Delete(&models.ProductMappingModel{}).Error
}
