package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/infrastructure/persistence/models"
)

// GormVariantMappingRepository implements sync.VariantMappingRepository using GORM
type GormVariantMappingRepository struct {
	db *gorm.DB
}

// NewGormVariantMappingRepository creates a new GormVariantMappingRepository
func NewGormVariantMappingRepository(db *gorm.DB) *GormVariantMappingRepository {
	return &GormVariantMappingRepository{db: db}
}

var _ sync.VariantMappingRepository = (*GormVariantMappingRepository)(nil)

// FindByWooID finds a mapping by WooCommerce variation ID
func (r *GormVariantMappingRepository) FindByWooID(ctx context.Context, wooVariantID string) (*sync.VariantMapping, error) {
	var model models.VariantMappingModel
	if err := r.db.WithContext(ctx).Where("woo_variant_id = ?", wooVariantID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductMapping lists the variant mappings under a product mapping
func (r *GormVariantMappingRepository) FindByProductMapping(ctx context.Context, productMappingID uuid.UUID) ([]sync.VariantMapping, error) {
	var variantModels []models.VariantMappingModel
	if err := r.db.WithContext(ctx).
		Where("product_mapping_id = ?", productMappingID).
		Order("created_at ASC").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	mappings := make([]sync.VariantMapping, len(variantModels))
	for i, model := range variantModels {
		mappings[i] = *model.ToDomain()
	}
	return mappings, nil
}

// Create inserts a new variant mapping
func (r *GormVariantMappingRepository) Create(ctx context.Context, mapping *sync.VariantMapping) error {
	var model models.VariantMappingModel
	model.FromDomain(mapping)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return sync.ErrMappingAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteByProductMapping removes every variant mapping under a product mapping
func (r *GormVariantMappingRepository) DeleteByProductMapping(ctx context.Context, productMappingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_mapping_id = ?", productMappingID).
		Delete(&models.VariantMappingModel{}).Error
}
