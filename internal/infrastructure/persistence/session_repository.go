package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/infrastructure/persistence/models"
)

// GormSessionRepository implements sync.SessionRepository using GORM.
// Read-only: sessions are written by the embedding app's OAuth flow.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

var _ sync.SessionRepository = (*GormSessionRepository)(nil)

// FindByShop returns the newest session for a shop domain
func (r *GormSessionRepository) FindByShop(ctx context.Context, shop string) (*sync.ShopSession, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).
		Where("shop = ?", shop).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
