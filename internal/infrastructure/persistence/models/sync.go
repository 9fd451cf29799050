package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/syncbridge/backend/internal/domain/sync"
)

// ProductMappingModel is the persistence model for the ProductMapping entity.
// Both platform IDs carry unique indexes so a product can never be linked
// to two counterparts; the insert race resolves at the database.
type ProductMappingModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	WooProductID     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_product_mapping_woo"`
	ShopifyProductID string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_product_mapping_shopify"`
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductMappingModel) TableName() string {
	return "product_mappings"
}

// ToDomain converts the persistence model to a domain ProductMapping entity
func (m *ProductMappingModel) ToDomain() *sync.ProductMapping {
	return &sync.ProductMapping{
		ID:               m.ID,
		WooProductID:     m.WooProductID,
		ShopifyProductID: m.ShopifyProductID,
		CreatedAt:        m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain ProductMapping entity
func (m *ProductMappingModel) FromDomain(pm *sync.ProductMapping) {
	m.ID = pm.ID
	m.WooProductID = pm.WooProductID
	m.ShopifyProductID = pm.ShopifyProductID
	m.CreatedAt = pm.CreatedAt
}

// VariantMappingModel is the persistence model for the VariantMapping entity
type VariantMappingModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	WooVariantID     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_variant_mapping_woo"`
	ShopifyVariantID string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_variant_mapping_shopify"`
	ProductMappingID uuid.UUID `gorm:"type:uuid;not null;index:idx_variant_mapping_product"`
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VariantMappingModel) TableName() string {
	return "variant_mappings"
}

// ToDomain converts the persistence model to a domain VariantMapping entity
func (m *VariantMappingModel) ToDomain() *sync.VariantMapping {
	return &sync.VariantMapping{
		ID:               m.ID,
		WooVariantID:     m.WooVariantID,
		ShopifyVariantID: m.ShopifyVariantID,
		ProductMappingID: m.ProductMappingID,
		CreatedAt:        m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain VariantMapping entity
func (m *VariantMappingModel) FromDomain(vm *sync.VariantMapping) {
	m.ID = vm.ID
	m.WooVariantID = vm.WooVariantID
	m.ShopifyVariantID = vm.ShopifyVariantID
	m.ProductMappingID = vm.ProductMappingID
	m.CreatedAt = vm.CreatedAt
}

// OrderMappingModel is the persistence model for the OrderMapping entity
type OrderMappingModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	WooOrderID     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_order_mapping_woo"`
	ShopifyOrderID string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_order_mapping_shopify"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderMappingModel) TableName() string {
	return "order_mappings"
}

// ToDomain converts the persistence model to a domain OrderMapping entity
func (m *OrderMappingModel) ToDomain() *sync.OrderMapping {
	return &sync.OrderMapping{
		ID:             m.ID,
		WooOrderID:     m.WooOrderID,
		ShopifyOrderID: m.ShopifyOrderID,
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderMapping entity
func (m *OrderMappingModel) FromDomain(om *sync.OrderMapping) {
	m.ID = om.ID
	m.WooOrderID = om.WooOrderID
	m.ShopifyOrderID = om.ShopifyOrderID
	m.CreatedAt = om.CreatedAt
}

// SessionModel is the persistence model for stored shop sessions. The
// table is written by the embedding app's OAuth flow; this service only
// reads it.
type SessionModel struct {
	ID          string    `gorm:"type:varchar(255);primary_key"`
	Shop        string    `gorm:"type:varchar(255);not null;index:idx_session_shop"`
	AccessToken string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the persistence model to a domain ShopSession
func (m *SessionModel) ToDomain() *sync.ShopSession {
	return &sync.ShopSession{
		Shop:        m.Shop,
		AccessToken: m.AccessToken,
	}
}
