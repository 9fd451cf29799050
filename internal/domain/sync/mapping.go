package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Mapping Errors
// ---------------------------------------------------------------------------

var (
	ErrMappingNotFound      = errors.New("sync: mapping not found")
	ErrMappingAlreadyExists = errors.New("sync: mapping already exists")
	ErrMappingInvalidWooID  = errors.New("sync: invalid WooCommerce ID")
	ErrMappingInvalidShopID = errors.New("sync: invalid Shopify ID")
)

// ---------------------------------------------------------------------------
// ProductMapping Entity
// ---------------------------------------------------------------------------

// ProductMapping links a WooCommerce product to its Shopify counterpart.
// Both foreign IDs are unique across the table so a product can never be
// linked to two counterparts. The pair is immutable once created.
type ProductMapping struct {
	ID               uuid.UUID
	WooProductID     string
	ShopifyProductID string
	CreatedAt        time.Time
}

// NewProductMapping creates a new product mapping
func NewProductMapping(wooProductID, shopifyProductID string) (*ProductMapping, error) {
	if wooProductID == "" {
		return nil, ErrMappingInvalidWooID
	}
	if shopifyProductID == "" {
		return nil, ErrMappingInvalidShopID
	}
	return &ProductMapping{
		ID:               uuid.New(),
		WooProductID:     wooProductID,
		ShopifyProductID: shopifyProductID,
		CreatedAt:        time.Now(),
	}, nil
}

// ---------------------------------------------------------------------------
// VariantMapping Entity
// ---------------------------------------------------------------------------

// VariantMapping links a WooCommerce variation to a Shopify variant,
// scoped under its parent product mapping. Same lifecycle as ProductMapping.
type VariantMapping struct {
	ID               uuid.UUID
	WooVariantID     string
	ShopifyVariantID string
	ProductMappingID uuid.UUID
	CreatedAt        time.Time
}

// NewVariantMapping creates a new variant mapping under a product mapping
func NewVariantMapping(wooVariantID, shopifyVariantID string, productMappingID uuid.UUID) (*VariantMapping, error) {
	if wooVariantID == "" {
		return nil, ErrMappingInvalidWooID
	}
	if shopifyVariantID == "" {
		return nil, ErrMappingInvalidShopID
	}
	if productMappingID == uuid.Nil {
		return nil, errors.New("sync: invalid parent product mapping ID")
	}
	return &VariantMapping{
		ID:               uuid.New(),
		WooVariantID:     wooVariantID,
		ShopifyVariantID: shopifyVariantID,
		ProductMappingID: productMappingID,
		CreatedAt:        time.Now(),
	}, nil
}

// ---------------------------------------------------------------------------
// OrderMapping Entity
// ---------------------------------------------------------------------------

// OrderMapping links a WooCommerce order to its Shopify counterpart.
// Created at order-checkout time, deleted only after a remote delete
// succeeds.
type OrderMapping struct {
	ID             uuid.UUID
	WooOrderID     string
	ShopifyOrderID string
	CreatedAt      time.Time
}

// NewOrderMapping creates a new order mapping
func NewOrderMapping(wooOrderID, shopifyOrderID string) (*OrderMapping, error) {
	if wooOrderID == "" {
		return nil, ErrMappingInvalidWooID
	}
	if shopifyOrderID == "" {
		return nil, ErrMappingInvalidShopID
	}
	return &OrderMapping{
		ID:             uuid.New(),
		WooOrderID:     wooOrderID,
		ShopifyOrderID: shopifyOrderID,
		CreatedAt:      time.Now(),
	}, nil
}

// ---------------------------------------------------------------------------
// Repository Interfaces
// ---------------------------------------------------------------------------

// ProductMappingReader defines lookups on product mappings
type ProductMappingReader interface {
	// FindByWooID finds a mapping by WooCommerce product ID
	FindByWooID(ctx context.Context, wooProductID string) (*ProductMapping, error)

	// FindByShopifyID finds a mapping by Shopify product ID
	FindByShopifyID(ctx context.Context, shopifyProductID string) (*ProductMapping, error)

	// ExistsByWooID reports whether a mapping exists for a WooCommerce product
	ExistsByWooID(ctx context.Context, wooProductID string) (bool, error)

	// ExistsByShopifyID reports whether a mapping exists for a Shopify product
	ExistsByShopifyID(ctx context.Context, shopifyProductID string) (bool, error)
}

// ProductMappingWriter defines persistence of product mappings
type ProductMappingWriter interface {
	// Create inserts a new mapping. Returns ErrMappingAlreadyExists when
	// either foreign ID is already linked (unique-constraint violation).
	Create(ctx context.Context, mapping *ProductMapping) error

	// DeleteByWooID removes a mapping by WooCommerce product ID
	DeleteByWooID(ctx context.Context, wooProductID string) error

	// DeleteByShopifyID removes a mapping by Shopify product ID
	DeleteByShopifyID(ctx context.Context, shopifyProductID string) error
}

// ProductMappingRepository is the full product mapping persistence contract
type ProductMappingRepository interface {
	ProductMappingReader
	ProductMappingWriter
}

// VariantMappingRepository persists variant mappings under a product mapping
type VariantMappingRepository interface {
	FindByWooID(ctx context.Context, wooVariantID string) (*VariantMapping, error)
	FindByProductMapping(ctx context.Context, productMappingID uuid.UUID) ([]VariantMapping, error)
	Create(ctx context.Context, mapping *VariantMapping) error
	DeleteByProductMapping(ctx context.Context, productMappingID uuid.UUID) error
}

// OrderMappingRepository persists order mappings
type OrderMappingRepository interface {
	FindByWooID(ctx context.Context, wooOrderID string) (*OrderMapping, error)
	FindByShopifyID(ctx context.Context, shopifyOrderID string) (*OrderMapping, error)
	Create(ctx context.Context, mapping *OrderMapping) error
	DeleteByWooID(ctx context.Context, wooOrderID string) error
}
