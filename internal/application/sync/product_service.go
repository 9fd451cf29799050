package sync

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/sync"
)

// ProductService bridges product lifecycle events between the two stores.
// WooCommerce webhook events flow to Shopify; Shopify catalog scans and
// delete webhooks flow back to WooCommerce.
type ProductService struct {
	productMappings sync.ProductMappingRepository
	variantMappings sync.VariantMappingRepository
	shopify         sync.ShopifyGateway
	woo             sync.WooCommerceGateway
	logger          *zap.Logger
}

// NewProductService creates a ProductService
func NewProductService(
	productMappings sync.ProductMappingRepository,
	variantMappings sync.VariantMappingRepository,
	shopify sync.ShopifyGateway,
	woo sync.WooCommerceGateway,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productMappings: productMappings,
		variantMappings: variantMappings,
		shopify:         shopify,
		woo:             woo,
		logger:          logger,
	}
}

// HandleProductCreated mirrors a new WooCommerce product into Shopify.
// The core create and the mapping insert must both succeed; the enrichment
// steps (variants, media, metafields) are partial-success and only logged.
func (s *ProductService) HandleProductCreated(ctx context.Context, session *sync.ShopSession, product *sync.WooProduct) Result {
	wooID := product.ID.String()

	exists, err := s.productMappings.ExistsByWooID(ctx, wooID)
	if err != nil {
		return Failed("Failed to check product mapping", err.Error())
	}
	if exists {
		s.logger.Info("Product already mirrored, skipping creation",
			zap.String("woo_product_id", wooID))
		return Skipped("Product already exists in Shopify")
	}

	created, err := s.shopify.CreateProduct(ctx, session, ProductInput(product))
	if err != nil {
		return Failed("Failed to create product", err.Error())
	}

	mapping, err := sync.NewProductMapping(wooID, created.ID)
	if err != nil {
		return Failed("Failed to build product mapping", err.Error())
	}
	if err := s.productMappings.Create(ctx, mapping); err != nil {
		if errors.Is(err, sync.ErrMappingAlreadyExists) {
			// A concurrent delivery won the insert race. The remote
			// product from this delivery is now orphaned; remove it.
			s.logger.Warn("Concurrent mapping insert, rolling back duplicate product",
				zap.String("woo_product_id", wooID),
				zap.String("shopify_product_id", created.ID))
			if _, delErr := s.shopify.DeleteProduct(ctx, session, created.ID); delErr != nil {
				s.logger.Error("Failed to roll back duplicate product",
					zap.String("shopify_product_id", created.ID),
					zap.Error(delErr))
			}
			return Skipped("Product already exists in Shopify")
		}
		return Failed("Failed to persist product mapping", err.Error())
	}

	s.enrichProduct(ctx, session, mapping, product)

	return Succeeded("Product created", created)
}

// enrichProduct attaches variants, media and metafields to a freshly created
// product and records the variant mapping under the product mapping.
// Failures here leave a bare but mapped product; they are logged and never
// unwind the create.
func (s *ProductService) enrichProduct(ctx context.Context, session *sync.ShopSession, mapping *sync.ProductMapping, product *sync.WooProduct) {
	shopifyProductID := mapping.ShopifyProductID

	createdVariants, err := s.shopify.CreateProductVariants(ctx, session, shopifyProductID, ProductVariants(product))
	if err != nil {
		s.logger.Error("Failed to create product variants",
			zap.String("shopify_product_id", shopifyProductID),
			zap.Error(err))
	} else if len(createdVariants) > 0 {
		// The payload carries one implicit variant, keyed by the product ID.
		variantMapping, vmErr := sync.NewVariantMapping(product.ID.String(), createdVariants[0].ID, mapping.ID)
		if vmErr == nil {
			vmErr = s.variantMappings.Create(ctx, variantMapping)
		}
		if vmErr != nil && !errors.Is(vmErr, sync.ErrMappingAlreadyExists) {
			s.logger.Error("Failed to persist variant mapping",
				zap.String("shopify_variant_id", createdVariants[0].ID),
				zap.Error(vmErr))
		}
	}

	if media := ProductMedia(product); len(media) > 0 {
		if err := s.shopify.AttachProductMedia(ctx, session, shopifyProductID, media); err != nil {
			s.logger.Error("Failed to attach product media",
				zap.String("shopify_product_id", shopifyProductID),
				zap.Error(err))
		}
	}

	if metafields := ProductMetafields(product); len(metafields) > 0 {
		if err := s.shopify.SetProductMetafields(ctx, session, shopifyProductID, metafields); err != nil {
			s.logger.Error("Failed to set product metafields",
				zap.String("shopify_product_id", shopifyProductID),
				zap.Error(err))
		}
	}
}

// HandleProductUpdated pushes a WooCommerce product update to its mapped
// Shopify counterpart. Unmapped products are not implicitly created.
func (s *ProductService) HandleProductUpdated(ctx context.Context, session *sync.ShopSession, product *sync.WooProduct) Result {
	wooID := product.ID.String()

	mapping, err := s.productMappings.FindByWooID(ctx, wooID)
	if err != nil {
		if errors.Is(err, sync.ErrMappingNotFound) {
			return Failed("Product not found in the database", "no mapping for WooCommerce ID "+wooID)
		}
		return Failed("Failed to look up product mapping", err.Error())
	}

	input := ProductInput(product)
	input.ID = mapping.ShopifyProductID
	if input.Title == "" {
		input.Title = "Untitled product"
	}

	updated, err := s.shopify.UpdateProduct(ctx, session, input, ProductMedia(product))
	if err != nil {
		return Failed("Failed to update product", err.Error())
	}

	return Succeeded("Product updated", updated)
}

// HandleProductDeleted deletes the mapped Shopify product, then the mapping.
// The mapping survives a failed remote delete so the event can be retried.
func (s *ProductService) HandleProductDeleted(ctx context.Context, session *sync.ShopSession, product *sync.WooProduct) Result {
	wooID := product.ID.String()

	mapping, err := s.productMappings.FindByWooID(ctx, wooID)
	if err != nil {
		if errors.Is(err, sync.ErrMappingNotFound) {
			return Failed("No product mapping found", "no mapping for WooCommerce ID "+wooID)
		}
		return Failed("Failed to look up product mapping", err.Error())
	}

	deletedID, err := s.shopify.DeleteProduct(ctx, session, mapping.ShopifyProductID)
	if err != nil {
		return Failed("Failed to delete product", err.Error())
	}

	if err := s.variantMappings.DeleteByProductMapping(ctx, mapping.ID); err != nil {
		return Failed("Failed to delete variant mappings", err.Error())
	}
	if err := s.productMappings.DeleteByWooID(ctx, wooID); err != nil {
		return Failed("Failed to delete product mapping", err.Error())
	}

	s.logger.Info("Product deleted",
		zap.String("woo_product_id", wooID),
		zap.String("shopify_product_id", deletedID))

	return Succeeded("Product deleted", deletedID)
}

// HandleShopifyProductDeleted mirrors a Shopify product deletion into
// WooCommerce. This is the one product flow that runs in the reverse
// direction off a Shopify webhook.
func (s *ProductService) HandleShopifyProductDeleted(ctx context.Context, shopifyProductID string) Result {
	mapping, err := s.productMappings.FindByShopifyID(ctx, shopifyProductID)
	if err != nil {
		if errors.Is(err, sync.ErrMappingNotFound) {
			return Failed("No product mapping found", "no mapping for Shopify ID "+shopifyProductID)
		}
		return Failed("Failed to look up product mapping", err.Error())
	}

	if err := s.woo.DeleteProduct(ctx, mapping.WooProductID); err != nil {
		return Failed("Failed to delete product", err.Error())
	}

	if err := s.variantMappings.DeleteByProductMapping(ctx, mapping.ID); err != nil {
		return Failed("Failed to delete variant mappings", err.Error())
	}
	if err := s.productMappings.DeleteByShopifyID(ctx, shopifyProductID); err != nil {
		return Failed("Failed to delete product mapping", err.Error())
	}

	return Succeeded("Product deleted", mapping.WooProductID)
}

// SyncSummary reports the outcome of a full-catalog sync
type SyncSummary struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SyncProducts pushes every published Shopify product that is not yet
// mapped into WooCommerce. Per-product failures are counted and logged,
// never aborting the scan.
func (s *ProductService) SyncProducts(ctx context.Context, session *sync.ShopSession) (*SyncSummary, error) {
	products, err := s.shopify.ListActiveProducts(ctx, session)
	if err != nil {
		return nil, err
	}

	summary := &SyncSummary{Total: len(products)}

	for i := range products {
		product := &products[i]

		exists, err := s.productMappings.ExistsByShopifyID(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			s.logger.Info("Product already synced, skipping",
				zap.String("shopify_product_id", product.ID),
				zap.String("title", product.Title))
			summary.Skipped++
			continue
		}

		wooID, err := s.woo.CreateProduct(ctx, ActiveProductToWoo(product))
		if err != nil {
			s.logger.Error("Failed to create product in WooCommerce",
				zap.String("shopify_product_id", product.ID),
				zap.String("title", product.Title),
				zap.Error(err))
			summary.Failed++
			continue
		}

		mapping, err := sync.NewProductMapping(wooID, product.ID)
		if err != nil {
			summary.Failed++
			continue
		}
		if err := s.productMappings.Create(ctx, mapping); err != nil {
			if errors.Is(err, sync.ErrMappingAlreadyExists) {
				summary.Skipped++
				continue
			}
			s.logger.Error("Failed to persist product mapping",
				zap.String("shopify_product_id", product.ID),
				zap.Error(err))
			summary.Failed++
			continue
		}

		summary.Created++
	}

	return summary, nil
}
