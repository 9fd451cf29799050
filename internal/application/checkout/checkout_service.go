package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/sync"
)

// Payment method the source store resolves to the Dfin gateway
const (
	paymentMethod      = "dfin"
	paymentMethodTitle = "DFIN Payment"
)

// ErrNoMappedItems indicates that no cart item could be mapped back to a
// WooCommerce product, so there is nothing to order.
var ErrNoMappedItems = errors.New("checkout: no cart item maps to a known product")

// CartItem is one line of a Shopify cart submitted for checkout
type CartItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CheckoutResult carries the created order and its hosted payment link
type CheckoutResult struct {
	OrderID     string `json:"orderId"`
	PaymentLink string `json:"paymentLink"`
}

// Service turns a Shopify cart into an unpaid WooCommerce order and hands
// back the payment link for the Dfin-backed payment flow.
type Service struct {
	productMappings sync.ProductMappingReader
	woo             sync.WooCommerceGateway
	logger          *zap.Logger
}

// NewService creates a checkout Service
func NewService(productMappings sync.ProductMappingReader, woo sync.WooCommerceGateway, logger *zap.Logger) *Service {
	return &Service{
		productMappings: productMappings,
		woo:             woo,
		logger:          logger,
	}
}

// Checkout reverse-maps the cart's Shopify product IDs to their WooCommerce
// counterparts and creates an unpaid order. Unmapped items are dropped with
// a warning; the order is only rejected when nothing maps.
func (s *Service) Checkout(ctx context.Context, items []CartItem, email string) (*CheckoutResult, error) {
	lineItems := make([]sync.WooOrderItemCreate, 0, len(items))

	for _, item := range items {
		mapping, err := s.productMappings.FindByShopifyID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sync.ErrMappingNotFound) {
				s.logger.Warn("Cart item has no product mapping, dropping",
					zap.String("shopify_product_id", item.ProductID))
				continue
			}
			return nil, fmt.Errorf("checkout: mapping lookup failed: %w", err)
		}
		lineItems = append(lineItems, sync.WooOrderItemCreate{
			ProductID: mapping.WooProductID,
			Quantity:  item.Quantity,
		})
	}

	if len(lineItems) == 0 {
		return nil, ErrNoMappedItems
	}

	order, err := s.woo.CreateOrder(ctx, sync.WooOrderCreate{
		PaymentMethod:      paymentMethod,
		PaymentMethodTitle: paymentMethodTitle,
		SetPaid:            false,
		Billing:            sync.WooOrderBilling{Email: email},
		LineItems:          lineItems,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: order create failed: %w", err)
	}

	s.logger.Info("Checkout order created",
		zap.String("woo_order_id", order.ID),
		zap.Int("line_items", len(lineItems)))

	return &CheckoutResult{OrderID: order.ID, PaymentLink: order.PaymentURL}, nil
}
