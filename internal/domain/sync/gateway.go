package sync

import (
	"context"
	"errors"
)

// Platform call errors shared by both gateway implementations
var (
	ErrPlatformUnavailable     = errors.New("sync: platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("sync: platform request failed")
	ErrPlatformInvalidResponse = errors.New("sync: invalid platform response")
	ErrPlatformUserError       = errors.New("sync: platform rejected the request")
)

// ---------------------------------------------------------------------------
// Shopify gateway contract
// ---------------------------------------------------------------------------

// ShopifyProductInput is the translated create/update request for a product
type ShopifyProductInput struct {
	// ID addresses an existing product (update only)
	ID              string
	Title           string
	DescriptionHTML string
	ProductType     string
}

// ShopifyVariantInput is one entry of a variant bulk-create request
type ShopifyVariantInput struct {
	SKU            string
	Price          string
	CompareAtPrice string
}

// ShopifyMediaInput attaches one image to a product
type ShopifyMediaInput struct {
	OriginalSource string
	Alt            string
}

// ShopifyMetafieldInput sets one metafield on a product
type ShopifyMetafieldInput struct {
	Key       string
	Namespace string
	Value     string
	Type      string
}

// ShopifyProduct is the created/updated product returned by Shopify
type ShopifyProduct struct {
	ID    string
	Title string
}

// ShopifyVariant is a variant as returned by the product-variants query
type ShopifyVariant struct {
	ID    string
	Title string
	SKU   string
	Price string
}

// ShopifyTaxLine mirrors a WooCommerce tax line on a Shopify order line
type ShopifyTaxLine struct {
	Title  string
	Rate   float64
	Amount string
}

// ShopifyLineItemInput is one line of a translated order-create request
type ShopifyLineItemInput struct {
	Title     string
	Quantity  int
	VariantID string
	TaxLines  []ShopifyTaxLine
}

// ShopifyAddressInput is the renamed address shape Shopify expects
type ShopifyAddressInput struct {
	FirstName string
	LastName  string
	Company   string
	Address1  string
	Address2  string
	City      string
	Province  string
	Country   string
	Zip       string
	Phone     string
}

// ShopifyOrderInput is the translated order-create request
type ShopifyOrderInput struct {
	Email           string
	LineItems       []ShopifyLineItemInput
	TotalAmount     string
	CurrencyCode    string
	FinancialStatus string
	BillingAddress  ShopifyAddressInput
	ShippingAddress ShopifyAddressInput
}

// ShopifyOrder is the created order returned by Shopify
type ShopifyOrder struct {
	ID    string
	Email string
}

// ShopifyOrderDetails is the order detail used by the payment bridge
type ShopifyOrderDetails struct {
	ID             string
	Name           string
	Email          string
	TotalAmount    string
	CurrencyCode   string
	CustomerFirst  string
	CustomerLast   string
	CustomerEmail  string
	BillingAddress ShopifyAddressInput
}

// ShopifyActiveProduct is one published product from the full-sync scan
type ShopifyActiveProduct struct {
	ID          string
	Title       string
	Description string
	// MinPriceMinorUnits is the storefront amount in minor units; the
	// translator divides by 100 when pushing to WooCommerce.
	MinPriceMinorUnits string
	ImageURLs          []string
	Tags               []string
	Variants           []ShopifyVariant
}

// ShopifyGateway is the outbound contract against the Shopify Admin API.
// Every call takes the shop session explicitly.
type ShopifyGateway interface {
	CreateProduct(ctx context.Context, session *ShopSession, input ShopifyProductInput) (*ShopifyProduct, error)
	CreateProductVariants(ctx context.Context, session *ShopSession, productID string, variants []ShopifyVariantInput) ([]ShopifyVariant, error)
	AttachProductMedia(ctx context.Context, session *ShopSession, productID string, media []ShopifyMediaInput) error
	SetProductMetafields(ctx context.Context, session *ShopSession, productID string, metafields []ShopifyMetafieldInput) error
	UpdateProduct(ctx context.Context, session *ShopSession, input ShopifyProductInput, media []ShopifyMediaInput) (*ShopifyProduct, error)
	DeleteProduct(ctx context.Context, session *ShopSession, productID string) (string, error)

	CreateOrder(ctx context.Context, session *ShopSession, order ShopifyOrderInput) (*ShopifyOrder, error)
	DeleteOrder(ctx context.Context, session *ShopSession, orderID string) error
	MarkOrderAsPaid(ctx context.Context, session *ShopSession, orderID string) error
	GetOrderDetails(ctx context.Context, session *ShopSession, orderID string) (*ShopifyOrderDetails, error)

	ListActiveProducts(ctx context.Context, session *ShopSession) ([]ShopifyActiveProduct, error)
	GetProductVariants(ctx context.Context, session *ShopSession, productID string) ([]ShopifyVariant, error)
}

// ---------------------------------------------------------------------------
// WooCommerce gateway contract
// ---------------------------------------------------------------------------

// WooCategory names a product category on create
type WooCategory struct {
	Name string `json:"name"`
}

// WooVariationCreate is one variation of a WooCommerce product create request
type WooVariationCreate struct {
	RegularPrice string `json:"regular_price"`
	SKU          string `json:"sku"`
	Weight       string `json:"weight"`
}

// WooProductCreate is the translated product create request for WooCommerce
type WooProductCreate struct {
	Name             string               `json:"name"`
	Type             string               `json:"type"`
	RegularPrice     string               `json:"regular_price"`
	Description      string               `json:"description"`
	ShortDescription string               `json:"short_description"`
	SKU              string               `json:"sku"`
	Categories       []WooCategory        `json:"categories,omitempty"`
	Tags             []WooCategory        `json:"tags,omitempty"`
	Images           []WooImage           `json:"images,omitempty"`
	Variations       []WooVariationCreate `json:"variations,omitempty"`
}

// WooOrderItemCreate is one line of a WooCommerce order create request
type WooOrderItemCreate struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// WooOrderBilling is the minimal billing block of a checkout order request
type WooOrderBilling struct {
	Email string `json:"email"`
}

// WooOrderCreate is the checkout order request for WooCommerce
type WooOrderCreate struct {
	PaymentMethod      string               `json:"payment_method"`
	PaymentMethodTitle string               `json:"payment_method_title"`
	SetPaid            bool                 `json:"set_paid"`
	Billing            WooOrderBilling      `json:"billing"`
	LineItems          []WooOrderItemCreate `json:"line_items"`
}

// WooOrderResult is the created WooCommerce order
type WooOrderResult struct {
	ID         string
	PaymentURL string
}

// WooCommerceGateway is the outbound contract against the WooCommerce REST API
type WooCommerceGateway interface {
	CreateProduct(ctx context.Context, product WooProductCreate) (string, error)
	DeleteProduct(ctx context.Context, wooProductID string) error
	CreateOrder(ctx context.Context, order WooOrderCreate) (*WooOrderResult, error)
}
