package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/syncbridge/backend/internal/domain/sync"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response

	defaultTimeout = 30 * time.Second
)

// Client implements sync.ShopifyGateway against the versioned Admin GraphQL API.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a Shopify Admin API client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

var _ sync.ShopifyGateway = (*Client)(nil)

// endpoint builds the GraphQL URL for the session's shop
func (c *Client) endpoint(session *sync.ShopSession) string {
	base := c.config.BaseURLOverride
	if base == "" {
		base = "https://" + session.Shop
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", strings.TrimSuffix(base, "/"), c.config.APIVersion)
}

// execute posts one GraphQL document and decodes the result into out
func (c *Client) execute(ctx context.Context, session *sync.ShopSession, query string, variables map[string]any, out any) error {
	if err := session.Validate(); err != nil {
		return err
	}

	bodyBytes, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("shopify: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(session), bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("shopify: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", session.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sync.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", sync.ErrPlatformRequestFailed, resp.StatusCode, truncate(respBody, 512))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", sync.ErrPlatformRequestFailed, envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}

	return nil
}

// userErrorsToErr converts mutation-level userErrors into a single error
func userErrorsToErr(errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, ue := range errs {
		if len(ue.Field) > 0 {
			msgs = append(msgs, fmt.Sprintf("%s: %s", strings.Join(ue.Field, "."), ue.Message))
		} else {
			msgs = append(msgs, ue.Message)
		}
	}
	return fmt.Errorf("%w: %s", sync.ErrPlatformUserError, strings.Join(msgs, "; "))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// ---------------------------------------------------------------------------
// Product operations
// ---------------------------------------------------------------------------

// CreateProduct creates a bare product; variants, media and metafields are
// attached in follow-up calls.
func (c *Client) CreateProduct(ctx context.Context, session *sync.ShopSession, input sync.ShopifyProductInput) (*sync.ShopifyProduct, error) {
	variables := map[string]any{
		"input": productInputVars(input),
	}

	var data productCreateData
	if err := c.execute(ctx, session, productCreateMutation, variables, &data); err != nil {
		return nil, err
	}
	if err := userErrorsToErr(data.ProductCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.ProductCreate.Product == nil {
		return nil, fmt.Errorf("%w: productCreate returned no product", sync.ErrPlatformInvalidResponse)
	}

	return &sync.ShopifyProduct{
		ID:    data.ProductCreate.Product.ID,
		Title: data.ProductCreate.Product.Title,
	}, nil
}

// CreateProductVariants bulk-creates variants on an existing product and
// returns the created variants so callers can persist their IDs.
func (c *Client) CreateProductVariants(ctx context.Context, session *sync.ShopSession, productID string, variants []sync.ShopifyVariantInput) ([]sync.ShopifyVariant, error) {
	vars := make([]map[string]any, 0, len(variants))
	for _, v := range variants {
		entry := map[string]any{
			"price": v.Price,
		}
		if v.SKU != "" {
			entry["inventoryItem"] = map[string]any{"sku": v.SKU}
		}
		if v.CompareAtPrice != "" {
			entry["compareAtPrice"] = v.CompareAtPrice
		}
		vars = append(vars, entry)
	}

	variables := map[string]any{
		"productId": productID,
		"variants":  vars,
	}

	var data productVariantsBulkCreateData
	if err := c.execute(ctx, session, productVariantsBulkCreateMutation, variables, &data); err != nil {
		return nil, err
	}
	if err := userErrorsToErr(data.ProductVariantsBulkCreate.UserErrors); err != nil {
		return nil, err
	}

	created := make([]sync.ShopifyVariant, 0, len(data.ProductVariantsBulkCreate.ProductVariants))
	for _, v := range data.ProductVariantsBulkCreate.ProductVariants {
		created = append(created, sync.ShopifyVariant{
			ID:    v.ID,
			Title: v.Title,
			SKU:   v.SKU,
			Price: v.Price,
		})
	}
	return created, nil
}

// AttachProductMedia uploads remote images onto an existing product
func (c *Client) AttachProductMedia(ctx context.Context, session *sync.ShopSession, productID string, media []sync.ShopifyMediaInput) error {
	variables := map[string]any{
		"productId": productID,
		"media":     mediaInputVars(media),
	}

	var data productCreateMediaData
	if err := c.execute(ctx, session, productCreateMediaMutation, variables, &data); err != nil {
		return err
	}
	return userErrorsToErr(data.ProductCreateMedia.MediaUserErrors)
}

// SetProductMetafields sets metafields on an existing product
func (c *Client) SetProductMetafields(ctx context.Context, session *sync.ShopSession, productID string, metafields []sync.ShopifyMetafieldInput) error {
	fields := make([]map[string]any, 0, len(metafields))
	for _, m := range metafields {
		fields = append(fields, map[string]any{
			"ownerId":   productID,
			"key":       m.Key,
			"namespace": m.Namespace,
			"value":     m.Value,
			"type":      m.Type,
		})
	}

	variables := map[string]any{
		"metafields": fields,
	}

	var data metafieldsSetData
	if err := c.execute(ctx, session, metafieldsSetMutation, variables, &data); err != nil {
		return err
	}
	return userErrorsToErr(data.MetafieldsSet.UserErrors)
}

// UpdateProduct updates the product addressed by input.ID, replacing media
// when any is supplied.
func (c *Client) UpdateProduct(ctx context.Context, session *sync.ShopSession, input sync.ShopifyProductInput, media []sync.ShopifyMediaInput) (*sync.ShopifyProduct, error) {
	inputVars := productInputVars(input)
	inputVars["id"] = input.ID

	variables := map[string]any{
		"input": inputVars,
	}
	if len(media) > 0 {
		variables["media"] = mediaInputVars(media)
	}

	var data productUpdateData
	if err := c.execute(ctx, session, productUpdateWithMediaMutation, variables, &data); err != nil {
		return nil, err
	}
	if err := userErrorsToErr(data.ProductUpdate.UserErrors); err != nil {
		return nil, err
	}
	if data.ProductUpdate.Product == nil {
		return nil, fmt.Errorf("%w: productUpdate returned no product", sync.ErrPlatformInvalidResponse)
	}

	return &sync.ShopifyProduct{
		ID:    data.ProductUpdate.Product.ID,
		Title: data.ProductUpdate.Product.Title,
	}, nil
}

// DeleteProduct deletes a product and returns the deleted product ID
func (c *Client) DeleteProduct(ctx context.Context, session *sync.ShopSession, productID string) (string, error) {
	variables := map[string]any{
		"input": map[string]any{"id": productID},
	}

	var data productDeleteData
	if err := c.execute(ctx, session, productDeleteMutation, variables, &data); err != nil {
		return "", err
	}
	if err := userErrorsToErr(data.ProductDelete.UserErrors); err != nil {
		return "", err
	}
	return data.ProductDelete.DeletedProductID, nil
}

// ---------------------------------------------------------------------------
// Order operations
// ---------------------------------------------------------------------------

// CreateOrder creates an order from a translated storefront order
func (c *Client) CreateOrder(ctx context.Context, session *sync.ShopSession, order sync.ShopifyOrderInput) (*sync.ShopifyOrder, error) {
	lineItems := make([]map[string]any, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		item := map[string]any{
			"title":    li.Title,
			"quantity": li.Quantity,
		}
		if li.VariantID != "" {
			item["variantId"] = li.VariantID
		}
		if len(li.TaxLines) > 0 {
			taxLines := make([]map[string]any, 0, len(li.TaxLines))
			for _, tl := range li.TaxLines {
				taxLines = append(taxLines, map[string]any{
					"title":    tl.Title,
					"rate":     tl.Rate,
					"priceSet": map[string]any{"shopMoney": map[string]any{"amount": tl.Amount, "currencyCode": order.CurrencyCode}},
				})
			}
			item["taxLines"] = taxLines
		}
		lineItems = append(lineItems, item)
	}

	orderVars := map[string]any{
		"email":        order.Email,
		"lineItems":    lineItems,
		"currencyCode": order.CurrencyCode,
	}
	if order.FinancialStatus != "" {
		orderVars["financialStatus"] = order.FinancialStatus
	}
	if order.TotalAmount != "" {
		orderVars["transactions"] = []map[string]any{
			{
				"kind": "SALE",
				"amountSet": map[string]any{
					"shopMoney": map[string]any{
						"amount":       order.TotalAmount,
						"currencyCode": order.CurrencyCode,
					},
				},
			},
		}
	}
	if addr := addressVars(order.BillingAddress); addr != nil {
		orderVars["billingAddress"] = addr
	}
	if addr := addressVars(order.ShippingAddress); addr != nil {
		orderVars["shippingAddress"] = addr
	}

	variables := map[string]any{
		"order":   orderVars,
		"options": map[string]any{"sendReceipt": false},
	}

	var data orderCreateData
	if err := c.execute(ctx, session, orderCreateMutation, variables, &data); err != nil {
		return nil, err
	}
	if err := userErrorsToErr(data.OrderCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.OrderCreate.Order == nil {
		return nil, fmt.Errorf("%w: orderCreate returned no order", sync.ErrPlatformInvalidResponse)
	}

	return &sync.ShopifyOrder{
		ID:    data.OrderCreate.Order.ID,
		Email: data.OrderCreate.Order.Email,
	}, nil
}

// DeleteOrder deletes an order
func (c *Client) DeleteOrder(ctx context.Context, session *sync.ShopSession, orderID string) error {
	variables := map[string]any{
		"orderId": orderID,
	}

	var data orderDeleteData
	if err := c.execute(ctx, session, orderDeleteMutation, variables, &data); err != nil {
		return err
	}
	return userErrorsToErr(data.OrderDelete.UserErrors)
}

// MarkOrderAsPaid transitions an order's financial status to paid
func (c *Client) MarkOrderAsPaid(ctx context.Context, session *sync.ShopSession, orderID string) error {
	variables := map[string]any{
		"input": map[string]any{"id": orderID},
	}

	var data orderMarkAsPaidData
	if err := c.execute(ctx, session, orderMarkAsPaidMutation, variables, &data); err != nil {
		return err
	}
	return userErrorsToErr(data.OrderMarkAsPaid.UserErrors)
}

// GetOrderDetails fetches the order detail used to open a payment session
func (c *Client) GetOrderDetails(ctx context.Context, session *sync.ShopSession, orderID string) (*sync.ShopifyOrderDetails, error) {
	variables := map[string]any{
		"orderId": orderID,
	}

	var data orderDetailsData
	if err := c.execute(ctx, session, orderDetailsQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, fmt.Errorf("%w: order not found", sync.ErrPlatformInvalidResponse)
	}

	details := &sync.ShopifyOrderDetails{
		ID:           data.Order.ID,
		Name:         data.Order.Name,
		Email:        data.Order.Email,
		TotalAmount:  data.Order.TotalPriceSet.ShopMoney.Amount,
		CurrencyCode: data.Order.TotalPriceSet.ShopMoney.CurrencyCode,
	}
	if data.Order.Customer != nil {
		details.CustomerFirst = data.Order.Customer.FirstName
		details.CustomerLast = data.Order.Customer.LastName
		details.CustomerEmail = data.Order.Customer.Email
	}
	if data.Order.BillingAddress != nil {
		details.BillingAddress = sync.ShopifyAddressInput{
			FirstName: data.Order.BillingAddress.FirstName,
			LastName:  data.Order.BillingAddress.LastName,
			Company:   data.Order.BillingAddress.Company,
			Address1:  data.Order.BillingAddress.Address1,
			Address2:  data.Order.BillingAddress.Address2,
			City:      data.Order.BillingAddress.City,
			Province:  data.Order.BillingAddress.Province,
			Country:   data.Order.BillingAddress.Country,
			Zip:       data.Order.BillingAddress.Zip,
			Phone:     data.Order.BillingAddress.Phone,
		}
	}

	return details, nil
}

// ---------------------------------------------------------------------------
// Catalog queries
// ---------------------------------------------------------------------------

// ListActiveProducts fetches published products for the full-catalog sync
func (c *Client) ListActiveProducts(ctx context.Context, session *sync.ShopSession) ([]sync.ShopifyActiveProduct, error) {
	var data activeProductsData
	if err := c.execute(ctx, session, activeProductsQuery, nil, &data); err != nil {
		return nil, err
	}

	products := make([]sync.ShopifyActiveProduct, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		node := edge.Node
		product := sync.ShopifyActiveProduct{
			ID:                 node.ID,
			Title:              node.Title,
			Description:        node.Description,
			MinPriceMinorUnits: node.PriceRange.MinVariantPrice.Amount,
			Tags:               node.Tags,
		}
		for _, img := range node.Images.Edges {
			product.ImageURLs = append(product.ImageURLs, img.Node.URL)
		}
		product.Variants = variantsFromEdges(node.Variants)
		products = append(products, product)
	}

	return products, nil
}

// GetProductVariants fetches the variants of a single product
func (c *Client) GetProductVariants(ctx context.Context, session *sync.ShopSession, productID string) ([]sync.ShopifyVariant, error) {
	variables := map[string]any{
		"productId": productID,
	}

	var data productVariantsData
	if err := c.execute(ctx, session, productVariantsQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, fmt.Errorf("%w: product not found", sync.ErrPlatformInvalidResponse)
	}

	return variantsFromEdges(data.Product.Variants), nil
}

// ---------------------------------------------------------------------------
// Variable builders
// ---------------------------------------------------------------------------

func productInputVars(input sync.ShopifyProductInput) map[string]any {
	vars := map[string]any{
		"title": input.Title,
	}
	if input.DescriptionHTML != "" {
		vars["descriptionHtml"] = input.DescriptionHTML
	}
	if input.ProductType != "" {
		vars["productType"] = input.ProductType
	}
	return vars
}

func mediaInputVars(media []sync.ShopifyMediaInput) []map[string]any {
	vars := make([]map[string]any, 0, len(media))
	for _, m := range media {
		vars = append(vars, map[string]any{
			"originalSource":   m.OriginalSource,
			"alt":              m.Alt,
			"mediaContentType": "IMAGE",
		})
	}
	return vars
}

func addressVars(addr sync.ShopifyAddressInput) map[string]any {
	if addr == (sync.ShopifyAddressInput{}) {
		return nil
	}
	return map[string]any{
		"firstName": addr.FirstName,
		"lastName":  addr.LastName,
		"company":   addr.Company,
		"address1":  addr.Address1,
		"address2":  addr.Address2,
		"city":      addr.City,
		"province":  addr.Province,
		"country":   addr.Country,
		"zip":       addr.Zip,
		"phone":     addr.Phone,
	}
}

func variantsFromEdges(edges variantEdges) []sync.ShopifyVariant {
	variants := make([]sync.ShopifyVariant, 0, len(edges.Edges))
	for _, e := range edges.Edges {
		variants = append(variants, sync.ShopifyVariant{
			ID:    e.Node.ID,
			Title: e.Node.Title,
			SKU:   e.Node.SKU,
			Price: e.Node.Price,
		})
	}
	return variants
}
