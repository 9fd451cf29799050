package sync

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/syncbridge/backend/internal/domain/sync"
)

// htmlTagPattern matches markup tags for description flattening. WooCommerce
// descriptions arrive as HTML; Shopify receives the stripped text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup tags from a WooCommerce description
func StripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

const (
	defaultProductType  = "simple"
	shortDescriptionMax = 100
)

// minorUnitsPerMajor converts storefront amounts in minor units to the
// decimal string WooCommerce expects.
var minorUnitsPerMajor = decimal.NewFromInt(100)

// truncateOnRune cuts s to at most max bytes without splitting a rune
func truncateOnRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ---------------------------------------------------------------------------
// WooCommerce -> Shopify
// ---------------------------------------------------------------------------

// ProductInput translates a WooCommerce product payload into a Shopify
// product create/update input.
func ProductInput(p *sync.WooProduct) sync.ShopifyProductInput {
	productType := p.Type
	if productType == "" {
		productType = defaultProductType
	}
	return sync.ShopifyProductInput{
		Title:           p.Name,
		DescriptionHTML: StripHTML(p.Description),
		ProductType:     productType,
	}
}

// ProductVariants builds the variant bulk-create input from the payload's
// pricing fields. WooCommerce simple products carry one implicit variant.
func ProductVariants(p *sync.WooProduct) []sync.ShopifyVariantInput {
	return []sync.ShopifyVariantInput{
		{
			SKU:            p.SKU,
			Price:          p.Price.String(),
			CompareAtPrice: p.RegularPrice.String(),
		},
	}
}

// ProductMedia translates the payload's image list into media inputs
func ProductMedia(p *sync.WooProduct) []sync.ShopifyMediaInput {
	if len(p.Images) == 0 {
		return nil
	}
	media := make([]sync.ShopifyMediaInput, 0, len(p.Images))
	for _, img := range p.Images {
		media = append(media, sync.ShopifyMediaInput{
			OriginalSource: img.Src,
			Alt:            img.Alt,
		})
	}
	return media
}

// ProductMetafields translates the payload's meta entries into metafield inputs
func ProductMetafields(p *sync.WooProduct) []sync.ShopifyMetafieldInput {
	if len(p.Metafields) == 0 {
		return nil
	}
	fields := make([]sync.ShopifyMetafieldInput, 0, len(p.Metafields))
	for _, mf := range p.Metafields {
		fields = append(fields, sync.ShopifyMetafieldInput{
			Key:       mf.Key,
			Namespace: mf.Namespace,
			Value:     mf.Value,
			Type:      mf.Type,
		})
	}
	return fields
}

// OrderInput translates a WooCommerce order payload into a Shopify order
// create input. variantIDs maps WooCommerce product IDs to resolved Shopify
// variant IDs; unresolved lines are carried by title alone.
func OrderInput(o *sync.WooOrder, variantIDs map[string]string) sync.ShopifyOrderInput {
	lineItems := make([]sync.ShopifyLineItemInput, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		line := sync.ShopifyLineItemInput{
			Title:     item.Name,
			Quantity:  item.Quantity,
			VariantID: variantIDs[item.ProductID.String()],
		}
		for _, tax := range item.TaxLines {
			title := tax.Title
			if title == "" {
				title = "Tax"
			}
			line.TaxLines = append(line.TaxLines, sync.ShopifyTaxLine{
				Title:  title,
				Rate:   tax.Rate.Float(),
				Amount: tax.Price.String(),
			})
		}
		lineItems = append(lineItems, line)
	}

	currency := o.Currency
	if currency == "" {
		currency = "USD"
	}
	total := o.Total.String()
	if total == "" {
		total = "0.00"
	}

	return sync.ShopifyOrderInput{
		Email:           o.Billing.Email,
		LineItems:       lineItems,
		TotalAmount:     total,
		CurrencyCode:    currency,
		FinancialStatus: "PENDING",
		BillingAddress:  billingAddress(o.Billing),
		ShippingAddress: shippingAddress(o.Shipping, o.Billing),
	}
}

func billingAddress(b sync.WooAddress) sync.ShopifyAddressInput {
	return sync.ShopifyAddressInput{
		FirstName: orUnknown(b.FirstName),
		LastName:  orUnknown(b.LastName),
		Company:   b.Company,
		Address1:  b.Address1,
		Address2:  b.Address2,
		City:      b.City,
		Province:  b.State,
		Country:   b.Country,
		Zip:       b.Postcode,
		Phone:     b.Phone,
	}
}

// shippingAddress falls back to billing fields when the shipping block is
// sparse, mirroring how storefronts omit it for digital goods.
func shippingAddress(s, b sync.WooAddress) sync.ShopifyAddressInput {
	return sync.ShopifyAddressInput{
		FirstName: orUnknown(fallback(s.FirstName, b.FirstName)),
		LastName:  orUnknown(fallback(s.LastName, b.LastName)),
		Company:   fallback(s.Company, b.Company),
		Address1:  fallback(s.Address1, b.Address1),
		Address2:  fallback(s.Address2, b.Address2),
		City:      fallback(s.City, b.City),
		Province:  fallback(s.State, b.State),
		Country:   fallback(s.Country, b.Country),
		Zip:       fallback(s.Postcode, b.Postcode),
		Phone:     fallback(s.Phone, b.Phone),
	}
}

func fallback(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// ---------------------------------------------------------------------------
// Shopify -> WooCommerce
// ---------------------------------------------------------------------------

// MajorUnits converts a minor-unit amount string to a two-decimal major-unit
// string. Unparseable amounts come back as "0.00".
func MajorUnits(minor string) string {
	d, err := decimal.NewFromString(minor)
	if err != nil {
		return "0.00"
	}
	return d.Div(minorUnitsPerMajor).StringFixed(2)
}

// ActiveProductToWoo translates a published Shopify product into a
// WooCommerce product create request for the full-catalog sync.
func ActiveProductToWoo(p *sync.ShopifyActiveProduct) sync.WooProductCreate {
	short := truncateOnRune(p.Description, shortDescriptionMax)

	categories := make([]sync.WooCategory, 0, len(p.Tags))
	for _, tag := range p.Tags {
		categories = append(categories, sync.WooCategory{Name: tag})
	}

	images := make([]sync.WooImage, 0, len(p.ImageURLs))
	for _, url := range p.ImageURLs {
		images = append(images, sync.WooImage{Src: url})
	}

	var sku string
	if len(p.Variants) > 0 {
		sku = p.Variants[0].SKU
	}

	variations := make([]sync.WooVariationCreate, 0, len(p.Variants))
	for _, v := range p.Variants {
		// Variant prices arrive in major units already; only the
		// storefront price range is quoted in minor units.
		variations = append(variations, sync.WooVariationCreate{
			RegularPrice: v.Price,
			SKU:          v.SKU,
			Weight:       "0",
		})
	}

	return sync.WooProductCreate{
		Name:             p.Title,
		Type:             defaultProductType,
		RegularPrice:     MajorUnits(p.MinPriceMinorUnits),
		Description:      p.Description,
		ShortDescription: short,
		SKU:              sku,
		Categories:       categories,
		Tags:             categories,
		Images:           images,
		Variations:       variations,
	}
}
