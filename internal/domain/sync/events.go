package sync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ---------------------------------------------------------------------------
// EventKind
// ---------------------------------------------------------------------------

// EventKind is the closed set of WooCommerce webhook topics the bridge
// understands. Adding a topic means adding a constant here and a row in the
// dispatcher table, both compile-time checked.
type EventKind string

const (
	EventProductCreated EventKind = "product.created"
	EventProductUpdated EventKind = "product.updated"
	EventProductDeleted EventKind = "product.deleted"
	EventOrderCreated   EventKind = "order.created"
	EventOrderUpdated   EventKind = "order.updated"
	EventOrderDeleted   EventKind = "order.deleted"
)

// ErrUnknownEventTopic indicates a webhook topic outside the closed set
var ErrUnknownEventTopic = errors.New("sync: unknown event topic")

// ParseEventTopic maps the x-wc-webhook-topic header to an EventKind
func ParseEventTopic(topic string) (EventKind, error) {
	switch EventKind(topic) {
	case EventProductCreated, EventProductUpdated, EventProductDeleted,
		EventOrderCreated, EventOrderUpdated, EventOrderDeleted:
		return EventKind(topic), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEventTopic, topic)
	}
}

// IsValid returns true if the event kind is in the closed set
func (k EventKind) IsValid() bool {
	_, err := ParseEventTopic(string(k))
	return err == nil
}

// String returns the wire topic name
func (k EventKind) String() string {
	return string(k)
}

// ---------------------------------------------------------------------------
// Flexible scalar decoding
// ---------------------------------------------------------------------------

// FlexString decodes a JSON string or number into a string. WooCommerce
// serializes IDs and amounts as numbers in JSON mode and as strings in
// form-encoded mode; mappings store both as strings.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the decoded value
func (f FlexString) String() string { return string(f) }

// Float returns the decoded value as a float64, or 0 when empty/invalid
func (f FlexString) Float() float64 {
	v, err := strconv.ParseFloat(string(f), 64)
	if err != nil {
		return 0
	}
	return v
}

// ---------------------------------------------------------------------------
// Webhook payload schemas
// ---------------------------------------------------------------------------

var validate = validator.New()

// WooImage is a product image reference in a WooCommerce payload
type WooImage struct {
	Src string `json:"src" validate:"required"`
	Alt string `json:"alt"`
}

// WooMetafield is a product meta entry carried through to Shopify metafields
type WooMetafield struct {
	Key       string `json:"key" validate:"required"`
	Namespace string `json:"namespace" validate:"required"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// WooProduct is the product payload shape sent by WooCommerce webhooks
type WooProduct struct {
	ID           FlexString     `json:"id" validate:"required"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Type         string         `json:"type"`
	SKU          string         `json:"sku"`
	Price        FlexString     `json:"price"`
	RegularPrice FlexString     `json:"regular_price"`
	Images       []WooImage     `json:"images" validate:"dive"`
	Metafields   []WooMetafield `json:"metafields" validate:"dive"`
}

// Validate rejects malformed payloads before translation
func (p *WooProduct) Validate() error {
	return validate.Struct(p)
}

// WooAddress is the billing/shipping address shape in WooCommerce payloads
type WooAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Postcode  string `json:"postcode"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// WooTaxLine is a line-item tax entry, passed through to Shopify
type WooTaxLine struct {
	Title string     `json:"title"`
	Rate  FlexString `json:"rate"`
	Price FlexString `json:"price"`
}

// WooLineItem is one order line in a WooCommerce order payload
type WooLineItem struct {
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity" validate:"gte=0"`
	ProductID FlexString   `json:"product_id" validate:"required"`
	TaxLines  []WooTaxLine `json:"tax_lines"`
}

// WooOrder is the order payload shape sent by WooCommerce webhooks
type WooOrder struct {
	ID        FlexString    `json:"id" validate:"required"`
	Status    string        `json:"status"`
	Currency  string        `json:"currency"`
	Total     FlexString    `json:"total"`
	Billing   WooAddress    `json:"billing"`
	Shipping  WooAddress    `json:"shipping"`
	LineItems []WooLineItem `json:"line_items" validate:"dive"`
}

// Validate rejects malformed payloads before translation
func (o *WooOrder) Validate() error {
	return validate.Struct(o)
}
