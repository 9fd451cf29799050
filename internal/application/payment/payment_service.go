// Package payment orchestrates the Dfin payment bridge: initiating hosted
// payment sessions for Shopify orders and confirming them from verified
// gateway webhooks.
package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/payment"
	"github.com/syncbridge/backend/internal/domain/sync"
)

// Session request constants carried on every Dfin session
const (
	sessionCountryCode  = "1"
	sessionRedirectSecs = "5"
	sessionSource       = "web"
	metadataSource      = "Shopify Order"
)

// sessionMetadata is the JSON blob the gateway echoes back on its webhook.
// The order ID inside it is the only link back to the Shopify order.
type sessionMetadata struct {
	Source  string `json:"source"`
	OrderID string `json:"order_id"`
}

// InitiateResult is the outcome of starting a payment session
type InitiateResult struct {
	PayID       string `json:"payId"`
	PaymentLink string `json:"paymentLink"`
}

// Service drives the payment session lifecycle against the Dfin gateway
type Service struct {
	shopify  sync.ShopifyGateway
	gateway  payment.Gateway
	mappings payment.MappingRepository
	logger   *zap.Logger
}

// NewService creates a payment Service
func NewService(
	shopify sync.ShopifyGateway,
	gateway payment.Gateway,
	mappings payment.MappingRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		shopify:  shopify,
		gateway:  gateway,
		mappings: mappings,
		logger:   logger,
	}
}

// InitiatePayment loads the Shopify order, opens a hosted Dfin session for
// its total and records a pending payment mapping keyed by the session's
// pay ID. Returns the hosted payment link the storefront redirects to.
func (s *Service) InitiatePayment(ctx context.Context, session *sync.ShopSession, orderID, redirectURL, clientIP string) (*InitiateResult, error) {
	details, err := s.shopify.GetOrderDetails(ctx, session, orderID)
	if err != nil {
		return nil, fmt.Errorf("payment: order lookup failed: %w", err)
	}

	metadata, err := json.Marshal(sessionMetadata{Source: metadataSource, OrderID: orderID})
	if err != nil {
		return nil, fmt.Errorf("payment: metadata encoding failed: %w", err)
	}

	req := &payment.SessionRequest{
		FirstName:         details.CustomerFirst,
		LastName:          details.CustomerLast,
		RequestFor:        requestEmail(details),
		CountryCode:       sessionCountryCode,
		Amount:            details.TotalAmount,
		RedirectURL:       redirectURL,
		RedirectTimeSecs:  sessionRedirectSecs,
		IPAddress:         clientIP,
		Metadata:          string(metadata),
		BillingAddress1:   details.BillingAddress.Address1,
		BillingAddress2:   details.BillingAddress.Address2,
		BillingCity:       details.BillingAddress.City,
		BillingState:      details.BillingAddress.Province,
		BillingPostalCode: details.BillingAddress.Zip,
		BillingCountry:    details.BillingAddress.Country,
		SendNotifications: true,
		Source:            sessionSource,
	}

	result, err := s.gateway.CreateSession(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("payment: session create failed: %w", err)
	}

	mapping, err := payment.NewMapping(orderID, result.PayID)
	if err != nil {
		return nil, err
	}
	if err := s.mappings.Create(ctx, mapping); err != nil {
		return nil, fmt.Errorf("payment: mapping persist failed: %w", err)
	}

	s.logger.Info("Payment session created",
		zap.String("order_id", orderID),
		zap.String("pay_id", result.PayID))

	return &InitiateResult{PayID: result.PayID, PaymentLink: result.PaymentLink}, nil
}

// requestEmail prefers the customer's account email over the order email
func requestEmail(details *sync.ShopifyOrderDetails) string {
	if details.CustomerEmail != "" {
		return details.CustomerEmail
	}
	return details.Email
}

// ConfirmPayment marks the order paid after the gateway confirmed the
// session. The caller must have verified the webhook signature first. A
// repeated confirmation for an already-paid mapping is rejected without any
// remote call.
func (s *Service) ConfirmPayment(ctx context.Context, session *sync.ShopSession, orderID string) error {
	mapping, err := s.mappings.FindByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("payment: mapping lookup failed: %w", err)
	}

	if mapping.Status == payment.StatusPaid {
		s.logger.Info("Payment already confirmed, ignoring repeat webhook",
			zap.String("order_id", orderID),
			zap.String("pay_id", mapping.PayID))
		return payment.ErrPaymentAlreadyPaid
	}

	if err := s.shopify.MarkOrderAsPaid(ctx, session, orderID); err != nil {
		return fmt.Errorf("payment: mark as paid failed: %w", err)
	}

	if err := mapping.MarkPaid(); err != nil {
		return err
	}
	if err := s.mappings.Update(ctx, mapping); err != nil {
		return fmt.Errorf("payment: mapping update failed: %w", err)
	}

	s.logger.Info("Payment confirmed",
		zap.String("order_id", orderID),
		zap.String("pay_id", mapping.PayID))

	return nil
}
