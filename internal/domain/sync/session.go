package sync

import (
	"context"
	"errors"
)

// ErrSessionNotFound indicates no stored credentials for the shop
var ErrSessionNotFound = errors.New("sync: no session found for shop")

// ShopSession carries the Shopify Admin API credentials for one shop.
// Sessions are written by the embedding app's OAuth flow; this service
// only reads them. Every handler receives the session explicitly instead
// of reading ambient process state.
type ShopSession struct {
	Shop        string
	AccessToken string
}

// Validate checks the session carries usable credentials
func (s *ShopSession) Validate() error {
	if s == nil || s.Shop == "" || s.AccessToken == "" {
		return ErrSessionNotFound
	}
	return nil
}

// SessionRepository reads stored shop credentials
type SessionRepository interface {
	// FindByShop returns the session for a shop domain, or ErrSessionNotFound
	FindByShop(ctx context.Context, shop string) (*ShopSession, error)
}
