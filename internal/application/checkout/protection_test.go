package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncbridge/backend/internal/infrastructure/config"
)

func protectionConfig() config.ProtectionConfig {
	return config.ProtectionConfig{
		Tiers: []config.ProtectionTierConfig{
			{Threshold: "0", VariantID: "gid://shopify/ProductVariant/101"},
			{Threshold: "60", VariantID: "gid://shopify/ProductVariant/102"},
			{Threshold: "120", VariantID: "gid://shopify/ProductVariant/103"},
			{Threshold: "180", VariantID: "gid://shopify/ProductVariant/104"},
		},
	}
}

func TestNewTierTable(t *testing.T) {
	t.Run("sorts rows by threshold", func(t *testing.T) {
		cfg := protectionConfig()
		cfg.Tiers[0], cfg.Tiers[3] = cfg.Tiers[3], cfg.Tiers[0]

		table, err := NewTierTable(cfg)
		require.NoError(t, err)

		tiers := table.Tiers()
		require.Len(t, tiers, 4)
		assert.True(t, tiers[0].Threshold.IsZero())
		assert.Equal(t, "gid://shopify/ProductVariant/104", tiers[3].VariantID)
	})

	t.Run("rejects bad threshold", func(t *testing.T) {
		_, err := NewTierTable(config.ProtectionConfig{
			Tiers: []config.ProtectionTierConfig{{Threshold: "sixty", VariantID: "v"}},
		})
		assert.Error(t, err)
	})

	t.Run("rejects missing variant", func(t *testing.T) {
		_, err := NewTierTable(config.ProtectionConfig{
			Tiers: []config.ProtectionTierConfig{{Threshold: "0", VariantID: ""}},
		})
		assert.Error(t, err)
	})
}

func TestSelectTier(t *testing.T) {
	table, err := NewTierTable(protectionConfig())
	require.NoError(t, err)

	tests := []struct {
		name     string
		subtotal string
		want     string
		found    bool
	}{
		{"zero subtotal", "0", "gid://shopify/ProductVariant/101", true},
		{"inside first tier", "59.99", "gid://shopify/ProductVariant/101", true},
		{"lower bound is inclusive", "60.00", "gid://shopify/ProductVariant/102", true},
		{"mid second tier", "75.00", "gid://shopify/ProductVariant/102", true},
		{"third tier", "120.00", "gid://shopify/ProductVariant/103", true},
		{"open-ended top tier", "9999.99", "gid://shopify/ProductVariant/104", true},
		{"negative subtotal", "-5.00", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, found := table.SelectTier(decimal.RequireFromString(tt.subtotal))
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, tier.VariantID)
			}
		})
	}
}
