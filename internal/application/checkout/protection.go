package checkout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/syncbridge/backend/internal/infrastructure/config"
)

// Tier is one row of the shipping protection table. Threshold is the
// inclusive lower bound of the subtotal range the tier covers.
type Tier struct {
	Threshold decimal.Decimal
	VariantID string
}

// TierTable selects a protection variant for a cart subtotal
type TierTable struct {
	tiers []Tier
}

// ErrNoTierConfigured indicates an empty protection table
var ErrNoTierConfigured = errors.New("checkout: no protection tier configured")

// NewTierTable builds a table from configuration rows. Rows are sorted by
// threshold so configuration order does not matter.
func NewTierTable(cfg config.ProtectionConfig) (*TierTable, error) {
	tiers := make([]Tier, 0, len(cfg.Tiers))
	for _, row := range cfg.Tiers {
		threshold, err := decimal.NewFromString(row.Threshold)
		if err != nil {
			return nil, fmt.Errorf("checkout: invalid tier threshold %q: %w", row.Threshold, err)
		}
		if row.VariantID == "" {
			return nil, fmt.Errorf("checkout: tier at threshold %s has no variant", row.Threshold)
		}
		tiers = append(tiers, Tier{Threshold: threshold, VariantID: row.VariantID})
	}

	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Threshold.LessThan(tiers[j].Threshold)
	})

	return &TierTable{tiers: tiers}, nil
}

// SelectTier returns the variant of the last tier whose threshold does not
// exceed the subtotal. Subtotals below every threshold select no tier.
func (t *TierTable) SelectTier(subtotal decimal.Decimal) (Tier, bool) {
	var selected Tier
	found := false
	for _, tier := range t.tiers {
		if subtotal.LessThan(tier.Threshold) {
			break
		}
		selected = tier
		found = true
	}
	return selected, found
}

// Tiers returns the table rows in ascending threshold order
func (t *TierTable) Tiers() []Tier {
	return t.tiers
}
