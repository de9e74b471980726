// Package pricing computes effective cart prices under two stacked
// discount layers: an item-level markdown and the storefront's
// every-second-unit-half-price promotion scoped per collection.
package pricing

import (
	"strings"

	"github.com/adilzhan-dev/orda-storefront/pkg/money"
	"github.com/shopspring/decimal"
)

// defaultGroup buckets lines that carry no collection slug so they still
// participate in the alternating rule together.
const defaultGroup = "_default"

// Line is the pricing view of one cart line.
type Line struct {
	CollectionSlug  string
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Quantity        int
}

// ExceptionSet holds collection slugs exempt from the alternating rule.
type ExceptionSet map[string]struct{}

// NewExceptionSet normalizes the configured slugs into a lookup set.
func NewExceptionSet(slugs []string) ExceptionSet {
	set := make(ExceptionSet, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}
		set[slug] = struct{}{}
	}
	return set
}

// Contains reports whether the collection opts out of the alternating rule.
func (s ExceptionSet) Contains(slug string) bool {
	_, ok := s[slug]
	return ok
}

// Engine prices carts. It is stateless apart from the static exception set
// and safe for concurrent reads.
type Engine struct {
	exceptions ExceptionSet
}

func NewEngine(exemptCollections []string) *Engine {
	return &Engine{exceptions: NewExceptionSet(exemptCollections)}
}

// EffectiveUnitPrice applies the item-level markdown only.
func (e *Engine) EffectiveUnitPrice(line Line) decimal.Decimal {
	if line.DiscountPercent.IsZero() {
		return line.UnitPrice
	}
	return money.PercentOff(line.UnitPrice, line.DiscountPercent)
}

// ComputeTotal sums the whole cart under both discount layers. Units are
// numbered per collection group in cart insertion order; every second unit
// pays half its markdown-adjusted price unless the collection is exempt.
// A nil or empty cart totals zero. Never panics.
func (e *Engine) ComputeTotal(lines []Line) decimal.Decimal {
	total := money.Zero()
	positions := map[string]int{}

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		unit := e.EffectiveUnitPrice(line)
		group := groupSlug(line.CollectionSlug)

		if e.exceptions.Contains(group) {
			total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
			continue
		}

		for i := 0; i < line.Quantity; i++ {
			positions[group]++
			if positions[group]%2 == 0 {
				total = total.Add(money.Half(unit))
			} else {
				total = total.Add(unit)
			}
		}
	}

	if total.IsNegative() {
		return money.Zero()
	}
	return total
}

// LineDiscountedTotal prices a single line as if it were alone in its
// collection group, positions starting at 1. This is the per-line display
// figure; it deliberately ignores sibling lines of the same collection, so
// it can disagree with the line's share of ComputeTotal.
func (e *Engine) LineDiscountedTotal(collectionSlug string, unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return money.Zero()
	}
	if e.exceptions.Contains(groupSlug(collectionSlug)) {
		return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	}

	total := money.Zero()
	for pos := 1; pos <= quantity; pos++ {
		if pos%2 == 0 {
			total = total.Add(money.Half(unitPrice))
		} else {
			total = total.Add(unitPrice)
		}
	}
	return total
}

func groupSlug(collectionSlug string) string {
	if collectionSlug == "" {
		return defaultGroup
	}
	return collectionSlug
}
