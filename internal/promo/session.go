// Package promo holds the checkout-session promo adjustment: a server
// validated flat and/or percent discount applied once on top of the cart
// subtotal. The adjustment never persists across checkout sessions.
package promo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/adilzhan-dev/orda-storefront/internal/cartapi"
	pkgerrors "github.com/adilzhan-dev/orda-storefront/pkg/errors"
	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
	"github.com/adilzhan-dev/orda-storefront/pkg/metrics"
	"github.com/adilzhan-dev/orda-storefront/pkg/money"
	"github.com/shopspring/decimal"
)

type promoValidator interface {
	ValidatePromo(ctx context.Context, req cartapi.ValidatePromoRequest) (*cartapi.ValidatePromoResponse, error)
}

// Adjustment is the active discount for the checkout session. The zero
// value means no promo is applied.
type Adjustment struct {
	DiscountSum     decimal.Decimal
	DiscountPercent decimal.Decimal
	Code            string
}

// IsZero reports whether no promo is in effect.
func (a Adjustment) IsZero() bool {
	return a.Code == ""
}

// Session owns the adjustment for one checkout session.
type Session struct {
	mu  sync.Mutex
	adj Adjustment

	api     promoValidator
	logg    *logger.Logger
	metrics *metrics.PromoMetrics
}

// NewSession builds a promo session backed by the validation endpoint.
func NewSession(api promoValidator, logg *logger.Logger, m *metrics.PromoMetrics) (*Session, error) {
	if api == nil {
		return nil, fmt.Errorf("promo validator required")
	}
	return &Session{api: api, logg: logg, metrics: m}, nil
}

// NormalizeCode strips whitespace and upper-cases the user-entered code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Apply validates the code and, on success, replaces the session
// adjustment. Any rejection leaves the previously applied promo in effect
// and returns the typed error (NOT_FOUND, CONFLICT or VALIDATION_ERROR).
func (s *Session) Apply(ctx context.Context, code string) (Adjustment, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		s.metrics.IncRejected("invalid")
		return s.Current(), pkgerrors.New(pkgerrors.CodeValidation, "promo code is empty")
	}
	if s.logg != nil {
		ctx = s.logg.WithPromoCode(ctx, normalized)
	}

	resp, err := s.api.ValidatePromo(ctx, cartapi.ValidatePromoRequest{Code: normalized})
	if err != nil {
		s.metrics.IncRejected(rejectReason(err))
		if s.logg != nil {
			s.logg.Warn(ctx, "promo code rejected")
		}
		return s.Current(), err
	}

	applied := Adjustment{
		DiscountSum:     resp.DiscountSum,
		DiscountPercent: resp.DiscountPercent,
		Code:            normalized,
	}

	s.mu.Lock()
	s.adj = applied
	s.mu.Unlock()

	s.metrics.IncApplied()
	if s.logg != nil {
		s.logg.Info(ctx, "promo code applied")
	}
	return applied, nil
}

// Current returns the adjustment in effect.
func (s *Session) Current() Adjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adj
}

// Reset clears the adjustment; called whenever a checkout session starts.
func (s *Session) Reset() {
	s.mu.Lock()
	s.adj = Adjustment{}
	s.mu.Unlock()
}

// FinalTotal computes the payable amount: the flat discount comes off the
// subtotal, the percent discount comes off the remainder, delivery is
// added last. The discounted goods total never goes below zero.
func (s *Session) FinalTotal(subtotal, deliverySum decimal.Decimal) decimal.Decimal {
	adj := s.Current()

	afterFlat := subtotal.Sub(adj.DiscountSum)
	if afterFlat.IsNegative() {
		afterFlat = money.Zero()
	}
	afterPercent := money.PercentOff(afterFlat, adj.DiscountPercent)
	return afterPercent.Add(deliverySum)
}

func rejectReason(err error) string {
	switch {
	case pkgerrors.HasCode(err, pkgerrors.CodeNotFound):
		return "not_found"
	case pkgerrors.HasCode(err, pkgerrors.CodeConflict):
		return "conflict"
	case pkgerrors.HasCode(err, pkgerrors.CodeValidation):
		return "invalid"
	}
	return "dependency"
}
