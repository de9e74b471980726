package promo

import (
	"context"
	"testing"

	"github.com/adilzhan-dev/orda-storefront/internal/cartapi"
	pkgerrors "github.com/adilzhan-dev/orda-storefront/pkg/errors"
	"github.com/adilzhan-dev/orda-storefront/pkg/money"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	gotCode string
	resp    *cartapi.ValidatePromoResponse
	err     error
}

func (s *stubValidator) ValidatePromo(ctx context.Context, req cartapi.ValidatePromoRequest) (*cartapi.ValidatePromoResponse, error) {
	s.gotCode = req.Code
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newSession(t *testing.T, api promoValidator) *Session {
	t.Helper()
	s, err := NewSession(api, nil, nil)
	require.NoError(t, err)
	return s
}

func TestApplyNormalizesCode(t *testing.T) {
	api := &stubValidator{resp: &cartapi.ValidatePromoResponse{DiscountSum: money.FromInt(500)}}
	s := newSession(t, api)

	adj, err := s.Apply(context.Background(), "  winter25 ")
	require.NoError(t, err)
	require.Equal(t, "WINTER25", api.gotCode)
	require.Equal(t, "WINTER25", adj.Code)
	require.True(t, adj.DiscountSum.Equal(money.FromInt(500)))
}

func TestApplyEmptyCodeRejectedLocally(t *testing.T) {
	api := &stubValidator{}
	s := newSession(t, api)

	_, err := s.Apply(context.Background(), "   ")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	require.Empty(t, api.gotCode, "empty code must not reach the network")
}

func TestRejectionKeepsPreviousAdjustment(t *testing.T) {
	api := &stubValidator{resp: &cartapi.ValidatePromoResponse{DiscountSum: money.FromInt(1000)}}
	s := newSession(t, api)

	_, err := s.Apply(context.Background(), "FIRST")
	require.NoError(t, err)

	api.err = pkgerrors.New(pkgerrors.CodeNotFound, "promo code not found")
	current, err := s.Apply(context.Background(), "SECOND")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	require.Equal(t, "FIRST", current.Code, "previous promo stays in effect")
	require.Equal(t, "FIRST", s.Current().Code)
}

func TestApplyReplacesAdjustmentOnSuccess(t *testing.T) {
	api := &stubValidator{resp: &cartapi.ValidatePromoResponse{DiscountSum: money.FromInt(1000)}}
	s := newSession(t, api)

	_, err := s.Apply(context.Background(), "FIRST")
	require.NoError(t, err)

	api.resp = &cartapi.ValidatePromoResponse{DiscountPercent: money.FromInt(15)}
	adj, err := s.Apply(context.Background(), "SECOND")
	require.NoError(t, err)
	require.Equal(t, "SECOND", adj.Code)
	require.True(t, adj.DiscountSum.IsZero())
	require.True(t, adj.DiscountPercent.Equal(money.FromInt(15)))
}

func TestReset(t *testing.T) {
	api := &stubValidator{resp: &cartapi.ValidatePromoResponse{DiscountSum: money.FromInt(1000)}}
	s := newSession(t, api)

	_, err := s.Apply(context.Background(), "WINTER")
	require.NoError(t, err)
	s.Reset()
	require.True(t, s.Current().IsZero())
}

func TestFinalTotalFormula(t *testing.T) {
	api := &stubValidator{resp: &cartapi.ValidatePromoResponse{
		DiscountSum:     money.FromInt(10000),
		DiscountPercent: money.FromInt(10),
	}}
	s := newSession(t, api)

	_, err := s.Apply(context.Background(), "WINTER")
	require.NoError(t, err)

	// ((100000-10000) - 9000) + 20000
	final := s.FinalTotal(money.FromInt(100000), money.FromInt(20000))
	require.True(t, final.Equal(money.FromInt(101000)), "got %s", final)
}

func TestFinalTotalWithoutPromoIsSubtotalPlusDelivery(t *testing.T) {
	s := newSession(t, &stubValidator{})

	final := s.FinalTotal(money.FromInt(5000), money.FromInt(1500))
	require.True(t, final.Equal(money.FromInt(6500)))
}

func TestFinalTotalNeverDiscountsBelowZero(t *testing.T) {
	api := &stubValidator{resp: &cartapi.ValidatePromoResponse{DiscountSum: money.FromInt(10000)}}
	s := newSession(t, api)

	_, err := s.Apply(context.Background(), "BIG")
	require.NoError(t, err)

	final := s.FinalTotal(money.FromInt(3000), money.FromInt(1500))
	require.True(t, final.Equal(money.FromInt(1500)), "got %s", final)
}
