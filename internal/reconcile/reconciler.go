// Package reconcile synchronizes the locally-accumulated anonymous cart
// with the authoritative server cart on login and checkout. Lines are
// pushed strictly sequentially so a partial failure leaves a deterministic
// boundary: lines after the failed one have not been sent.
package reconcile

import (
	"context"
	"fmt"

	"github.com/adilzhan-dev/orda-storefront/internal/cart"
	"github.com/adilzhan-dev/orda-storefront/internal/cartapi"
	"github.com/adilzhan-dev/orda-storefront/pkg/config"
	pkgerrors "github.com/adilzhan-dev/orda-storefront/pkg/errors"
	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
	"github.com/adilzhan-dev/orda-storefront/pkg/metrics"
)

const (
	ModeFull  = "full"
	ModeDelta = "delta"
)

type serverCart interface {
	AddToCart(ctx context.Context, req cartapi.AddToCartRequest) error
	RemoveFromCart(ctx context.Context, req cartapi.RemoveFromCartRequest) error
	FetchCart(ctx context.Context) (*cartapi.FetchCartResponse, error)
}

type cartState interface {
	Items() []cart.LineItem
	APIQuantities() cart.APIQuantities
	Clear(ctx context.Context)
	SetItems(ctx context.Context, items []cart.LineItem)
	SetAPIQuantities(ctx context.Context, quantities cart.APIQuantities)
}

// Reconciler pushes local cart state to the server cart.
type Reconciler struct {
	store   cartState
	api     serverCart
	cfg     config.SyncConfig
	logg    *logger.Logger
	metrics *metrics.SyncMetrics
}

// New builds a reconciler backed by the provided collaborators.
func New(store cartState, api serverCart, cfg config.SyncConfig, logg *logger.Logger, m *metrics.SyncMetrics) (*Reconciler, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if api == nil {
		return nil, fmt.Errorf("server cart client required")
	}
	return &Reconciler{store: store, api: api, cfg: cfg, logg: logg, metrics: m}, nil
}

// FullPush sends every local line's full quantity to the server cart and
// clears the local cart. It assumes the server cart was empty beforehand
// (fresh account or first sync). A failed line is logged and skipped; the
// remaining lines are still pushed. Context cancellation stops issuing
// further calls and leaves the local cart intact.
func (r *Reconciler) FullPush(ctx context.Context) error {
	ctx = r.withMode(ctx, ModeFull)

	for _, item := range r.store.Items() {
		if err := ctx.Err(); err != nil {
			return err
		}
		req := cartapi.AddToCartRequest{
			Slug:           item.Slug,
			Quantity:       item.Quantity,
			SizeID:         item.SizeID,
			CollectionSlug: item.CollectionSlug,
		}
		if err := r.api.AddToCart(ctx, req); err != nil {
			r.metrics.IncFailed(ModeFull)
			if r.logg != nil {
				r.logg.Error(r.withLine(ctx, item), "cart line push failed, continuing", err)
			}
			continue
		}
		r.metrics.IncPushed(ModeFull)
	}

	r.store.Clear(ctx)
	return nil
}

// DeltaPush sends only the difference between local and server-confirmed
// quantities, one call per differing line, in cart order. A missing server
// quantity counts as zero. The first failure aborts immediately and
// surfaces to the caller; lines after it are untouched.
func (r *Reconciler) DeltaPush(ctx context.Context) error {
	ctx = r.withMode(ctx, ModeDelta)
	serverQty := r.store.APIQuantities()

	for _, item := range r.store.Items() {
		if err := ctx.Err(); err != nil {
			return err
		}
		delta := item.Quantity - serverQty[item.Key()]
		if delta == 0 {
			r.metrics.IncSkipped(ModeDelta)
			continue
		}

		if err := r.pushDelta(ctx, item, delta); err != nil {
			r.metrics.IncFailed(ModeDelta)
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart sync incomplete").
				WithDetails(map[string]any{"line_key": item.Key()})
		}
		r.metrics.IncPushed(ModeDelta)
	}

	return nil
}

// RefreshFromServer replaces local cart state with the authoritative
// server cart, rebuilding both the line items and the confirmed-quantity
// map wholesale.
func (r *Reconciler) RefreshFromServer(ctx context.Context) error {
	resp, err := r.api.FetchCart(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch server cart")
	}
	r.store.SetItems(ctx, resp.LineItems())
	r.store.SetAPIQuantities(ctx, resp.Quantities())
	return nil
}

// SyncOnLogin runs the post-authentication flow: push the anonymous cart
// up, then adopt the server cart as source of truth.
func (r *Reconciler) SyncOnLogin(ctx context.Context) error {
	if err := r.FullPush(ctx); err != nil {
		return err
	}
	return r.RefreshFromServer(ctx)
}

func (r *Reconciler) pushDelta(ctx context.Context, item cart.LineItem, delta int) error {
	if delta > 0 || r.cfg.NegativeDeltaMode == config.NegativeDeltaAdd {
		return r.api.AddToCart(ctx, cartapi.AddToCartRequest{
			Slug:           item.Slug,
			Quantity:       delta,
			SizeID:         item.SizeID,
			CollectionSlug: item.CollectionSlug,
		})
	}

	// Backend without negative-delta support: drop the server line and
	// resend the full local quantity.
	if err := r.api.RemoveFromCart(ctx, cartapi.RemoveFromCartRequest{Slug: item.Slug, SizeID: item.SizeID}); err != nil {
		return err
	}
	return r.api.AddToCart(ctx, cartapi.AddToCartRequest{
		Slug:           item.Slug,
		Quantity:       item.Quantity,
		SizeID:         item.SizeID,
		CollectionSlug: item.CollectionSlug,
	})
}

func (r *Reconciler) withMode(ctx context.Context, mode string) context.Context {
	if r.logg == nil {
		return ctx
	}
	return r.logg.WithSyncMode(ctx, mode)
}

func (r *Reconciler) withLine(ctx context.Context, item cart.LineItem) context.Context {
	if r.logg == nil {
		return ctx
	}
	return r.logg.WithLineKey(ctx, item.Key())
}
