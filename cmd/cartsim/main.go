// cartsim prices a cart snapshot from the command line: it hydrates the
// local store, loads an optional cart fixture, and prints per-line and
// aggregate totals. With a reachable backend it can also push local
// quantities to the server cart and validate a promo code.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/adilzhan-dev/orda-storefront/internal/cart"
	"github.com/adilzhan-dev/orda-storefront/internal/cartapi"
	"github.com/adilzhan-dev/orda-storefront/internal/checkout"
	"github.com/adilzhan-dev/orda-storefront/internal/pricing"
	"github.com/adilzhan-dev/orda-storefront/internal/promo"
	"github.com/adilzhan-dev/orda-storefront/internal/reconcile"
	"github.com/adilzhan-dev/orda-storefront/pkg/config"
	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
	"github.com/adilzhan-dev/orda-storefront/pkg/metrics"
	"github.com/adilzhan-dev/orda-storefront/pkg/money"
	"github.com/adilzhan-dev/orda-storefront/pkg/session"
	"github.com/adilzhan-dev/orda-storefront/pkg/storage"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cartPath := flag.String("cart", "", "path to a JSON cart fixture to load")
	promoCode := flag.String("promo", "", "promo code to validate against the backend")
	city := flag.String("city", "", "delivery city for the final total")
	sync := flag.Bool("sync", false, "push local quantities to the server cart")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cartsim"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cartsim",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	kv, err := storage.New(ctx, cfg.Storage, logg)
	if err != nil {
		logg.Error(ctx, "failed to open local storage", err)
		os.Exit(1)
	}

	engine := pricing.NewEngine(cfg.Pricing.ExemptCollections)
	store := cart.NewStore(ctx, engine, kv, logg)

	tokens := session.NewTokenStore(kv, logg)
	client, err := cartapi.NewClient(cfg.API, tokens)
	if err != nil {
		logg.Error(ctx, "failed to build api client", err)
		os.Exit(1)
	}
	reconciler, err := reconcile.New(store, client, cfg.Sync, logg, metrics.NewSyncMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		logg.Error(ctx, "failed to build reconciler", err)
		os.Exit(1)
	}
	promoSession, err := promo.NewSession(client, logg, metrics.NewPromoMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		logg.Error(ctx, "failed to build promo session", err)
		os.Exit(1)
	}
	svc, err := checkout.NewService(store, reconciler, promoSession, client, cfg.Delivery, logg)
	if err != nil {
		logg.Error(ctx, "failed to build checkout service", err)
		os.Exit(1)
	}

	if *cartPath != "" {
		items, err := loadFixture(*cartPath)
		if err != nil {
			logg.Error(ctx, "failed to load cart fixture", err)
			os.Exit(1)
		}
		store.SetItems(ctx, items)
	}

	for _, item := range store.Items() {
		lineTotal := store.LineDiscountedTotal(item.CollectionSlug, item.Price, item.Quantity)
		fmt.Printf("%-30s x%-3d %s\n", item.Slug, item.Quantity, money.FormatTenge(lineTotal))
	}

	subtotal := store.TotalSum()
	fmt.Printf("subtotal: %s\n", money.FormatTenge(subtotal))

	if *sync {
		if err := reconciler.DeltaPush(ctx); err != nil {
			logg.Error(ctx, "failed to push cart to server", err)
			os.Exit(1)
		}
		logg.Info(ctx, "server cart reconciled")
	}

	if *promoCode != "" {
		if _, err := promoSession.Apply(ctx, *promoCode); err != nil {
			logg.Error(ctx, "promo code rejected", err)
			os.Exit(1)
		}
	}

	deliverySum := svc.DeliverySum(*city)
	fmt.Printf("delivery: %s\n", money.FormatTenge(deliverySum))
	fmt.Printf("payable:  %s\n", money.FormatTenge(promoSession.FinalTotal(subtotal, deliverySum)))
}

func loadFixture(path string) ([]cart.LineItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []cart.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
