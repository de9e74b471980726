// Package checkout orchestrates order submission: contact validation,
// delta reconciliation against the server cart, promo/delivery totals, and
// the final order call.
package checkout

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/adilzhan-dev/orda-storefront/internal/cart"
	"github.com/adilzhan-dev/orda-storefront/internal/cartapi"
	"github.com/adilzhan-dev/orda-storefront/internal/promo"
	"github.com/adilzhan-dev/orda-storefront/pkg/config"
	pkgerrors "github.com/adilzhan-dev/orda-storefront/pkg/errors"
	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Input is the user-entered checkout form.
type Input struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Phone        string `json:"phone" validate:"required,min=6"`
	City         string `json:"city" validate:"required"`
	Address      string `json:"address" validate:"required"`
}

type cartSource interface {
	Items() []cart.LineItem
	TotalSum() decimal.Decimal
	Clear(ctx context.Context)
}

type deltaPusher interface {
	DeltaPush(ctx context.Context) error
}

type orderSubmitter interface {
	SubmitOrder(ctx context.Context, payload cartapi.OrderPayload) (*cartapi.SubmitOrderResponse, error)
}

// Service drives one checkout flow at a time.
type Service struct {
	store      cartSource
	reconciler deltaPusher
	promo      *promo.Session
	orders     orderSubmitter
	delivery   config.DeliveryConfig
	logg       *logger.Logger
}

// NewService wires the checkout flow.
func NewService(store cartSource, reconciler deltaPusher, promoSession *promo.Session, orders orderSubmitter, delivery config.DeliveryConfig, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	if promoSession == nil {
		return nil, fmt.Errorf("promo session required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order client required")
	}
	return &Service{
		store:      store,
		reconciler: reconciler,
		promo:      promoSession,
		orders:     orders,
		delivery:   delivery,
		logg:       logg,
	}, nil
}

// Begin starts a fresh checkout session; any previously applied promo is
// dropped.
func (s *Service) Begin() {
	s.promo.Reset()
}

// DeliverySum resolves the flat delivery rate for the selected city.
func (s *Service) DeliverySum(city string) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(city), s.delivery.CapitalCity) {
		return s.delivery.CapitalRate()
	}
	return s.delivery.RegionalRate()
}

// Validate checks the checkout form without touching the network.
func (s *Service) Validate(input Input) error {
	if err := validate.Struct(input); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			details := map[string]string{}
			for _, fieldErr := range errs {
				details[fieldErr.Field()] = validationMessage(fieldErr)
			}
			return pkgerrors.New(pkgerrors.CodeValidation, "checkout form invalid").WithDetails(details)
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout form invalid")
	}
	return nil
}

// Submit runs the full flow: validate, reconcile local quantities into the
// server cart, compute the post-promo post-delivery total, and create the
// order. An incomplete reconciliation aborts before submission.
func (s *Service) Submit(ctx context.Context, input Input) (*cartapi.SubmitOrderResponse, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}

	items := s.store.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := s.reconciler.DeltaPush(ctx); err != nil {
		return nil, err
	}

	subtotal := s.store.TotalSum()
	deliverySum := s.DeliverySum(input.City)
	total := s.promo.FinalTotal(subtotal, deliverySum)

	payload := cartapi.OrderPayload{
		IdempotencyKey: uuid.NewString(),
		CustomerName:   input.CustomerName,
		Phone:          input.Phone,
		City:           input.City,
		Address:        input.Address,
		PromoCode:      s.promo.Current().Code,
		DeliverySum:    deliverySum,
		TotalSum:       total,
		Items:          orderLines(items),
	}

	resp, err := s.orders.SubmitOrder(ctx, payload)
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", resp.ID), "order submitted")
	}
	s.store.Clear(ctx)
	s.promo.Reset()
	return resp, nil
}

func orderLines(items []cart.LineItem) []cartapi.OrderLine {
	lines := make([]cartapi.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, cartapi.OrderLine{
			Slug:     item.Slug,
			SizeID:   item.SizeID,
			Quantity: item.Quantity,
		})
	}
	return lines
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "is invalid"
}
