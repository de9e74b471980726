package cartapi

import (
	"github.com/adilzhan-dev/orda-storefront/internal/cart"
	"github.com/shopspring/decimal"
)

// AddToCartRequest mutates a server cart line. A negative quantity is a
// decrement when the backend accepts deltas.
type AddToCartRequest struct {
	Slug           string `json:"slug" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required"`
	SizeID         *int64 `json:"size_id,omitempty"`
	CollectionSlug string `json:"collection,omitempty"`
}

// RemoveFromCartRequest drops a server cart line entirely.
type RemoveFromCartRequest struct {
	Slug   string `json:"slug" validate:"required"`
	SizeID *int64 `json:"size_id,omitempty"`
}

// CartLine is one server-confirmed cart line.
type CartLine struct {
	ID              int64           `json:"id" validate:"required"`
	Slug            string          `json:"slug" validate:"required"`
	SizeID          *int64          `json:"size_id"`
	Quantity        int             `json:"quantity" validate:"required,min=1"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CollectionSlug  string          `json:"collection"`
	Name            string          `json:"name"`
	ImageURL        string          `json:"image_url"`
}

// FetchCartResponse is the authoritative server cart.
type FetchCartResponse struct {
	Items []CartLine `json:"items" validate:"dive"`
}

// LineItems maps the server cart onto store line items, preserving order.
func (r FetchCartResponse) LineItems() []cart.LineItem {
	items := make([]cart.LineItem, 0, len(r.Items))
	for _, line := range r.Items {
		items = append(items, cart.LineItem{
			ProductID:       line.ID,
			Slug:            line.Slug,
			SizeID:          line.SizeID,
			Quantity:        line.Quantity,
			Price:           line.Price,
			DiscountPercent: line.DiscountPercent,
			CollectionSlug:  line.CollectionSlug,
			Name:            line.Name,
			ImageURL:        line.ImageURL,
		})
	}
	return items
}

// Quantities rebuilds the server-confirmed quantity map wholesale.
func (r FetchCartResponse) Quantities() cart.APIQuantities {
	quantities := make(cart.APIQuantities, len(r.Items))
	for _, line := range r.Items {
		quantities[cart.LineKey(line.ID, line.SizeID)] = line.Quantity
	}
	return quantities
}

// ValidatePromoRequest carries the normalized promo code.
type ValidatePromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// ValidatePromoResponse is a successful promo validation.
type ValidatePromoResponse struct {
	DiscountSum     decimal.Decimal `json:"discount_sum"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// OrderLine is the order payload's view of one cart line.
type OrderLine struct {
	Slug     string `json:"slug" validate:"required"`
	SizeID   *int64 `json:"size_id,omitempty"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// OrderPayload is submitted at checkout. TotalSum is the post-promo,
// post-delivery payable amount, not the pre-discount subtotal.
type OrderPayload struct {
	IdempotencyKey string          `json:"idempotency_key" validate:"required"`
	CustomerName   string          `json:"customer_name" validate:"required"`
	Phone          string          `json:"phone" validate:"required"`
	City           string          `json:"city" validate:"required"`
	Address        string          `json:"address,omitempty"`
	PromoCode      string          `json:"promo_code,omitempty"`
	DeliverySum    decimal.Decimal `json:"delivery_sum"`
	TotalSum       decimal.Decimal `json:"total_sum"`
	Items          []OrderLine     `json:"items" validate:"required,min=1,dive"`
}

// SubmitOrderResponse acknowledges a created order.
type SubmitOrderResponse struct {
	ID          int64  `json:"id" validate:"required"`
	PaymentType string `json:"payment_type"`
}
