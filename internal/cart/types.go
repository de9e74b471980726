package cart

import (
	"fmt"

	"github.com/adilzhan-dev/orda-storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

// LineItem is one product/size combination in the cart. The (ProductID,
// SizeID) pair is its identity; no two lines share both. Name and ImageURL
// are carried for rendering only and never influence pricing.
type LineItem struct {
	ProductID       int64           `json:"id"`
	Slug            string          `json:"slug"`
	SizeID          *int64          `json:"size_id,omitempty"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CollectionSlug  string          `json:"collection_slug,omitempty"`
	Name            string          `json:"name,omitempty"`
	ImageURL        string          `json:"image_url,omitempty"`
}

// Key renders the line identity as "{id}-{sizeId}"; a size-less line keeps
// the trailing dash so keys stay unambiguous.
func (l LineItem) Key() string {
	return LineKey(l.ProductID, l.SizeID)
}

// LineKey builds the identity key used by APIQuantities and sync deltas.
func LineKey(productID int64, sizeID *int64) string {
	if sizeID == nil {
		return fmt.Sprintf("%d-", productID)
	}
	return fmt.Sprintf("%d-%d", productID, *sizeID)
}

func (l LineItem) sameIdentity(productID int64, sizeID *int64) bool {
	if l.ProductID != productID {
		return false
	}
	if l.SizeID == nil || sizeID == nil {
		return l.SizeID == nil && sizeID == nil
	}
	return *l.SizeID == *sizeID
}

func (l LineItem) pricingLine() pricing.Line {
	return pricing.Line{
		CollectionSlug:  l.CollectionSlug,
		UnitPrice:       l.Price,
		DiscountPercent: l.DiscountPercent,
		Quantity:        l.Quantity,
	}
}

// APIQuantities maps line keys to the last server-confirmed quantity.
// It is rebuilt wholesale after every server cart fetch and never patched.
type APIQuantities map[string]int
