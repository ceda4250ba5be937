package services

import (
	"fmt"
	"math"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"
)

// TaxRate is the flat tax applied to every cart and order.
const TaxRate = 0.18

// PriceLine is one priced cart or order line.
type PriceLine struct {
	Price    int64
	Quantity int
}

// Totals computes subtotal = sum(price*quantity), tax = round(subtotal*TaxRate)
// and total = subtotal + tax.
func Totals(lines []PriceLine) (subtotal, tax, total int64) {
	for _, l := range lines {
		subtotal += l.Price * int64(l.Quantity)
	}
	tax = int64(math.Round(float64(subtotal) * TaxRate))
	return subtotal, tax, subtotal + tax
}

// CartService prices a cart without persisting anything.
type CartService struct {
	maxItems int
}

func NewCartService(maxItems int) *CartService {
	return &CartService{maxItems: maxItems}
}

// Quote validates the cart and returns its totals.
func (s *CartService) Quote(items []models.CartItem) (*models.CartQuote, error) {
	lines := make([]PriceLine, 0, len(items))
	units := 0
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, apperrors.Validation("Quantity must be at least 1")
		}
		if item.Price < 0 {
			return nil, apperrors.Validation("Price cannot be negative")
		}
		units += item.Quantity
		lines = append(lines, PriceLine{Price: int64(item.Price), Quantity: item.Quantity})
	}
	if err := checkUnits(units, s.maxItems); err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.CartItem{}
	}
	subtotal, tax, total := Totals(lines)
	return &models.CartQuote{
		Items:     items,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
		ItemCount: len(items),
	}, nil
}

func checkUnits(units, max int) error {
	if max > 0 && units > max {
		return apperrors.Validation(fmt.Sprintf("You can only purchase a maximum of %d items per order", max))
	}
	return nil
}
