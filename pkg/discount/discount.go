// Package discount maps customer identifiers to the discount they get on a sale.
package discount

import (
	"pos-register/pkg/model"

	"github.com/shopspring/decimal"
)

// DiscountStrategy computes a discount without modifying the sale.
type DiscountStrategy interface {
	CalculateDiscount(sale *model.Sale, customerId string) model.Amount
}

// CustomerBasedDiscount takes a percentage of the sale's gross total, rounded
// half-up to a minor unit. Any discount already applied is ignored.
type CustomerBasedDiscount struct {
	Rate decimal.Decimal
}

var _ DiscountStrategy = CustomerBasedDiscount{}

func (d CustomerBasedDiscount) CalculateDiscount(sale *model.Sale, _ string) model.Amount {
	discount, ok := sale.GrossTotal().MulRate(d.Rate)
	if !ok {
		return sale.GrossTotal()
	}
	return discount
}

type NoDiscount struct{}

var _ DiscountStrategy = NoDiscount{}

func (NoDiscount) CalculateDiscount(*model.Sale, string) model.Amount {
	return model.Amount{}
}

// DiscountHandler is a keyed table of customer discounts. Unknown customers get
// no discount.
type DiscountHandler struct {
	customerDiscounts map[string]DiscountStrategy
}

var _ model.DiscountResolver = &DiscountHandler{}

func NewDiscountHandler(rates map[string]decimal.Decimal) *DiscountHandler {
	customerDiscounts := make(map[string]DiscountStrategy, len(rates))
	for customerId, rate := range rates {
		customerDiscounts[customerId] = CustomerBasedDiscount{Rate: rate}
	}
	return &DiscountHandler{customerDiscounts: customerDiscounts}
}

// DiscountAmount never exceeds the sale's gross total.
func (h *DiscountHandler) DiscountAmount(sale *model.Sale, customerId string) model.Amount {
	strategy, ok := h.customerDiscounts[customerId]
	if !ok {
		strategy = NoDiscount{}
	}
	discount := strategy.CalculateDiscount(sale, customerId)
	if discount.GreaterThan(sale.GrossTotal()) {
		return sale.GrossTotal()
	}
	return discount
}

func (h *DiscountHandler) IsEligibleForDiscount(customerId string) bool {
	_, ok := h.customerDiscounts[customerId]
	return ok
}
