package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrEmptyIdentifier = errors.New("item identifier is empty")

type InvalidVATRateError struct {
	Rate decimal.Decimal
}

func (e InvalidVATRateError) Error() string {
	return fmt.Sprintf("invalid VAT rate %s, must be in [0, 1)", e.Rate)
}

type InvalidPriceError struct {
	Price Amount
}

func (e InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid unit price %s", e.Price)
}

type InvalidQuantityError struct {
	Quantity int
}

func (e InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d, must be at least 1", e.Quantity)
}

// ItemDTO describes an item as the inventory knows it.
type ItemDTO struct {
	Identifier  string
	Description string
	UnitPrice   Amount
	VATRate     decimal.Decimal
}

func NewItemDTO(identifier string, description string, unitPrice Amount, vatRate decimal.Decimal) (ItemDTO, error) {
	if identifier == "" {
		return ItemDTO{}, ErrEmptyIdentifier
	}
	if unitPrice.IsNegative() {
		return ItemDTO{}, InvalidPriceError{unitPrice}
	}
	if vatRate.IsNegative() || vatRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ItemDTO{}, InvalidVATRateError{vatRate}
	}
	return ItemDTO{
		Identifier:  identifier,
		Description: description,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
	}, nil
}

// LineItem is one product line of a sale.
type LineItem struct {
	Item     ItemDTO
	Quantity int
}

// NetPrice is unit price times quantity, VAT excluded.
func (l LineItem) NetPrice() (Amount, bool) {
	return l.Item.UnitPrice.Mul(int64(l.Quantity))
}

// VAT is the unrounded VAT of the line.
func (l LineItem) VAT() (decimal.Decimal, bool) {
	net, ok := l.NetPrice()
	if !ok {
		return decimal.Zero, false
	}
	return net.Decimal().Mul(l.Item.VATRate), true
}
