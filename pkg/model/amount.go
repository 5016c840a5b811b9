package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/JohnCGriffin/overflow"
	"github.com/shopspring/decimal"
)

// DisplayDigits is the number of minor-unit digits shown by Amount.Display.
const DisplayDigits = 2

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

type AmountOverflowError struct {
	Operation string
}

func (e AmountOverflowError) Error() string {
	return fmt.Sprintf("amount overflow in %s", e.Operation)
}

// Amount is an integer number of minor units. Amounts are never mutated: every
// operation returns a new value, and the ok flag is false when the result does
// not fit in an int64.
type Amount struct {
	Number int64
}

func NewAmount(n int64) Amount {
	return Amount{Number: n}
}

// NewAmountFromDecimal rounds d to the nearest integer, halves away from zero.
// It is the only place where a fractional value becomes an Amount.
func NewAmountFromDecimal(d decimal.Decimal) (Amount, bool) {
	rounded := d.Round(0)
	if rounded.GreaterThan(maxAmount) || rounded.LessThan(minAmount) {
		return Amount{}, false
	}
	return Amount{Number: rounded.IntPart()}, true
}

func (a Amount) Add(b Amount) (Amount, bool) {
	sum, ok := overflow.Add64(a.Number, b.Number)
	if !ok {
		return Amount{}, false
	}
	return Amount{Number: sum}, ok
}

// Sub may produce a negative Amount. Callers enforce domain non-negativity.
func (a Amount) Sub(b Amount) (Amount, bool) {
	diff, ok := overflow.Sub64(a.Number, b.Number)
	if !ok {
		return Amount{}, false
	}
	return Amount{Number: diff}, ok
}

func (a Amount) Mul(n int64) (Amount, bool) {
	product, ok := overflow.Mul64(a.Number, n)
	if !ok {
		return Amount{}, false
	}
	return Amount{Number: product}, ok
}

// MulRate multiplies by a fractional rate, rounding once.
func (a Amount) MulRate(rate decimal.Decimal) (Amount, bool) {
	return NewAmountFromDecimal(a.Decimal().Mul(rate))
}

func (a Amount) Cmp(b Amount) int {
	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	}
	return 0
}

func (a Amount) LessThan(b Amount) bool {
	return a.Number < b.Number
}

func (a Amount) GreaterThan(b Amount) bool {
	return a.Number > b.Number
}

func (a Amount) IsNegative() bool {
	return a.Number < 0
}

func (a Amount) IsZero() bool {
	return a.Number == 0
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(a.Number)
}

func (a Amount) String() string {
	return strconv.FormatInt(a.Number, 10)
}

// Display shows the amount in major units, e.g. 2990 -> "29.90".
func (a Amount) Display() string {
	return decimal.New(a.Number, -DisplayDigits).StringFixed(DisplayDigits)
}

// TotalAmount accumulates amounts and remembers whether any addition overflowed.
type TotalAmount struct {
	Total Amount
	Ok    bool
}

func NewTotalAmount() TotalAmount {
	return TotalAmount{Ok: true}
}

func (total *TotalAmount) Add(amount Amount) {
	if total.Ok {
		total.Total, total.Ok = total.Total.Add(amount)
	}
}
