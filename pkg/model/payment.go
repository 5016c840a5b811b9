package model

import "fmt"

type InsufficientPaymentError struct {
	Tendered Amount
	Due      Amount
}

func (e InsufficientPaymentError) Error() string {
	return fmt.Sprintf("tendered %s is less than due %s", e.Tendered, e.Due)
}

type CashPayment struct {
	Tendered Amount
	Due      Amount
}

func NewCashPayment(tendered Amount, due Amount) (CashPayment, error) {
	if tendered.LessThan(due) {
		return CashPayment{}, InsufficientPaymentError{Tendered: tendered, Due: due}
	}
	return CashPayment{Tendered: tendered, Due: due}, nil
}

func (p CashPayment) Change() (Amount, bool) {
	return p.Tendered.Sub(p.Due)
}

// CashRegister keeps the sum of amounts due over all accepted payments.
type CashRegister struct {
	balance TotalAmount
}

func NewCashRegister() *CashRegister {
	return &CashRegister{balance: NewTotalAmount()}
}

// AddPayment credits the amount due, not the amount tendered, and returns the
// change. It does not check that enough was tendered.
func (r *CashRegister) AddPayment(payment CashPayment) (Amount, error) {
	change, ok := payment.Change()
	if !ok {
		return Amount{}, AmountOverflowError{"change"}
	}
	balance := r.balance
	balance.Add(payment.Due)
	if !balance.Ok {
		return Amount{}, AmountOverflowError{"register balance"}
	}
	r.balance = balance
	return change, nil
}

func (r *CashRegister) Balance() Amount {
	return r.balance.Total
}
