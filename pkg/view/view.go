// Package view is the cashier's side of the register: a scripted run of sales
// printed to a console.
package view

import (
	"fmt"
	"io"

	"pos-register/pkg/apperror"
	"pos-register/pkg/model"

	"go.temporal.io/sdk/log"
)

// Register is what the view drives; *controller.Controller implements it.
type Register interface {
	StartSale()
	RegisterItem(identifier string, quantity int) (model.ItemDTO, error)
	Pay(tendered model.Amount, customerId string) (model.Amount, error)
	IsEligibleForDiscount(customerId string) bool
	CurrentSale() (model.SaleRecord, bool)
}

type ScriptedItem struct {
	Identifier string
	Quantity   int
}

// ScriptedSale is one sale of a demo run. An empty CustomerId pays without discount.
type ScriptedSale struct {
	Items      []ScriptedItem
	Tendered   model.Amount
	CustomerId string
}

type View struct {
	register Register
	out      io.Writer
	errors   *ErrorMessageHandler
	logger   log.Logger
}

func NewView(register Register, out io.Writer, logger log.Logger) *View {
	return &View{
		register: register,
		out:      out,
		errors:   NewErrorMessageHandler(out),
		logger:   logger,
	}
}

// SampleExecution runs every sale of the script in order. Failures are shown to
// the cashier and the run goes on.
func (v *View) SampleExecution(script []ScriptedSale) {
	for i, sale := range script {
		fmt.Fprintf(v.out, "\n--- Sale %d ---\n", i+1)
		v.runSale(sale)
	}
}

func (v *View) runSale(sale ScriptedSale) {
	v.register.StartSale()
	for _, item := range sale.Items {
		found, err := v.register.RegisterItem(item.Identifier, item.Quantity)
		if err != nil {
			v.errors.DisplayErrorMessage(userMessage(err))
			continue
		}
		record, _ := v.register.CurrentSale()
		fmt.Fprintf(v.out, "Added %d x %s (%s), price %s, VAT %s%%\n",
			item.Quantity, found.Description, found.Identifier, found.UnitPrice.Display(),
			found.VATRate.Shift(2).String())
		fmt.Fprintf(v.out, "Running total incl. VAT: %s\n", record.GrossTotal.Display())
	}

	customerId := sale.CustomerId
	if customerId != "" {
		if v.register.IsEligibleForDiscount(customerId) {
			fmt.Fprintf(v.out, "Customer %s is eligible for a discount\n", customerId)
		} else {
			fmt.Fprintf(v.out, "Customer %s is not eligible for a discount\n", customerId)
			customerId = ""
		}
	}

	change, err := v.register.Pay(sale.Tendered, customerId)
	if err != nil {
		v.logger.Warn("Payment reported an error", "Error", err)
		v.errors.DisplayErrorMessage(userMessage(err))
	}
	record, _ := v.register.CurrentSale()
	if record.CompletedAt.IsZero() {
		return
	}
	if !record.Discount.IsZero() {
		fmt.Fprintf(v.out, "Discount: %s\n", record.Discount.Display())
	}
	fmt.Fprintf(v.out, "To pay: %s, paid: %s, change: %s\n",
		record.NetTotal.Display(), sale.Tendered.Display(), change.Display())
}

// userMessage keeps internal causes out of what the cashier reads.
func userMessage(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindItemNotFound, apperror.KindInvalidInput, apperror.KindIllegalState:
		return err.Error()
	default:
		return "The operation could not be completed, please try again."
	}
}
