// Package revenue keeps the running revenue of the register and shows it after
// every completed sale.
package revenue

import (
	"pos-register/pkg/model"

	"go.temporal.io/sdk/log"
)

// Display shows the running revenue. A display that fails to show a total gets
// the error back through HandleError.
type Display interface {
	ShowTotalRevenue(total model.Amount) error
	HandleError(err error)
}

// Tracker is a sale observer. Failures to show the revenue stay inside the
// tracker so that they never reach the sale.
type Tracker struct {
	total   model.TotalAmount
	display Display
	logger  log.Logger
}

var _ model.SaleObserver = &Tracker{}

func NewTracker(display Display, logger log.Logger) *Tracker {
	return &Tracker{
		total:   model.NewTotalAmount(),
		display: display,
		logger:  logger,
	}
}

func (t *Tracker) OnSaleCompleted(netTotal model.Amount) error {
	t.total.Add(netTotal)
	if !t.total.Ok {
		t.OnError(model.AmountOverflowError{Operation: "total revenue"})
		return nil
	}
	t.logger.Debug("Total revenue updated", "Sale", netTotal, "Total", t.total.Total)
	if err := t.display.ShowTotalRevenue(t.total.Total); err != nil {
		t.OnError(err)
	}
	return nil
}

func (t *Tracker) OnError(err error) {
	t.logger.Warn("Could not show total revenue", "Error", err)
	t.display.HandleError(err)
}

// TotalRevenue is not Ok once the running total has overflowed.
func (t *Tracker) TotalRevenue() model.TotalAmount {
	return t.total
}
