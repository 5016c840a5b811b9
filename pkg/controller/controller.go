// Package controller runs one sale at a time: it looks items up, adds them to
// the sale, settles payment and turns every failure into an apperror.
package controller

import (
	"fmt"

	"pos-register/pkg/apperror"
	"pos-register/pkg/discount"
	"pos-register/pkg/errlog"
	"pos-register/pkg/logging"
	"pos-register/pkg/model"

	"github.com/pkg/errors"
	"go.temporal.io/sdk/log"
)

type State int

const (
	NoSale State = iota
	InProgress
	Settled
)

func (s State) String() string {
	switch s {
	case NoSale:
		return "no_sale"
	case InProgress:
		return "in_progress"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ItemCatalog finds item details by identifier. Lookup failures are expected
// to carry an apperror kind: KindItemNotFound or KindSystemUnavailable.
type ItemCatalog interface {
	FindItem(identifier string) (model.ItemDTO, error)
}

type DiscountPolicy interface {
	model.DiscountResolver
	IsEligibleForDiscount(customerId string) bool
}

// Collaborators holds what a Controller is wired to. Catalog and ErrorLog are
// required; BackOffice and Printer may be nil.
type Collaborators struct {
	Catalog    ItemCatalog
	BackOffice model.BackOffice
	Printer    model.ReceiptPrinter
	Discounts  DiscountPolicy
	Register   *model.CashRegister
	SaleIds    model.SaleIdGenerator
	ErrorLog   errlog.ExceptionLogger
	Logger     log.Logger
}

// Controller is the boundary where failures are logged, exactly once, and
// translated. It is not safe for concurrent use.
type Controller struct {
	Collaborators

	state     State
	sale      *model.Sale
	observers []model.SaleObserver
}

var _ DiscountPolicy = &discount.DiscountHandler{}

func New(collaborators Collaborators) *Controller {
	if collaborators.Register == nil {
		collaborators.Register = model.NewCashRegister()
	}
	if collaborators.SaleIds == nil {
		collaborators.SaleIds = &model.UuidSaleIdGenerator{}
	}
	if collaborators.Discounts == nil {
		collaborators.Discounts = discount.NewDiscountHandler(nil)
	}
	if collaborators.Logger == nil {
		collaborators.Logger = logging.NewNopLogger()
	}
	return &Controller{Collaborators: collaborators}
}

// AddSaleObserver takes effect from the next StartSale.
func (c *Controller) AddSaleObserver(observer model.SaleObserver) {
	c.observers = append(c.observers, observer)
}

// StartSale discards the previous sale, if any, and starts an empty one.
func (c *Controller) StartSale() {
	c.sale = model.NewSale(c.SaleIds.New(), c.BackOffice, c.Printer)
	c.sale.AddSaleObservers(c.observers)
	c.state = InProgress
	c.Logger.Info("Sale started", "SaleId", c.sale.Id(), "Observers", len(c.observers))
}

// RegisterItem adds quantity of the identified item to the sale and returns the
// item's details. On error the sale is unchanged.
func (c *Controller) RegisterItem(identifier string, quantity int) (item model.ItemDTO, e error) {
	if c.state != InProgress {
		return model.ItemDTO{}, c.fail(apperror.NewIllegalStateError(
			fmt.Sprintf("cannot register item %q: no sale in progress", identifier),
			errors.Errorf("controller state is %s", c.state)))
	}
	defer func() {
		if r := recover(); r != nil {
			item = model.ItemDTO{}
			e = c.fail(apperror.NewOperationFailedError(
				fmt.Sprintf("could not register item %q", identifier),
				errors.Errorf("panic: %v", r)))
		}
	}()

	found, err := c.Catalog.FindItem(identifier)
	if err != nil {
		return model.ItemDTO{}, c.fail(translateLookupError(identifier, err))
	}
	if err := c.sale.AddItem(found, quantity); err != nil {
		return model.ItemDTO{}, c.fail(translateSaleError(fmt.Sprintf("could not register item %q", identifier), err))
	}
	c.Logger.Info("Item registered", "SaleId", c.sale.Id(), "Item", identifier, "Quantity", quantity, "GrossTotal", c.sale.GrossTotal())
	return found, nil
}

func translateLookupError(identifier string, err error) error {
	message := fmt.Sprintf("could not register item %q", identifier)
	switch apperror.KindOf(err) {
	case apperror.KindItemNotFound:
		return err
	case apperror.KindSystemUnavailable:
		return apperror.NewOperationFailedError(message, err)
	default:
		return apperror.NewOperationFailedError(message, errors.WithStack(err))
	}
}

func translateSaleError(message string, err error) error {
	var quantityErr model.InvalidQuantityError
	var paymentErr model.InsufficientPaymentError
	switch {
	case errors.Is(err, model.ErrSaleCompleted):
		return apperror.NewIllegalStateError(message, errors.WithStack(err))
	case errors.As(err, &quantityErr), errors.As(err, &paymentErr):
		return apperror.NewInvalidInputError(message, errors.WithStack(err))
	default:
		return apperror.NewOperationFailedError(message, errors.WithStack(err))
	}
}

// Pay settles the sale in cash and returns the change. An empty customerId pays
// without discount.
//
// When a sale observer fails the sale is settled anyway: the change is returned
// together with an OperationFailed error.
func (c *Controller) Pay(tendered model.Amount, customerId string) (model.Amount, error) {
	switch c.state {
	case NoSale:
		return model.Amount{}, c.fail(apperror.NewIllegalStateError("cannot pay: no sale in progress", nil))
	case Settled:
		return model.Amount{}, c.fail(apperror.NewIllegalStateError(
			fmt.Sprintf("cannot pay: sale %s is already paid", c.sale.Id()), nil))
	}

	var change model.Amount
	var err error
	if customerId == "" {
		change, err = c.sale.PayWithoutDiscount(tendered, c.Register)
	} else {
		change, err = c.sale.PayWithDiscount(tendered, customerId, c.Discounts, c.Register)
	}
	if c.sale.IsCompleted() {
		c.state = Settled
		c.Logger.Info("Sale paid", "SaleId", c.sale.Id(), "NetTotal", c.sale.CurrentNetTotal(), "Change", change)
	}
	if err != nil {
		message := fmt.Sprintf("could not pay sale %s", c.sale.Id())
		var observerErr model.ObserverError
		if errors.As(err, &observerErr) {
			return change, c.fail(apperror.NewOperationFailedError(message, errors.WithStack(err)))
		}
		return model.Amount{}, c.fail(translateSaleError(message, err))
	}
	return change, nil
}

func (c *Controller) IsEligibleForDiscount(customerId string) bool {
	return c.Discounts.IsEligibleForDiscount(customerId)
}

func (c *Controller) State() State {
	return c.state
}

// CurrentSale returns a snapshot of the current or last settled sale.
func (c *Controller) CurrentSale() (model.SaleRecord, bool) {
	if c.sale == nil {
		return model.SaleRecord{}, false
	}
	return c.sale.Record(), true
}

func (c *Controller) RegisterBalance() model.Amount {
	return c.Register.Balance()
}

func (c *Controller) fail(err error) error {
	c.Logger.Warn("Operation failed", "Kind", apperror.KindOf(err).String(), "Error", err)
	c.ErrorLog.LogException(err)
	return err
}
