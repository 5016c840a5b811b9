package model

import (
	"errors"
	"time"

	"github.com/JohnCGriffin/overflow"
	"github.com/shopspring/decimal"
)

// ErrSaleCompleted is returned by every mutating operation once a sale has been paid.
var ErrSaleCompleted = errors.New("sale is already completed")

// BackOffice receives finalized sales. Both hooks are fire-and-forget: an
// implementation owns whatever failure handling it needs.
type BackOffice interface {
	UpdateInventory(record SaleRecord)
	UpdateAccounting(record SaleRecord)
}

type ReceiptPrinter interface {
	PrintReceipt(record SaleRecord, payment CashPayment)
}

type DiscountResolver interface {
	DiscountAmount(sale *Sale, customerId string) Amount
}

// SaleRecord is an immutable snapshot of a sale.
type SaleRecord struct {
	Id          string
	StartTime   time.Time
	CompletedAt time.Time
	Lines       []LineItem
	GrossTotal  Amount
	TotalVAT    decimal.Decimal
	Discount    Amount
	NetTotal    Amount
}

type Sale struct {
	id          string
	startTime   time.Time
	completedAt time.Time
	lines       []LineItem
	grossTotal  Amount
	totalVAT    decimal.Decimal
	discount    Amount
	completed   bool
	backOffice  BackOffice
	printer     ReceiptPrinter
	observers   SaleObservers
}

// NewSale starts an empty sale. backOffice and printer may be nil, in which case
// the corresponding settlement step is skipped.
func NewSale(id string, backOffice BackOffice, printer ReceiptPrinter) *Sale {
	return &Sale{
		id:         id,
		startTime:  time.Now(),
		lines:      make([]LineItem, 0),
		totalVAT:   decimal.Zero,
		backOffice: backOffice,
		printer:    printer,
	}
}

func (s *Sale) AddSaleObserver(observer SaleObserver) {
	s.observers = append(s.observers, observer)
}

func (s *Sale) AddSaleObservers(observers []SaleObserver) {
	s.observers = append(s.observers, observers...)
}

// AddItem merges quantity into the line with the same identifier, or appends a
// new line, then recomputes the totals from scratch. On error the sale is unchanged.
func (s *Sale) AddItem(item ItemDTO, quantity int) error {
	if s.completed {
		return ErrSaleCompleted
	}
	if quantity < 1 {
		return InvalidQuantityError{quantity}
	}
	lines := s.GetLinesCopy()
	if i := indexOfLine(lines, item.Identifier); i >= 0 {
		merged, ok := overflow.Add(lines[i].Quantity, quantity)
		if !ok {
			return AmountOverflowError{"quantity of " + item.Identifier}
		}
		lines[i].Quantity = merged
	} else {
		lines = append(lines, LineItem{Item: item, Quantity: quantity})
	}
	gross, vat, err := computeTotals(lines)
	if err != nil {
		return err
	}
	s.lines, s.grossTotal, s.totalVAT = lines, gross, vat
	return nil
}

func indexOfLine(lines []LineItem, identifier string) int {
	for i, line := range lines {
		if line.Item.Identifier == identifier {
			return i
		}
	}
	return -1
}

// computeTotals returns the price including VAT rounded half-up to a minor unit,
// and the unrounded VAT.
func computeTotals(lines []LineItem) (Amount, decimal.Decimal, error) {
	priceIncludingVAT := decimal.Zero
	totalVAT := decimal.Zero
	for _, line := range lines {
		net, ok := line.NetPrice()
		if !ok {
			return Amount{}, decimal.Zero, AmountOverflowError{"line total of " + line.Item.Identifier}
		}
		lineVAT := net.Decimal().Mul(line.Item.VATRate)
		priceIncludingVAT = priceIncludingVAT.Add(net.Decimal()).Add(lineVAT)
		totalVAT = totalVAT.Add(lineVAT)
	}
	gross, ok := NewAmountFromDecimal(priceIncludingVAT)
	if !ok {
		return Amount{}, decimal.Zero, AmountOverflowError{"gross total"}
	}
	return gross, totalVAT, nil
}

// CurrentNetTotal is the gross total minus the applied discount.
func (s *Sale) CurrentNetTotal() Amount {
	// discount is clamped to [0, grossTotal], so this cannot overflow
	net, _ := s.grossTotal.Sub(s.discount)
	return net
}

// ApplyDiscount replaces any previously applied discount. The amount is clamped
// to [0, gross total].
func (s *Sale) ApplyDiscount(amount Amount) error {
	if s.completed {
		return ErrSaleCompleted
	}
	switch {
	case amount.IsNegative():
		amount = Amount{}
	case amount.GreaterThan(s.grossTotal):
		amount = s.grossTotal
	}
	s.discount = amount
	return nil
}

// PayWithoutDiscount settles the sale in cash and returns the change. The back
// office and receipt printer are called once, then observers are notified. An
// observer error is returned together with the change: the sale is completed
// regardless.
func (s *Sale) PayWithoutDiscount(tendered Amount, register *CashRegister) (Amount, error) {
	if s.completed {
		return Amount{}, ErrSaleCompleted
	}
	payment, err := NewCashPayment(tendered, s.CurrentNetTotal())
	if err != nil {
		return Amount{}, err
	}
	change, err := register.AddPayment(payment)
	if err != nil {
		return Amount{}, err
	}

	s.completed = true
	s.completedAt = time.Now()
	record := s.Record()
	if s.backOffice != nil {
		s.backOffice.UpdateInventory(record)
		s.backOffice.UpdateAccounting(record)
	}
	if s.printer != nil {
		s.printer.PrintReceipt(record, payment)
	}
	return change, s.observers.NotifySaleCompleted(record.NetTotal)
}

// PayWithDiscount resolves and applies the customer's discount before paying.
// If the payment is rejected, the discount the sale had before is restored.
func (s *Sale) PayWithDiscount(tendered Amount, customerId string, resolver DiscountResolver, register *CashRegister) (Amount, error) {
	if s.completed {
		return Amount{}, ErrSaleCompleted
	}
	previous := s.discount
	if err := s.ApplyDiscount(resolver.DiscountAmount(s, customerId)); err != nil {
		return Amount{}, err
	}
	change, err := s.PayWithoutDiscount(tendered, register)
	if !s.completed {
		s.discount = previous
	}
	return change, err
}

func (s *Sale) Id() string {
	return s.id
}

func (s *Sale) StartTime() time.Time {
	return s.startTime
}

func (s *Sale) GrossTotal() Amount {
	return s.grossTotal
}

func (s *Sale) TotalVAT() decimal.Decimal {
	return s.totalVAT
}

func (s *Sale) Discount() Amount {
	return s.discount
}

func (s *Sale) IsCompleted() bool {
	return s.completed
}

func (s *Sale) GetLinesCopy() []LineItem {
	lines := make([]LineItem, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *Sale) GetLinesCount() int {
	return len(s.lines)
}

// QuantityOf returns 0 for identifiers not in the sale.
func (s *Sale) QuantityOf(identifier string) int {
	if i := indexOfLine(s.lines, identifier); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

func (s *Sale) Record() SaleRecord {
	return SaleRecord{
		Id:          s.id,
		StartTime:   s.startTime,
		CompletedAt: s.completedAt,
		Lines:       s.GetLinesCopy(),
		GrossTotal:  s.grossTotal,
		TotalVAT:    s.totalVAT,
		Discount:    s.discount,
		NetTotal:    s.CurrentNetTotal(),
	}
}
