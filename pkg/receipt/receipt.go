// Package receipt turns a paid sale into a printable text receipt.
package receipt

import (
	"strconv"
	"time"

	"pos-register/pkg/model"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02 15:04:05"

// Item is a single line on a receipt. Prices on item lines exclude VAT.
type Item struct {
	Description string
	Quantity    int
	UnitPrice   model.Amount
	NetTotal    model.Amount
}

// Receipt is composed from a sale record at print time; it is never stored.
type Receipt struct {
	StoreName  string
	SaleId     string
	Date       time.Time
	Items      []Item
	GrossTotal model.Amount
	VAT        decimal.Decimal
	Discount   model.Amount
	NetTotal   model.Amount
	Paid       model.Amount
	Change     model.Amount
}

func NewReceipt(storeName string, record model.SaleRecord, payment model.CashPayment) Receipt {
	items := make([]Item, 0, len(record.Lines))
	for _, line := range record.Lines {
		total, _ := line.NetPrice()
		items = append(items, Item{
			Description: line.Item.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.Item.UnitPrice,
			NetTotal:    total,
		})
	}
	// NewCashPayment guarantees tendered >= due
	change, _ := payment.Change()
	return Receipt{
		StoreName:  storeName,
		SaleId:     record.Id,
		Date:       record.StartTime,
		Items:      items,
		GrossTotal: record.GrossTotal,
		VAT:        record.TotalVAT,
		Discount:   record.Discount,
		NetTotal:   record.NetTotal,
		Paid:       payment.Tendered,
		Change:     change,
	}
}

// displayVAT shows an unrounded minor-unit VAT amount in major units.
func displayVAT(vat decimal.Decimal) string {
	return vat.Shift(-model.DisplayDigits).StringFixed(model.DisplayDigits)
}

// Render lays the receipt out on a document of the given width.
func (r Receipt) Render(width int) []byte {
	doc := NewDocument(width)
	doc.Divider('=').
		Center(r.StoreName).
		Center(r.Date.Format(DateLayout)).
		Text("Sale " + r.SaleId).
		Divider('-').
		Row("Item", "excl. VAT")
	for _, item := range r.Items {
		doc.Text(item.Description).
			Row(strconv.Itoa(item.Quantity)+" x "+item.UnitPrice.Display(), item.NetTotal.Display())
	}
	doc.Divider('-').
		Row("Total incl. VAT", r.GrossTotal.Display()).
		Row("VAT", displayVAT(r.VAT))
	if !r.Discount.IsZero() {
		doc.Row("Discount", "-"+r.Discount.Display())
	}
	doc.Row("To pay", r.NetTotal.Display()).
		Row("Paid (cash)", r.Paid.Display()).
		Row("Change", r.Change.Display()).
		Divider('=')
	return doc.Bytes()
}
