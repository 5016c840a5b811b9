package receipt

import (
	"io"

	"pos-register/pkg/errlog"
	"pos-register/pkg/model"

	"github.com/pkg/errors"
)

// Printer writes receipts to an io.Writer, typically stdout or a printer device.
// Write failures go to the exception log.
type Printer struct {
	out       io.Writer
	storeName string
	width     int
	errorLog  errlog.ExceptionLogger
}

var _ model.ReceiptPrinter = &Printer{}

func NewPrinter(out io.Writer, storeName string, width int, errorLog errlog.ExceptionLogger) *Printer {
	return &Printer{out: out, storeName: storeName, width: width, errorLog: errorLog}
}

func (p *Printer) PrintReceipt(record model.SaleRecord, payment model.CashPayment) {
	receipt := NewReceipt(p.storeName, record, payment)
	if _, err := p.out.Write(receipt.Render(p.width)); err != nil {
		p.errorLog.LogException(errors.Wrapf(err, "failed to print receipt for sale %s", record.Id))
	}
}
