package db

import (
	"errors"
	"time"

	"pos-register/pkg/model"

	"github.com/shopspring/decimal"
)

// InventoryDatabase is the inventory system items are looked up in.
//
// FindItem fails with an apperror of kind ItemNotFound when the identifier is
// unknown, or SystemUnavailable when the database cannot answer.
type InventoryDatabase interface {
	FindItem(identifier string) (model.ItemDTO, error)
	UpdateInventory(record model.SaleRecord) (uint64, error)
	GetStock(identifier string) (int64, error)
}

// AccountingDatabase records one entry per completed sale. Recording the same
// sale twice is a no-op that reports 0 rows.
type AccountingDatabase interface {
	UpdateAccounting(record model.SaleRecord) (uint64, error)
	GetEntry(saleId string) (AccountingEntry, error)
}

type AccountingEntry struct {
	SaleId      string
	CompletedAt time.Time
	GrossTotal  model.Amount
	TotalVAT    decimal.Decimal
	Discount    model.Amount
	NetTotal    model.Amount
}

func NewAccountingEntry(record model.SaleRecord) AccountingEntry {
	return AccountingEntry{
		SaleId:      record.Id,
		CompletedAt: record.CompletedAt,
		GrossTotal:  record.GrossTotal,
		TotalVAT:    record.TotalVAT,
		Discount:    record.Discount,
		NetTotal:    record.NetTotal,
	}
}

// ErrItemAlreadyExists is returned when seeding an item twice.
var ErrItemAlreadyExists = errors.New("item already exists")

// ErrEntryNotFound is returned when no accounting entry exists for a sale.
var ErrEntryNotFound = errors.New("accounting entry not found")
