package db

import (
	"database/sql"
	"time"

	"pos-register/pkg/apperror"
	"pos-register/pkg/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var schema = []string{`
	CREATE TABLE IF NOT EXISTS Item (
		Id          TEXT PRIMARY KEY,
		Description TEXT NOT NULL,
		UnitPrice   INTEGER NOT NULL,
		VatRate     TEXT NOT NULL,
		Stock       INTEGER NOT NULL DEFAULT 0
	);`, `
	CREATE TABLE IF NOT EXISTS AccountingEntry (
		SaleId      TEXT PRIMARY KEY,
		CompletedAt TEXT NOT NULL,
		GrossTotal  INTEGER NOT NULL,
		TotalVat    TEXT NOT NULL,
		Discount    INTEGER NOT NULL,
		NetTotal    INTEGER NOT NULL
	);`,
}

// OpenSqlite opens the database at dsn and creates the tables if needed. A
// single connection is kept so that ":memory:" databases survive between calls.
func OpenSqlite(dsn string) (*sql.DB, error) {
	sqlDb, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	sqlDb.SetMaxOpenConns(1)
	sqlDb.SetMaxIdleConns(1)
	sqlDb.SetConnMaxLifetime(0)

	for _, statement := range schema {
		if _, err := sqlDb.Exec(statement); err != nil {
			_ = sqlDb.Close()
			return nil, errors.Wrap(err, "failed to apply schema")
		}
	}
	return sqlDb, nil
}

func inventoryUnavailable(err error, what string) error {
	return apperror.NewSystemUnavailableError("inventory", errors.Wrap(err, what))
}

type SqlInventoryDatabase struct {
	sql *sql.DB
}

var _ InventoryDatabase = SqlInventoryDatabase{}

func NewSqlInventoryDatabase(sql *sql.DB) *SqlInventoryDatabase {
	return &SqlInventoryDatabase{
		sql: sql,
	}
}

func (m SqlInventoryDatabase) AddItem(item model.ItemDTO, stock int64) error {
	res, err := m.sql.Exec(`
		INSERT INTO Item (Id, Description, UnitPrice, VatRate, Stock)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (Id) DO NOTHING;
	`, item.Identifier,
		item.Description,
		item.UnitPrice.Number,
		item.VATRate.String(),
		stock)
	if err != nil {
		return inventoryUnavailable(err, "insert item")
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return inventoryUnavailable(err, "insert item")
	}
	if rowsAffected == 0 {
		return ErrItemAlreadyExists
	}
	return nil
}

func (m SqlInventoryDatabase) FindItem(identifier string) (model.ItemDTO, error) {
	var (
		description string
		unitPrice   int64
		vatRate     string
	)
	err := m.sql.QueryRow(`
		SELECT Description, UnitPrice, VatRate
		FROM Item
		WHERE Id = ?;
	`, identifier).Scan(&description, &unitPrice, &vatRate)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ItemDTO{}, apperror.NewItemNotFoundError(identifier)
	}
	if err != nil {
		return model.ItemDTO{}, inventoryUnavailable(err, "query item")
	}
	rate, err := decimal.NewFromString(vatRate)
	if err != nil {
		return model.ItemDTO{}, errors.Wrapf(err, "corrupt VAT rate for item %q", identifier)
	}
	return model.NewItemDTO(identifier, description, model.NewAmount(unitPrice), rate)
}

func (m SqlInventoryDatabase) UpdateInventory(record model.SaleRecord) (uint64, error) {
	tx, err := m.sql.Begin()
	if err != nil {
		return 0, inventoryUnavailable(err, "begin inventory update")
	}
	defer tx.Rollback()
	var updated uint64
	for _, line := range record.Lines {
		res, err := tx.Exec(`
			UPDATE Item
			SET Stock = Stock - ?
			WHERE Id = ?;
		`, line.Quantity, line.Item.Identifier)
		if err != nil {
			return 0, inventoryUnavailable(err, "update stock")
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return 0, inventoryUnavailable(err, "update stock")
		}
		if rowsAffected == 0 {
			return 0, apperror.NewItemNotFoundError(line.Item.Identifier)
		}
		updated += uint64(rowsAffected)
	}
	if err := tx.Commit(); err != nil {
		return 0, inventoryUnavailable(err, "commit inventory update")
	}
	return updated, nil
}

func (m SqlInventoryDatabase) GetStock(identifier string) (int64, error) {
	var stock int64
	err := m.sql.QueryRow(`SELECT Stock FROM Item WHERE Id = ?;`, identifier).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperror.NewItemNotFoundError(identifier)
	}
	if err != nil {
		return 0, inventoryUnavailable(err, "query stock")
	}
	return stock, nil
}

type SqlAccountingDatabase struct {
	sql *sql.DB
}

var _ AccountingDatabase = SqlAccountingDatabase{}

func NewSqlAccountingDatabase(sql *sql.DB) *SqlAccountingDatabase {
	return &SqlAccountingDatabase{
		sql: sql,
	}
}

func (m SqlAccountingDatabase) UpdateAccounting(record model.SaleRecord) (uint64, error) {
	res, err := m.sql.Exec(`
		INSERT INTO AccountingEntry (SaleId, CompletedAt, GrossTotal, TotalVat, Discount, NetTotal)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (SaleId) DO NOTHING;
	`, record.Id,
		record.CompletedAt.UTC().Format(time.RFC3339Nano),
		record.GrossTotal.Number,
		record.TotalVAT.String(),
		record.Discount.Number,
		record.NetTotal.Number)
	if err != nil {
		return 0, apperror.NewSystemUnavailableError("accounting", errors.Wrap(err, "insert entry"))
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.NewSystemUnavailableError("accounting", errors.Wrap(err, "insert entry"))
	}
	return uint64(rowsAffected), nil
}

func (m SqlAccountingDatabase) GetEntry(saleId string) (AccountingEntry, error) {
	var (
		completedAt string
		grossTotal  int64
		totalVat    string
		discount    int64
		netTotal    int64
	)
	err := m.sql.QueryRow(`
		SELECT CompletedAt, GrossTotal, TotalVat, Discount, NetTotal
		FROM AccountingEntry
		WHERE SaleId = ?;
	`, saleId).Scan(&completedAt, &grossTotal, &totalVat, &discount, &netTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return AccountingEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return AccountingEntry{}, apperror.NewSystemUnavailableError("accounting", errors.Wrap(err, "query entry"))
	}
	completed, err := time.Parse(time.RFC3339Nano, completedAt)
	if err != nil {
		return AccountingEntry{}, errors.Wrapf(err, "corrupt completion time for sale %q", saleId)
	}
	vat, err := decimal.NewFromString(totalVat)
	if err != nil {
		return AccountingEntry{}, errors.Wrapf(err, "corrupt VAT for sale %q", saleId)
	}
	return AccountingEntry{
		SaleId:      saleId,
		CompletedAt: completed,
		GrossTotal:  model.NewAmount(grossTotal),
		TotalVAT:    vat,
		Discount:    model.NewAmount(discount),
		NetTotal:    model.NewAmount(netTotal),
	}, nil
}
