// Package backoffice forwards completed sales to the inventory and accounting
// systems, either directly or through Temporal workflows.
package backoffice

import (
	"pos-register/pkg/db"
	"pos-register/pkg/errlog"
	"pos-register/pkg/model"

	"github.com/pkg/errors"
	"go.temporal.io/sdk/log"
)

// Direct updates the databases synchronously. Failures are logged and go no further.
type Direct struct {
	inventory  db.InventoryDatabase
	accounting db.AccountingDatabase
	errorLog   errlog.ExceptionLogger
	logger     log.Logger
}

var _ model.BackOffice = &Direct{}

func NewDirect(inventory db.InventoryDatabase, accounting db.AccountingDatabase, errorLog errlog.ExceptionLogger, logger log.Logger) *Direct {
	return &Direct{
		inventory:  inventory,
		accounting: accounting,
		errorLog:   errorLog,
		logger:     logger,
	}
}

func (d *Direct) UpdateInventory(record model.SaleRecord) {
	updated, err := d.inventory.UpdateInventory(record)
	if err != nil {
		d.logger.Warn("Inventory update failed", "SaleId", record.Id, "Error", err)
		d.errorLog.LogException(errors.WithMessagef(err, "failed to update inventory for sale %s", record.Id))
		return
	}
	d.logger.Info("Inventory updated", "SaleId", record.Id, "Updated", updated)
}

func (d *Direct) UpdateAccounting(record model.SaleRecord) {
	updated, err := d.accounting.UpdateAccounting(record)
	if err != nil {
		d.logger.Warn("Accounting update failed", "SaleId", record.Id, "Error", err)
		d.errorLog.LogException(errors.WithMessagef(err, "failed to update accounting for sale %s", record.Id))
		return
	}
	d.logger.Info("Accounting updated", "SaleId", record.Id, "Updated", updated)
}
