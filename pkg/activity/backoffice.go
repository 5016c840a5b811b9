package activity

import (
	"context"
	"time"

	"pos-register/pkg/apperror"
	"pos-register/pkg/db"
	"pos-register/pkg/model"

	temporalactivity "go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

const DefaultActivityTimeout = 10 * time.Second

const ItemNotFoundErrorType = "ItemNotFound"

// BackOffice exposes the inventory and accounting databases as activities.
// Register a *BackOffice with a worker; its methods become the activities.
type BackOffice struct {
	Inventory  db.InventoryDatabase
	Accounting db.AccountingDatabase
}

// UpdateInventoryActivity takes the sold quantities off the stock. A sale that
// names an unknown item is not retried.
func (b *BackOffice) UpdateInventoryActivity(ctx context.Context, record model.SaleRecord) (uint64, error) {
	logger := temporalactivity.GetLogger(ctx)
	logger.Info("Updating inventory", "SaleId", record.Id, "Lines", len(record.Lines))
	updated, err := b.Inventory.UpdateInventory(record)
	if apperror.KindOf(err) == apperror.KindItemNotFound {
		return 0, temporal.NewNonRetryableApplicationError(err.Error(), ItemNotFoundErrorType, err)
	}
	return updated, err
}

// UpdateAccountingActivity records the sale once; a repeated attempt updates nothing.
func (b *BackOffice) UpdateAccountingActivity(ctx context.Context, record model.SaleRecord) (uint64, error) {
	logger := temporalactivity.GetLogger(ctx)
	logger.Info("Updating accounting", "SaleId", record.Id, "NetTotal", record.NetTotal)
	return b.Accounting.UpdateAccounting(record)
}
