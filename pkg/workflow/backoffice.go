package workflow

import (
	"time"

	"pos-register/pkg/activity"
	"pos-register/pkg/model"

	"go.temporal.io/sdk/log"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const BackOfficeQueueDefault = "pos-backoffice"

const (
	updateInventoryWorkflowIdPrefix  = "update-inventory-"
	updateAccountingWorkflowIdPrefix = "update-accounting-"
)

type EmptySaleIdError struct{}

func (e EmptySaleIdError) Error() string {
	return "sale record has no id"
}

// UpdateInventoryWorkflowId is unique per sale, so a sale can only be taken off
// the stock once.
func UpdateInventoryWorkflowId(saleId string) string {
	return updateInventoryWorkflowIdPrefix + saleId
}

func UpdateAccountingWorkflowId(saleId string) string {
	return updateAccountingWorkflowIdPrefix + saleId
}

func defaultActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: activity.DefaultActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        10,
			NonRetryableErrorTypes: []string{activity.ItemNotFoundErrorType},
		},
	}
}

type backOfficeUpdate struct {
	record model.SaleRecord
	logger log.Logger
}

func newBackOfficeUpdate(ctx workflow.Context, record model.SaleRecord) (*backOfficeUpdate, error) {
	update := &backOfficeUpdate{
		record: record,
		logger: workflow.GetLogger(ctx),
	}
	if record.Id == "" {
		return update, EmptySaleIdError{}
	}
	return update, nil
}

// The activity methods are resolved by name, so a nil receiver is enough here.
var backOffice *activity.BackOffice

func (update *backOfficeUpdate) executeSyncActivity(ctx workflow.Context, activityFn interface{}) (uint64, error) {
	ctxWithOptions := workflow.WithActivityOptions(ctx, defaultActivityOptions())
	var updateCount uint64
	e := workflow.ExecuteActivity(ctxWithOptions, activityFn, update.record).Get(ctxWithOptions, &updateCount)
	return updateCount, e
}

func UpdateInventoryWorkflow(ctx workflow.Context, record model.SaleRecord) (uint64, error) {
	update, e := newBackOfficeUpdate(ctx, record)
	if e != nil {
		return 0, e
	}
	update.logger.Info("Inventory update workflow started", "SaleId", record.Id, "Lines", len(record.Lines))
	updateCount, e := update.executeSyncActivity(ctx, backOffice.UpdateInventoryActivity)
	if e != nil {
		update.logger.Error("Inventory update failed", "SaleId", record.Id, "Error", e)
		return 0, e
	}
	update.logger.Info("Inventory updated", "SaleId", record.Id, "Updated", updateCount)
	return updateCount, nil
}

func UpdateAccountingWorkflow(ctx workflow.Context, record model.SaleRecord) (uint64, error) {
	update, e := newBackOfficeUpdate(ctx, record)
	if e != nil {
		return 0, e
	}
	update.logger.Info("Accounting update workflow started", "SaleId", record.Id, "NetTotal", record.NetTotal)
	updateCount, e := update.executeSyncActivity(ctx, backOffice.UpdateAccountingActivity)
	if e != nil {
		update.logger.Error("Accounting update failed", "SaleId", record.Id, "Error", e)
		return 0, e
	}
	update.logger.Info("Accounting updated", "SaleId", record.Id, "Updated", updateCount)
	return updateCount, nil
}
