package backoffice

import (
	"context"
	"time"

	"pos-register/pkg/errlog"
	"pos-register/pkg/model"
	"pos-register/pkg/workflow"

	"github.com/pkg/errors"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/log"
)

const DefaultStartTimeout = 5 * time.Second

// WorkflowStarter is the part of client.Client the adapter needs.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflowFn interface{}, args ...interface{}) (client.WorkflowRun, error)
}

var _ WorkflowStarter = client.Client(nil)

// Temporal starts one workflow per update and does not wait for it. Workflow ids
// come from the sale id, so a sale that was already dispatched is rejected.
type Temporal struct {
	starter      WorkflowStarter
	taskQueue    string
	startTimeout time.Duration
	errorLog     errlog.ExceptionLogger
	logger       log.Logger
}

var _ model.BackOffice = &Temporal{}

func NewTemporal(starter WorkflowStarter, taskQueue string, errorLog errlog.ExceptionLogger, logger log.Logger) *Temporal {
	if taskQueue == "" {
		taskQueue = workflow.BackOfficeQueueDefault
	}
	return &Temporal{
		starter:      starter,
		taskQueue:    taskQueue,
		startTimeout: DefaultStartTimeout,
		errorLog:     errorLog,
		logger:       logger,
	}
}

func (t *Temporal) UpdateInventory(record model.SaleRecord) {
	t.start(workflow.UpdateInventoryWorkflowId(record.Id), workflow.UpdateInventoryWorkflow, record)
}

func (t *Temporal) UpdateAccounting(record model.SaleRecord) {
	t.start(workflow.UpdateAccountingWorkflowId(record.Id), workflow.UpdateAccountingWorkflow, record)
}

func (t *Temporal) start(workflowId string, workflowFn interface{}, record model.SaleRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), t.startTimeout)
	defer cancel()
	options := client.StartWorkflowOptions{
		ID:                    workflowId,
		TaskQueue:             t.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	if _, err := t.starter.ExecuteWorkflow(ctx, options, workflowFn, record); err != nil {
		t.logger.Warn("Could not start back-office workflow", "WorkflowId", workflowId, "Error", err)
		t.errorLog.LogException(errors.Wrapf(err, "failed to start workflow %s", workflowId))
		return
	}
	t.logger.Info("Back-office workflow started", "WorkflowId", workflowId, "TaskQueue", t.taskQueue)
}
