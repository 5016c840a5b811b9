package backoffice

import (
	"context"
	"errors"
	"testing"
	"time"

	"pos-register/pkg/apperror"
	"pos-register/pkg/db"
	"pos-register/pkg/logging"
	"pos-register/pkg/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

type recordingLogger struct {
	errs []error
}

func (l *recordingLogger) LogException(err error) {
	l.errs = append(l.errs, err)
}

type mockStarter struct {
	mock.Mock
}

func (m *mockStarter) ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflowFn interface{}, args ...interface{}) (client.WorkflowRun, error) {
	ret := m.Called(options, args)
	run, _ := ret.Get(0).(client.WorkflowRun)
	return run, ret.Error(1)
}

func testRecord(t *testing.T, identifier string) model.SaleRecord {
	item, err := model.NewItemDTO(identifier, "Item "+identifier, model.NewAmount(100), decimal.RequireFromString("0.25"))
	require.NoError(t, err)
	return model.SaleRecord{
		Id:          "sale-1",
		CompletedAt: time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC),
		Lines:       []model.LineItem{{Item: item, Quantity: 3}},
		GrossTotal:  model.NewAmount(375),
		TotalVAT:    decimal.NewFromInt(75),
		NetTotal:    model.NewAmount(375),
	}
}

func TestDirectUpdatesDatabases(t *testing.T) {
	// Arrange
	inventory := db.NewInMemoryInventoryDatabase()
	accounting := db.NewInMemoryAccountingDatabase()
	errorLog := &recordingLogger{}
	backOffice := NewDirect(inventory, accounting, errorLog, logging.NewNopLogger())
	record := testRecord(t, "AAA")
	require.NoError(t, inventory.AddItem(record.Lines[0].Item, 5))

	// Act
	backOffice.UpdateInventory(record)
	backOffice.UpdateAccounting(record)

	// Assert
	stock, err := inventory.GetStock("AAA")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stock)
	entry, err := accounting.GetEntry("sale-1")
	require.NoError(t, err)
	assert.Equal(t, model.NewAmount(375), entry.NetTotal)
	assert.Empty(t, errorLog.errs)
}

func TestDirectLogsInventoryFailure(t *testing.T) {
	// Arrange
	errorLog := &recordingLogger{}
	backOffice := NewDirect(db.NewInMemoryInventoryDatabase(), db.NewInMemoryAccountingDatabase(), errorLog, logging.NewNopLogger())

	// Act
	backOffice.UpdateInventory(testRecord(t, "ZZZ"))

	// Assert
	require.Len(t, errorLog.errs, 1)
	assert.ErrorIs(t, errorLog.errs[0], apperror.ErrItemNotFound)
	assert.Contains(t, errorLog.errs[0].Error(), "failed to update inventory for sale sale-1")
}

func TestTemporalStartsOneWorkflowPerHook(t *testing.T) {
	// Arrange
	starter := &mockStarter{}
	errorLog := &recordingLogger{}
	backOffice := NewTemporal(starter, "register-1", errorLog, logging.NewNopLogger())
	record := testRecord(t, "AAA")
	withId := func(id string) interface{} {
		return mock.MatchedBy(func(options client.StartWorkflowOptions) bool {
			return options.ID == id && options.TaskQueue == "register-1"
		})
	}
	starter.On("ExecuteWorkflow", withId("update-inventory-sale-1"), []interface{}{record}).Return(nil, nil).Once()
	starter.On("ExecuteWorkflow", withId("update-accounting-sale-1"), []interface{}{record}).Return(nil, nil).Once()

	// Act
	backOffice.UpdateInventory(record)
	backOffice.UpdateAccounting(record)

	// Assert
	starter.AssertExpectations(t)
	assert.Empty(t, errorLog.errs)
}

func TestTemporalLogsStartFailure(t *testing.T) {
	// Arrange
	starter := &mockStarter{}
	errorLog := &recordingLogger{}
	backOffice := NewTemporal(starter, "", errorLog, logging.NewNopLogger())
	starter.On("ExecuteWorkflow", mock.Anything, mock.Anything).Return(nil, errors.New("frontend unreachable"))

	// Act
	backOffice.UpdateAccounting(testRecord(t, "AAA"))

	// Assert
	require.Len(t, errorLog.errs, 1)
	assert.Contains(t, errorLog.errs[0].Error(), "failed to start workflow update-accounting-sale-1: frontend unreachable")
	starter.AssertCalled(t, "ExecuteWorkflow",
		mock.MatchedBy(func(options client.StartWorkflowOptions) bool {
			return options.TaskQueue == "pos-backoffice"
		}), mock.Anything)
}
