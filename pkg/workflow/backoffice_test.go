package workflow_test

import (
	"errors"
	"testing"
	"time"

	"pos-register/pkg/activity"
	"pos-register/pkg/db"
	"pos-register/pkg/model"
	"pos-register/pkg/workflow"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

type BackOfficeWorkflowUnitTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env        *testsuite.TestWorkflowEnvironment
	inventory  *db.InMemoryInventoryDatabase
	accounting *db.InMemoryAccountingDatabase
}

func TestBackOfficeWorkflowUnitTestSuite(t *testing.T) {
	suite.Run(t, new(BackOfficeWorkflowUnitTestSuite))
}

func (s *BackOfficeWorkflowUnitTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.inventory = db.NewInMemoryInventoryDatabase()
	s.accounting = db.NewInMemoryAccountingDatabase()
	s.env.RegisterActivity(&activity.BackOffice{
		Inventory:  s.inventory,
		Accounting: s.accounting,
	})
}

func (s *BackOfficeWorkflowUnitTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func (s *BackOfficeWorkflowUnitTestSuite) defaultRecord() model.SaleRecord {
	item, err := model.NewItemDTO("AAA", "Oat milk", model.NewAmount(100), decimal.RequireFromString("0.25"))
	s.Require().NoError(err)
	s.Require().NoError(s.inventory.AddItem(item, 10))
	return model.SaleRecord{
		Id:          "0f8fad5b-d9cb-469f-a165-70867728950e",
		StartTime:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC),
		Lines:       []model.LineItem{{Item: item, Quantity: 3}},
		GrossTotal:  model.NewAmount(375),
		TotalVAT:    decimal.NewFromInt(75),
		Discount:    model.NewAmount(38),
		NetTotal:    model.NewAmount(337),
	}
}

func (s *BackOfficeWorkflowUnitTestSuite) Test_UpdateInventory_DecrementsStock() {
	// Arrange
	record := s.defaultRecord()

	// Act
	s.env.ExecuteWorkflow(workflow.UpdateInventoryWorkflow, record)

	// Assert
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	var updateCount uint64
	s.NoError(s.env.GetWorkflowResult(&updateCount))
	s.Equal(uint64(1), updateCount)
	stock, err := s.inventory.GetStock("AAA")
	s.NoError(err)
	s.Equal(int64(7), stock)
}

func (s *BackOfficeWorkflowUnitTestSuite) Test_UpdateInventory_UnknownItem_NotRetried() {
	// Arrange
	record := s.defaultRecord()
	unknown, err := model.NewItemDTO("ZZZ", "Ghost", model.NewAmount(100), decimal.Zero)
	s.Require().NoError(err)
	record.Lines = append(record.Lines, model.LineItem{Item: unknown, Quantity: 1})

	// Act
	s.env.ExecuteWorkflow(workflow.UpdateInventoryWorkflow, record)

	// Assert
	s.True(s.env.IsWorkflowCompleted())
	err = s.env.GetWorkflowError()
	s.Error(err)
	var applicationErr *temporal.ApplicationError
	s.True(errors.As(err, &applicationErr))
	s.Equal(activity.ItemNotFoundErrorType, applicationErr.Type())
	stock, err := s.inventory.GetStock("AAA")
	s.NoError(err)
	s.Equal(int64(10), stock)
}

func (s *BackOfficeWorkflowUnitTestSuite) Test_UpdateAccounting_RecordsEntry() {
	// Arrange
	record := s.defaultRecord()

	// Act
	s.env.ExecuteWorkflow(workflow.UpdateAccountingWorkflow, record)

	// Assert
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	var updateCount uint64
	s.NoError(s.env.GetWorkflowResult(&updateCount))
	s.Equal(uint64(1), updateCount)
	entry, err := s.accounting.GetEntry(record.Id)
	s.NoError(err)
	s.Equal(model.NewAmount(337), entry.NetTotal)
}

func (s *BackOfficeWorkflowUnitTestSuite) Test_UpdateAccounting_RetriesThenFails() {
	// Arrange
	record := s.defaultRecord()
	s.env.OnActivity("UpdateAccountingActivity", mock.Anything, mock.Anything).
		Return(uint64(0), errors.New("Fake error")).Times(10) // MaximumAttempts of the retry policy

	// Act
	s.env.ExecuteWorkflow(workflow.UpdateAccountingWorkflow, record)

	// Assert
	s.True(s.env.IsWorkflowCompleted())
	s.ErrorContains(s.env.GetWorkflowError(), "Fake error")
}

func (s *BackOfficeWorkflowUnitTestSuite) Test_Workflow_Fails_EmptySaleId() {
	// Arrange
	record := s.defaultRecord()
	record.Id = ""
	s.env.OnActivity("UpdateInventoryActivity", mock.Anything, mock.Anything).Return(uint64(0), nil).Never()

	// Act
	s.env.ExecuteWorkflow(workflow.UpdateInventoryWorkflow, record)

	// Assert
	s.True(s.env.IsWorkflowCompleted())
	s.ErrorContains(s.env.GetWorkflowError(), "sale record has no id")
}

func (s *BackOfficeWorkflowUnitTestSuite) Test_WorkflowIds_DerivedFromSaleId() {
	s.Equal("update-inventory-abc", workflow.UpdateInventoryWorkflowId("abc"))
	s.Equal("update-accounting-abc", workflow.UpdateAccountingWorkflowId("abc"))
}
