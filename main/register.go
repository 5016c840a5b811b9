package main

import (
	"flag"
	"fmt"
	"os"

	"pos-register/pkg/activity"
	"pos-register/pkg/backoffice"
	"pos-register/pkg/config"
	"pos-register/pkg/controller"
	"pos-register/pkg/db"
	"pos-register/pkg/discount"
	"pos-register/pkg/errlog"
	"pos-register/pkg/logging"
	"pos-register/pkg/model"
	"pos-register/pkg/receipt"
	"pos-register/pkg/revenue"
	"pos-register/pkg/view"
	"pos-register/pkg/workflow"

	"github.com/pkg/errors"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
)

const (
	configFlag = "config"
	workerFlag = "worker"
)

func main() {
	configPath := flag.String(configFlag, "", "Path of an env file with the register settings")
	runWorker := flag.Bool(workerFlag, false, "Run the back-office worker instead of the sample execution")
	flag.Parse()

	if err := run(*configPath, *runWorker); err != nil {
		fmt.Fprintf(os.Stderr, "pos-register: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, runWorker bool) error {
	cfg, err := config.Load(configPath, logging.New(os.Stderr, "info"))
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.App.LogLevel)
	logger.Info("Starting", "App", cfg.App.Name, "Env", cfg.App.Env, "Worker", runWorker)

	inventory, accounting, closeDatabases, err := openDatabases(cfg.Inventory, logger)
	if err != nil {
		return err
	}
	defer closeDatabases()

	if runWorker {
		return runBackOfficeWorker(cfg.BackOffice.Temporal, inventory, accounting, logger)
	}

	errorLog, err := errlog.Open(cfg.Output.ErrorLogFile)
	if err != nil {
		return err
	}
	defer errorLog.Close()

	backOffice, closeBackOffice, err := newBackOffice(cfg.BackOffice, inventory, accounting, errorLog, logger)
	if err != nil {
		return err
	}
	defer closeBackOffice()

	var catalog controller.ItemCatalog = inventory
	if cfg.Inventory.CacheSize > 0 {
		catalog, err = db.NewCachingInventoryDatabase(inventory, cfg.Inventory.CacheSize)
		if err != nil {
			return errors.Wrap(err, "failed to create item cache")
		}
	}

	revenueFile, err := revenue.OpenFileDisplay(cfg.Output.RevenueFile, errorLog)
	if err != nil {
		return err
	}
	defer revenueFile.Close()

	register := controller.New(controller.Collaborators{
		Catalog:    catalog,
		BackOffice: backOffice,
		Printer:    receipt.NewPrinter(os.Stdout, cfg.App.StoreName, cfg.Output.ReceiptWidth, errorLog),
		Discounts:  discount.NewDiscountHandler(cfg.Discounts),
		Register:   model.NewCashRegister(),
		SaleIds:    &model.UuidSaleIdGenerator{},
		ErrorLog:   errorLog,
		Logger:     logger,
	})
	register.AddSaleObserver(revenue.NewTracker(revenue.NewConsoleDisplay(os.Stdout), logger))
	register.AddSaleObserver(revenue.NewTracker(revenueFile, logger))

	view.NewView(register, os.Stdout, logger).SampleExecution(sampleScript(cfg.Inventory.OutageIds))
	return nil
}

func newBackOffice(cfg config.BackOfficeConfig, inventory db.InventoryDatabase, accounting db.AccountingDatabase, errorLog errlog.ExceptionLogger, logger log.Logger) (model.BackOffice, func(), error) {
	if cfg.Mode != config.BackOfficeModeTemporal {
		return backoffice.NewDirect(inventory, accounting, errorLog, logger), func() {}, nil
	}
	temporalClient, err := dialTemporal(cfg.Temporal, logger)
	if err != nil {
		return nil, nil, err
	}
	return backoffice.NewTemporal(temporalClient, cfg.Temporal.TaskQueue, errorLog, logger), temporalClient.Close, nil
}

func dialTemporal(cfg config.TemporalConfig, logger log.Logger) (client.Client, error) {
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create Temporal client")
	}
	return temporalClient, nil
}

func runBackOfficeWorker(cfg config.TemporalConfig, inventory db.InventoryDatabase, accounting db.AccountingDatabase, logger log.Logger) error {
	temporalClient, err := dialTemporal(cfg, logger)
	if err != nil {
		return err
	}
	defer temporalClient.Close()

	logger.Info("Starting worker", "TaskQueue", cfg.TaskQueue)
	w := worker.New(temporalClient, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflow.UpdateInventoryWorkflow)
	w.RegisterWorkflow(workflow.UpdateAccountingWorkflow)
	w.RegisterActivity(&activity.BackOffice{
		Inventory:  inventory,
		Accounting: accounting,
	})

	if err := w.Run(worker.InterruptCh()); err != nil {
		return errors.Wrap(err, "unable to start worker")
	}
	return nil
}
