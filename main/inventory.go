package main

import (
	"pos-register/pkg/config"
	"pos-register/pkg/db"
	"pos-register/pkg/model"
	"pos-register/pkg/view"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/log"
)

type seedItem struct {
	identifier  string
	description string
	unitPrice   int64
	vatRate     string
	stock       int64
}

var sampleItems = []seedItem{
	{"oat-milk", "Oat milk 1l", 2290, "0.06", 40},
	{"rye-bread", "Rye bread", 3490, "0.12", 25},
	{"coffee", "Coffee beans 500g", 8990, "0.12", 15},
	{"frozen-peas", "Frozen peas", 1990, "0.12", 30},
	{"batteries", "Batteries AA 4-pack", 5990, "0.25", 10},
}

const unknownItem = "no-such-item"

type seedableInventory interface {
	AddItem(item model.ItemDTO, stock int64) error
}

// seedInventory adds the sample items. Items that are already there keep their stock.
func seedInventory(inventory seedableInventory) error {
	for _, seed := range sampleItems {
		item, err := model.NewItemDTO(seed.identifier, seed.description, model.NewAmount(seed.unitPrice), decimal.RequireFromString(seed.vatRate))
		if err != nil {
			return errors.Wrapf(err, "invalid sample item %s", seed.identifier)
		}
		if err := inventory.AddItem(item, seed.stock); err != nil && !errors.Is(err, db.ErrItemAlreadyExists) {
			return errors.Wrapf(err, "failed to add sample item %s", seed.identifier)
		}
	}
	return nil
}

func openDatabases(cfg config.InventoryConfig, logger log.Logger) (db.InventoryDatabase, db.AccountingDatabase, func(), error) {
	if cfg.Driver == config.InventoryDriverSqlite {
		sqlDb, err := db.OpenSqlite(cfg.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		inventory := db.NewSqlInventoryDatabase(sqlDb)
		if err := seedInventory(inventory); err != nil {
			_ = sqlDb.Close()
			return nil, nil, nil, err
		}
		if len(cfg.OutageIds) > 0 {
			logger.Warn("Outage simulation is only supported by the memory driver", "Ids", cfg.OutageIds)
		}
		logger.Info("Using sqlite inventory", "Driver", db.DriverName, "DSN", cfg.DSN)
		return inventory, db.NewSqlAccountingDatabase(sqlDb), func() { _ = sqlDb.Close() }, nil
	}

	inventory := db.NewInMemoryInventoryDatabase()
	if err := seedInventory(inventory); err != nil {
		return nil, nil, nil, err
	}
	inventory.SetOutage(cfg.OutageIds...)
	logger.Info("Using in-memory inventory", "Items", len(sampleItems), "Outages", cfg.OutageIds)
	return inventory, db.NewInMemoryAccountingDatabase(), func() {}, nil
}

// sampleScript is the fixed demo: a first sale with an unknown item and, when
// configured, an item whose lookup fails, paid without discount; then a second
// sale paid by a discount customer.
func sampleScript(outageIds []string) []view.ScriptedSale {
	first := []view.ScriptedItem{
		{Identifier: "oat-milk", Quantity: 2},
		{Identifier: "rye-bread", Quantity: 1},
		{Identifier: unknownItem, Quantity: 1},
	}
	if len(outageIds) > 0 {
		first = append(first, view.ScriptedItem{Identifier: outageIds[0], Quantity: 1})
	}
	first = append(first, view.ScriptedItem{Identifier: "oat-milk", Quantity: 1})

	return []view.ScriptedSale{
		{
			Items:    first,
			Tendered: model.NewAmount(20000),
		},
		{
			Items: []view.ScriptedItem{
				{Identifier: "coffee", Quantity: 1},
				{Identifier: "batteries", Quantity: 2},
			},
			Tendered:   model.NewAmount(30000),
			CustomerId: "1234567890",
		},
	}
}
