package main

import (
	"testing"

	"pos-register/pkg/apperror"
	"pos-register/pkg/config"
	"pos-register/pkg/db"
	"pos-register/pkg/logging"
	"pos-register/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedInventoryKeepsExistingStock(t *testing.T) {
	// Arrange
	sqlDb, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	defer sqlDb.Close()
	inventory := db.NewSqlInventoryDatabase(sqlDb)
	require.NoError(t, seedInventory(inventory))
	_, err = inventory.UpdateInventory(sampleRecord(t, inventory, "coffee", 5))
	require.NoError(t, err)

	// Act
	err = seedInventory(inventory)

	// Assert
	require.NoError(t, err)
	stock, err := inventory.GetStock("coffee")
	require.NoError(t, err)
	assert.Equal(t, int64(10), stock)
}

func sampleRecord(t *testing.T, inventory db.InventoryDatabase, identifier string, quantity int) model.SaleRecord {
	item, err := inventory.FindItem(identifier)
	require.NoError(t, err)
	return model.SaleRecord{Id: "sale-1", Lines: []model.LineItem{{Item: item, Quantity: quantity}}}
}

func TestOpenDatabasesMemoryWithOutage(t *testing.T) {
	// Act
	inventory, accounting, closeDatabases, err := openDatabases(config.InventoryConfig{
		Driver:    config.InventoryDriverMemory,
		OutageIds: []string{"frozen-peas"},
	}, logging.NewNopLogger())

	// Assert
	require.NoError(t, err)
	defer closeDatabases()
	assert.NotNil(t, accounting)
	_, err = inventory.FindItem("oat-milk")
	assert.NoError(t, err)
	_, err = inventory.FindItem("frozen-peas")
	assert.ErrorIs(t, err, apperror.ErrSystemUnavailable)
	_, err = inventory.FindItem(unknownItem)
	assert.ErrorIs(t, err, apperror.ErrItemNotFound)
}

func TestSampleScript(t *testing.T) {
	withOutage := sampleScript([]string{"frozen-peas"})
	withoutOutage := sampleScript(nil)

	require.Len(t, withOutage, 2)
	assert.Len(t, withOutage[0].Items, 5)
	assert.Len(t, withoutOutage[0].Items, 4)
	assert.Empty(t, withOutage[0].CustomerId)
	assert.Equal(t, "1234567890", withOutage[1].CustomerId)
}
