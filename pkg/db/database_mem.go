package db

import (
	"sync"

	"pos-register/pkg/apperror"
	"pos-register/pkg/model"

	"github.com/pkg/errors"
)

type storedItem struct {
	item  model.ItemDTO
	stock int64
}

type InMemoryInventoryDatabase struct {
	items   map[string]*storedItem
	outages map[string]bool
	mu      *sync.RWMutex
}

var _ InventoryDatabase = InMemoryInventoryDatabase{}

func NewInMemoryInventoryDatabase() *InMemoryInventoryDatabase {
	return &InMemoryInventoryDatabase{
		items:   make(map[string]*storedItem),
		outages: make(map[string]bool),
		mu:      &sync.RWMutex{},
	}
}

func (m InMemoryInventoryDatabase) AddItem(item model.ItemDTO, stock int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[item.Identifier]; ok {
		return ErrItemAlreadyExists
	}
	m.items[item.Identifier] = &storedItem{item: item, stock: stock}
	return nil
}

// SetOutage makes lookups of the given identifiers fail as if the database
// were unreachable.
func (m InMemoryInventoryDatabase) SetOutage(identifiers ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, identifier := range identifiers {
		m.outages[identifier] = true
	}
}

func (m InMemoryInventoryDatabase) FindItem(identifier string) (model.ItemDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.outages[identifier] {
		return model.ItemDTO{}, apperror.NewSystemUnavailableError("inventory",
			errors.Errorf("no answer from inventory database while looking up %q", identifier))
	}
	stored, ok := m.items[identifier]
	if !ok {
		return model.ItemDTO{}, apperror.NewItemNotFoundError(identifier)
	}
	return stored.item, nil
}

// UpdateInventory takes each line's quantity off the stock. Stock may go negative.
func (m InMemoryInventoryDatabase) UpdateInventory(record model.SaleRecord) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range record.Lines {
		if _, ok := m.items[line.Item.Identifier]; !ok {
			return 0, apperror.NewItemNotFoundError(line.Item.Identifier)
		}
	}
	for _, line := range record.Lines {
		m.items[line.Item.Identifier].stock -= int64(line.Quantity)
	}
	return uint64(len(record.Lines)), nil
}

func (m InMemoryInventoryDatabase) GetStock(identifier string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.items[identifier]
	if !ok {
		return 0, apperror.NewItemNotFoundError(identifier)
	}
	return stored.stock, nil
}

type InMemoryAccountingDatabase struct {
	entries map[string]AccountingEntry
	mu      *sync.RWMutex
}

var _ AccountingDatabase = InMemoryAccountingDatabase{}

func NewInMemoryAccountingDatabase() *InMemoryAccountingDatabase {
	return &InMemoryAccountingDatabase{
		entries: make(map[string]AccountingEntry),
		mu:      &sync.RWMutex{},
	}
}

func (m InMemoryAccountingDatabase) UpdateAccounting(record model.SaleRecord) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[record.Id]; ok {
		return 0, nil
	}
	m.entries[record.Id] = NewAccountingEntry(record)
	return 1, nil
}

func (m InMemoryAccountingDatabase) GetEntry(saleId string) (AccountingEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[saleId]
	if !ok {
		return AccountingEntry{}, ErrEntryNotFound
	}
	return entry, nil
}
