package db

import (
	"pos-register/pkg/model"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingInventoryDatabase remembers the details of items it has found. Failed
// lookups are not cached.
type CachingInventoryDatabase struct {
	InventoryDatabase
	cache *lru.Cache[string, model.ItemDTO]
}

func NewCachingInventoryDatabase(inner InventoryDatabase, size int) (*CachingInventoryDatabase, error) {
	cache, err := lru.New[string, model.ItemDTO](size)
	if err != nil {
		return nil, err
	}
	return &CachingInventoryDatabase{InventoryDatabase: inner, cache: cache}, nil
}

func (c *CachingInventoryDatabase) FindItem(identifier string) (model.ItemDTO, error) {
	if item, ok := c.cache.Get(identifier); ok {
		return item, nil
	}
	item, err := c.InventoryDatabase.FindItem(identifier)
	if err != nil {
		return model.ItemDTO{}, err
	}
	c.cache.Add(identifier, item)
	return item, nil
}
