package model

import "github.com/google/uuid"

// SaleIdGenerator names new sales. Ids must never repeat: back-office workflow
// ids are derived from them.
type SaleIdGenerator interface {
	New() string
}

// UuidSaleIdGenerator hands out random (version 4) UUIDs.
type UuidSaleIdGenerator struct{}

var _ SaleIdGenerator = &UuidSaleIdGenerator{}

func (*UuidSaleIdGenerator) New() string {
	return uuid.New().String()
}
