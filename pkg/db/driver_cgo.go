//go:build sqlite_cgo

package db

import (
	_ "github.com/mattn/go-sqlite3"
)

const DriverName = "sqlite3"
