//go:build !sqlite_cgo

package db

// Pure Go SQLite, no C compiler needed. Build with -tags sqlite_cgo to use
// github.com/mattn/go-sqlite3 instead.

import (
	_ "modernc.org/sqlite"
)

const DriverName = "sqlite"
