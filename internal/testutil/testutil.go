package testutil

import (
	"testing"

	"gorm.io/gorm"

	"codemingle/internal/db"
)

// DB returns a migrated, private in-memory SQLite database for one test.
// The pool is pinned to a single connection so every query sees the same
// in-memory database; code under test must not open a second connection
// while a transaction is in flight.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	gdb, err := db.Open("sqlite", "file::memory:", nil)
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("test db pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return gdb
}
