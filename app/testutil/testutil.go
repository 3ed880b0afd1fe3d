// Package testutil spins up throwaway in-memory databases for package tests.
package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/nbri15/final-dream-tracker/app/database"
)

var dbSeq atomic.Int64

// NewDB opens a fresh named in-memory sqlite database with the full schema
// applied. Each call gets its own database; the handle is closed when the
// test finishes.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// Shared-cache in-memory databases vanish when the last connection
	// closes, so keep exactly one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
