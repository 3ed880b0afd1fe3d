package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations applies the schema before the engine is reachable. Statements
// are individually idempotent, so re-running on an existing database is safe.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
