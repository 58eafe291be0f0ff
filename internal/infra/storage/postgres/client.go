// Package postgres persists the ledger entities in PostgreSQL through GORM.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewClient opens a PostgreSQL connection pool from the given DSN. Error
// translation is enabled so storage code can match on gorm sentinel errors
// regardless of the underlying driver.
func NewClient(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	return db, nil
}
