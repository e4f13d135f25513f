package db

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EnsureSchema creates a Postgres schema if it is missing. SQLite has no
// schemas, so it is a no-op there.
func EnsureSchema(d *gorm.DB, schema string) error {
	if !IsPostgres(d) {
		return nil
	}
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS ` + pq.QuoteIdentifier(schema)).Error
}
