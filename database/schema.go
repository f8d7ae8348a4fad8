package database

import (
	_ "embed"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaScript string

// InitSchema (re)creates the usuario and tarea tables from the
// embedded script. Destructive: existing tables are dropped first.
func InitSchema(db *sqlx.DB) error {
	_, err := db.Exec(schemaScript)
	return err
}
