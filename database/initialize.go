package database

import (
	"todo-service/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/logger"
)

// Initialize opens the SQLite connection pool. The schema is not
// touched here; creating or resetting tables is only done through
// InitSchema (the init-db command).
func Initialize(cfg config.Config) *sqlx.DB {
	dbConn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: "sqlite3",
		DB:     cfg.DatabasePath,
	})

	logger.Info("Database connection initialized")
	return dbConn
}
