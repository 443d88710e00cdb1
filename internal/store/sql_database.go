package store

import (
	"database/sql"

	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
