package store

import (
	"context"
	"fmt"

	"github.com/abbasl7/e-vault/internal/config"
	"github.com/abbasl7/e-vault/internal/logger"
)

// Storages groups all storage repositories into a single value that can be
// passed around the service layer.
type Storages struct {
	// CredentialRepository is the SQLite-backed repository for the singleton
	// credential row.
	CredentialRepository CredentialRepository

	// RecordRepository is the SQLite-backed repository for encrypted vault
	// records.
	RecordRepository RecordRepository

	// BlobRepository is the bbolt-backed store for encrypted attachment
	// payloads.
	BlobRepository BlobRepository

	closers []func() error
}

// NewStorages initialises the storage layer using the supplied configuration
// and logger. It performs the following steps:
//  1. Opens the SQLite database at cfg.DB.Path, creating the file if it does
//     not yet exist, and runs pending schema migrations.
//  2. Opens the bbolt blob store at cfg.Blobs.Path.
//  3. Constructs a [Storages] value wired to fresh repositories.
//
// Returns an error if either database cannot be opened or migration fails.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, closeBlobs, err := NewBlobRepository(cfg.Blobs.Path, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob store error: %w", err)
	}

	return &Storages{
		CredentialRepository: NewCredentialRepository(db, log),
		RecordRepository:     NewRecordRepository(db, log),
		BlobRepository:       blobs,
		closers:              []func() error{closeBlobs, db.Close},
	}, nil
}

// Close releases the underlying database handles. Safe to call once at
// shutdown.
func (s *Storages) Close() error {
	var firstErr error
	for _, close := range s.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
