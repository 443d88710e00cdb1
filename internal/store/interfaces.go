package store

import (
	"context"

	"github.com/abbasl7/e-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

// CredentialRepository persists the singleton credential row. The engine
// above it guarantees there is at most one credential per vault; the
// repository only enforces the fixed primary key.
type CredentialRepository interface {
	// GetCredential loads the credential row. Returns
	// [ErrCredentialNotFound] if the vault has not been set up yet.
	GetCredential(ctx context.Context) (models.Credential, error)

	// SaveCredential inserts or replaces the credential row.
	SaveCredential(ctx context.Context, credential models.Credential) error
}

// RecordRepository persists vault records. Records arrive here already in
// envelope form; the repository never sees plaintext of sensitive fields.
type RecordRepository interface {
	// SaveRecord inserts or replaces one record row.
	SaveRecord(ctx context.Context, record models.Record) error

	// GetRecord loads one record by ID. Returns [ErrRecordNotFound] if no
	// such row exists.
	GetRecord(ctx context.Context, id string) (models.Record, error)

	// GetRecordsByCategory loads all records of one category, newest first.
	GetRecordsByCategory(ctx context.Context, category models.Category) ([]models.Record, error)

	// GetAllRecords loads every record in the vault, grouped by category.
	GetAllRecords(ctx context.Context) (map[models.Category][]models.Record, error)

	// DeleteRecord removes one record row. Returns [ErrRecordNotFound] if
	// no such row exists.
	DeleteRecord(ctx context.Context, id string) error
}

// BlobRepository persists encrypted attachment payloads keyed by attachment
// ID. Values are opaque serialized file envelopes.
type BlobRepository interface {
	// PutBlob stores the envelope bytes under id, replacing any previous
	// value.
	PutBlob(ctx context.Context, id string, envelope []byte) error

	// GetBlob loads the envelope bytes stored under id. Returns
	// [ErrBlobNotFound] if the blob does not exist.
	GetBlob(ctx context.Context, id string) ([]byte, error)

	// DeleteBlob removes the blob stored under id. Deleting a missing blob
	// is not an error.
	DeleteBlob(ctx context.Context, id string) error

	// ListBlobs returns every stored blob keyed by attachment ID. Used by
	// backup export.
	ListBlobs(ctx context.Context) (map[string][]byte, error)
}
