package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/abbasl7/e-vault/internal/logger"
)

// blobsBucket holds encrypted attachment payloads keyed by attachment ID.
// Values are serialized file envelopes; nothing in this store can be read
// without the session key.
var blobsBucket = []byte("blobs")

type blobRepository struct {
	db     *bolt.DB
	logger *logger.Logger
}

// NewBlobRepository opens (creating if necessary) the bbolt file that backs
// the attachment blob store. The open blocks on the file lock, so a short
// timeout turns a concurrently running vault process into an error instead
// of a hang.
func NewBlobRepository(path string, log *logger.Logger) (BlobRepository, func() error, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create blob store dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("open blob store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, bErr := tx.CreateBucketIfNotExists(blobsBucket)
		return bErr
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create blobs bucket: %w", err)
	}

	log.Debug().Str("func", "NewBlobRepository").Str("path", path).Msg("blob store opened")

	return &blobRepository{db: db, logger: log}, db.Close, nil
}

func (r *blobRepository) PutBlob(ctx context.Context, id string, envelope []byte) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobsBucket).Put([]byte(id), envelope)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "blobRepository.PutBlob").
			Str("blob_id", id).
			Msg("failed to store attachment blob")
		return fmt.Errorf("failed to store blob %s: %w", id, err)
	}
	return nil
}

func (r *blobRepository) GetBlob(ctx context.Context, id string) ([]byte, error) {
	var envelope []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(blobsBucket).Get([]byte(id))
		if value == nil {
			return ErrBlobNotFound
		}
		// The slice is only valid inside the transaction.
		envelope = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return envelope, nil
}

func (r *blobRepository) DeleteBlob(ctx context.Context, id string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobsBucket).Delete([]byte(id))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "blobRepository.DeleteBlob").
			Str("blob_id", id).
			Msg("failed to delete attachment blob")
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	return nil
}

func (r *blobRepository) ListBlobs(ctx context.Context) (map[string][]byte, error) {
	blobs := make(map[string][]byte)
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(blobsBucket).ForEach(func(k, v []byte) error {
			blobs[string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	return blobs, nil
}
