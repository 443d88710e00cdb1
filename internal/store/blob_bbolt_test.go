package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbasl7/e-vault/internal/logger"
)

func newTestBlobRepo(t *testing.T) BlobRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blobs.db")
	repo, closeFn, err := NewBlobRepository(path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return repo
}

func TestBlobRepository_PutGet(t *testing.T) {
	repo := newTestBlobRepo(t)
	ctx := testContext()

	envelope := []byte(`{"iv":"00112233445566778899aabb","data":"QUJDRA=="}`)
	require.NoError(t, repo.PutBlob(ctx, "att-1", envelope))

	got, err := repo.GetBlob(ctx, "att-1")
	require.NoError(t, err)
	assert.Equal(t, envelope, got)
}

func TestBlobRepository_GetMissing(t *testing.T) {
	repo := newTestBlobRepo(t)

	_, err := repo.GetBlob(testContext(), "nope")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestBlobRepository_PutOverwrites(t *testing.T) {
	repo := newTestBlobRepo(t)
	ctx := testContext()

	require.NoError(t, repo.PutBlob(ctx, "att-1", []byte("first")))
	require.NoError(t, repo.PutBlob(ctx, "att-1", []byte("second")))

	got, err := repo.GetBlob(ctx, "att-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestBlobRepository_Delete(t *testing.T) {
	repo := newTestBlobRepo(t)
	ctx := testContext()

	require.NoError(t, repo.PutBlob(ctx, "att-1", []byte("payload")))
	require.NoError(t, repo.DeleteBlob(ctx, "att-1"))

	_, err := repo.GetBlob(ctx, "att-1")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// Deleting an absent blob is not an error.
	assert.NoError(t, repo.DeleteBlob(ctx, "att-1"))
}

func TestBlobRepository_ListBlobs(t *testing.T) {
	repo := newTestBlobRepo(t)
	ctx := testContext()

	t.Run("empty store", func(t *testing.T) {
		got, err := repo.ListBlobs(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns every stored blob", func(t *testing.T) {
		require.NoError(t, repo.PutBlob(ctx, "att-1", []byte("one")))
		require.NoError(t, repo.PutBlob(ctx, "att-2", []byte("two")))

		got, err := repo.ListBlobs(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{
			"att-1": []byte("one"),
			"att-2": []byte("two"),
		}, got)
	})
}

func TestBlobRepository_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobs.db")
	ctx := testContext()

	repo, closeFn, err := NewBlobRepository(path, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, repo.PutBlob(ctx, "att-1", []byte("durable")))
	require.NoError(t, closeFn())

	repo, closeFn, err = NewBlobRepository(path, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	got, err := repo.GetBlob(ctx, "att-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}
