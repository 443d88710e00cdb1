// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbasl7/e-vault/internal/config"
	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/models"
)

func newTestStorages(t *testing.T) *Storages {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Storage{
		DB:    config.DB{Path: filepath.Join(dir, "vault.db")},
		Blobs: config.Blobs{Path: filepath.Join(dir, "blobs.db")},
	}

	storages, err := NewStorages(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

// TestStorages_EndToEnd runs against a real on-disk SQLite database with
// migrations applied, not sqlmock.
func TestStorages_EndToEnd(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	t.Run("credential round trip", func(t *testing.T) {
		_, err := storages.CredentialRepository.GetCredential(ctx)
		assert.ErrorIs(t, err, ErrCredentialNotFound)

		want := testCredential()
		require.NoError(t, storages.CredentialRepository.SaveCredential(ctx, want))

		got, err := storages.CredentialRepository.GetCredential(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// Repeated saves replace the singleton row.
		want.MasterHash = "rotated"
		require.NoError(t, storages.CredentialRepository.SaveCredential(ctx, want))
		got, err = storages.CredentialRepository.GetCredential(ctx)
		require.NoError(t, err)
		assert.Equal(t, "rotated", got.MasterHash)
	})

	t.Run("record round trip", func(t *testing.T) {
		record := testRecord()
		require.NoError(t, storages.RecordRepository.SaveRecord(ctx, record))

		got, err := storages.RecordRepository.GetRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)

		byCategory, err := storages.RecordRepository.GetRecordsByCategory(ctx, models.CategoryBanks)
		require.NoError(t, err)
		require.Len(t, byCategory, 1)

		all, err := storages.RecordRepository.GetAllRecords(ctx)
		require.NoError(t, err)
		assert.Contains(t, all, models.CategoryBanks)

		require.NoError(t, storages.RecordRepository.DeleteRecord(ctx, record.ID))
		_, err = storages.RecordRepository.GetRecord(ctx, record.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("blob round trip", func(t *testing.T) {
		require.NoError(t, storages.BlobRepository.PutBlob(ctx, "att-1", []byte("envelope")))

		got, err := storages.BlobRepository.GetBlob(ctx, "att-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("envelope"), got)
	})
}

// TestNewStorages_MigrationsAreIdempotent reopens the same database twice.
func TestNewStorages_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Storage{
		DB:    config.DB{Path: filepath.Join(dir, "vault.db")},
		Blobs: config.Blobs{Path: filepath.Join(dir, "blobs.db")},
	}

	storages, err := NewStorages(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, storages.Close())

	storages, err = NewStorages(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, storages.Close())
}
