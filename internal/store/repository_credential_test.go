// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:     db,
		logger: logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func testCredential() models.Credential {
	return models.Credential{
		ID:                  models.CredentialID,
		MasterHash:          "master-hash",
		Salt:                "73616c74",
		Username:            "alice",
		SecurityQuestion1:   "First pet?",
		SecurityAnswer1Hash: "a1-hash",
		SecurityQuestion2:   "Birth city?",
		SecurityAnswer2Hash: "a2-hash",
		CreatedAt:           1700000000000,
		UpdatedAt:           1700000000000,
	}
}

func credentialRows(c models.Credential) *sqlmock.Rows {
	return sqlmock.NewRows(credentialColumns).AddRow(
		c.ID,
		c.MasterHash,
		c.Salt,
		c.Username,
		c.SecurityQuestion1,
		c.SecurityAnswer1Hash,
		c.SecurityQuestion2,
		c.SecurityAnswer2Hash,
		c.CreatedAt,
		c.UpdatedAt,
	)
}

func TestCredentialRepository_GetCredential(t *testing.T) {
	query, _, err := buildGetCredentialQuery()
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewCredentialRepository(newDBFromSQL(db), logger.Nop())

		want := testCredential()
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(models.CredentialID).
			WillReturnRows(credentialRows(want))

		got, err := repo.GetCredential(testContext())
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewCredentialRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(models.CredentialID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetCredential(testContext())
		assert.ErrorIs(t, err, ErrCredentialNotFound)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewCredentialRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnError(errors.New("disk I/O error"))

		_, err := repo.GetCredential(testContext())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCredentialNotFound)
	})
}

func TestCredentialRepository_SaveCredential(t *testing.T) {
	credential := testCredential()
	query, _, err := buildSaveCredentialQuery(credential)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewCredentialRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(
				credential.ID,
				credential.MasterHash,
				credential.Salt,
				credential.Username,
				credential.SecurityQuestion1,
				credential.SecurityAnswer1Hash,
				credential.SecurityQuestion2,
				credential.SecurityAnswer2Hash,
				credential.CreatedAt,
				credential.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.SaveCredential(testContext(), credential))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewCredentialRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WillReturnError(errors.New("database is locked"))

		err := repo.SaveCredential(testContext(), credential)
		require.Error(t, err)
	})

	t.Run("replaces an existing row", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewCredentialRepository(newDBFromSQL(db), logger.Nop())

		// OR REPLACE keeps the singleton row semantics on repeated saves.
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.SaveCredential(testContext(), credential))

		updated := credential
		updated.MasterHash = "rotated-hash"
		require.NoError(t, repo.SaveCredential(testContext(), updated))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
