// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/models"
)

func newTestRecordRepo(t *testing.T) (RecordRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewRecordRepository(newDBFromSQL(db), logger.Nop()), mock
}

func testRecord() models.Record {
	return models.Record{
		ID:       "rec-1",
		Category: models.CategoryBanks,
		Fields: map[string]string{
			"bankName":  "Harbor Bank",
			"accountNo": `{"ciphertext":[1,2,3],"iv":[4,5,6]}`,
		},
		Attachments: []models.Attachment{
			{ID: "att-1", Name: "passbook.pdf", MimeType: "application/pdf", Size: 2048, UploadedAt: 1700000000000},
		},
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000001000,
	}
}

// recordRows encodes a record the way SaveRecord persists it.
func recordRows(t *testing.T, records ...models.Record) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows(recordColumns)
	for _, record := range records {
		fields, err := json.Marshal(record.Fields)
		require.NoError(t, err)
		attachments, err := json.Marshal(record.Attachments)
		require.NoError(t, err)
		rows.AddRow(record.ID, string(record.Category), string(fields), string(attachments), record.CreatedAt, record.UpdatedAt)
	}
	return rows
}

func TestRecordRepository_SaveRecord(t *testing.T) {
	record := testRecord()

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("INSERT OR REPLACE INTO records")).
			WithArgs(
				record.ID,
				string(record.Category),
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				record.CreatedAt,
				record.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.SaveRecord(testContext(), record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("INSERT OR REPLACE INTO records")).
			WillReturnError(errors.New("database is locked"))

		require.Error(t, repo.SaveRecord(testContext(), record))
	})
}

func TestRecordRepository_GetRecord(t *testing.T) {
	record := testRecord()
	query, _, err := buildGetRecordQuery(record.ID)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(record.ID).
			WillReturnRows(recordRows(t, record))

		got, err := repo.GetRecord(testContext(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(record.ID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetRecord(testContext(), record.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("corrupt fields column", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		rows := sqlmock.NewRows(recordColumns).
			AddRow(record.ID, "banks", "not json", "null", record.CreatedAt, record.UpdatedAt)
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(record.ID).
			WillReturnRows(rows)

		_, err := repo.GetRecord(testContext(), record.ID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestRecordRepository_GetRecordsByCategory(t *testing.T) {
	first := testRecord()
	second := testRecord()
	second.ID = "rec-2"
	second.Attachments = nil

	query, _, err := buildGetRecordsByCategoryQuery(models.CategoryBanks)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("banks").
			WillReturnRows(recordRows(t, first, second))

		got, err := repo.GetRecordsByCategory(testContext(), models.CategoryBanks)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first, got[0])
		assert.Equal(t, second, got[1])
	})

	t.Run("empty category yields nil slice", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("banks").
			WillReturnRows(sqlmock.NewRows(recordColumns))

		got, err := repo.GetRecordsByCategory(testContext(), models.CategoryBanks)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRecordRepository_GetAllRecords(t *testing.T) {
	bank := testRecord()
	note := testRecord()
	note.ID = "rec-3"
	note.Category = models.CategoryMisc
	note.Fields = map[string]string{"title": "wifi password"}
	note.Attachments = nil

	query, _, err := buildGetAllRecordsQuery()
	require.NoError(t, err)

	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(recordRows(t, bank, note))

	got, err := repo.GetAllRecords(testContext())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []models.Record{bank}, got[models.CategoryBanks])
	assert.Equal(t, []models.Record{note}, got[models.CategoryMisc])
}

func TestRecordRepository_DeleteRecord(t *testing.T) {
	query, _, err := buildDeleteRecordQuery("rec-1")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("rec-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteRecord(testContext(), "rec-1"))
	})

	t.Run("no rows affected", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs("rec-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteRecord(testContext(), "rec-1"), ErrRecordNotFound)
	})
}
