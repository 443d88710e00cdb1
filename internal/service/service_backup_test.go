// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abbasl7/e-vault/internal/crypto"
	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/mock"
	"github.com/abbasl7/e-vault/models"
)

func newTestBackupSvc(t *testing.T, ctrl *gomock.Controller) (BackupService, *mock.MockCredentialRepository, *mock.MockRecordRepository, *mock.MockBlobRepository) {
	t.Helper()
	mockCredentials := mock.NewMockCredentialRepository(ctrl)
	mockRecords := mock.NewMockRecordRepository(ctrl)
	mockBlobs := mock.NewMockBlobRepository(ctrl)
	svc := NewBackupService(mockCredentials, mockRecords, mockBlobs, crypto.NewKeyChainService(), logger.Nop())
	return svc, mockCredentials, mockRecords, mockBlobs
}

func backupFixture() (models.Credential, map[models.Category][]models.Record, map[string][]byte) {
	credential := models.Credential{
		ID:         models.CredentialID,
		MasterHash: "aa11",
		Salt:       "00112233445566778899aabbccddeeff",
		Username:   "alice",
		CreatedAt:  1700000000000,
		UpdatedAt:  1700000000000,
	}
	records := map[models.Category][]models.Record{
		models.CategoryBanks: {
			{ID: "rec-1", Category: models.CategoryBanks, Fields: map[string]string{"bankName": "State Bank"}, CreatedAt: 1, UpdatedAt: 2},
		},
		models.CategoryMisc: {
			{ID: "rec-2", Category: models.CategoryMisc, Fields: map[string]string{"title": "wifi"}, CreatedAt: 3, UpdatedAt: 4},
		},
	}
	blobs := map[string][]byte{
		"att-1": []byte(`{"iv":"00","data":"QUJD"}`),
	}
	return credential, records, blobs
}

func TestBackupService_ExportImport_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCredentials, mockRecords, mockBlobs := newTestBackupSvc(t, ctrl)
	ctx := context.Background()
	credential, records, blobs := backupFixture()

	mockCredentials.EXPECT().GetCredential(ctx).Return(credential, nil)
	mockRecords.EXPECT().GetAllRecords(ctx).Return(records, nil)
	mockBlobs.EXPECT().ListBlobs(ctx).Return(blobs, nil)

	envelope, err := svc.Export(ctx, "bk-pass")
	require.NoError(t, err)
	assert.NotContains(t, envelope, "State Bank")
	assert.NotContains(t, envelope, "alice")

	payload, err := svc.Import(ctx, envelope, "bk-pass")
	require.NoError(t, err)

	assert.Equal(t, models.BackupVersion, payload.Version)
	assert.NotEmpty(t, payload.Timestamp)
	assert.Equal(t, credential, payload.Data.Credential)
	assert.Equal(t, records, payload.Data.Records)
	require.Contains(t, payload.Data.Blobs, "att-1")
	assert.JSONEq(t, string(blobs["att-1"]), string(payload.Data.Blobs["att-1"]))
}

func TestBackupService_Import_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCredentials, mockRecords, mockBlobs := newTestBackupSvc(t, ctrl)
	ctx := context.Background()
	credential, records, blobs := backupFixture()

	mockCredentials.EXPECT().GetCredential(ctx).Return(credential, nil)
	mockRecords.EXPECT().GetAllRecords(ctx).Return(records, nil)
	mockBlobs.EXPECT().ListBlobs(ctx).Return(blobs, nil)

	envelope, err := svc.Export(ctx, "bk-pass")
	require.NoError(t, err)

	_, err = svc.Import(ctx, envelope, "wrong-bk-pass")
	require.ErrorIs(t, err, ErrInvalidBackupPassword)
}

func TestBackupService_Import_GarbageEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestBackupSvc(t, ctrl)

	_, err := svc.Import(context.Background(), "not a backup file", "bk-pass")
	require.ErrorIs(t, err, ErrInvalidBackupPassword)
}

func TestBackupService_Import_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestBackupSvc(t, ctrl)
	ctx := context.Background()

	// Correctly encrypted under the right password, but the payload is not
	// a backup: missing version and data markers.
	keychain := crypto.NewKeyChainService()
	key, err := keychain.DeriveCapability("bk-pass", backupSaltHex)
	require.NoError(t, err)
	defer key.Destroy()

	for _, body := range []string{
		`{"hello":"world"}`,
		`{"version":"1.0"}`,
		`{"data":{}}`,
		`{"version":"1.0","data":null}`,
		`plain text, not json`,
	} {
		envelope, err := crypto.EncryptField(body, key)
		require.NoError(t, err)

		_, err = svc.Import(ctx, envelope, "bk-pass")
		require.ErrorIs(t, err, ErrMalformedBackup, "payload %q", body)
	}
}

func TestBackupService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCredentials, mockRecords, mockBlobs := newTestBackupSvc(t, ctrl)
	ctx := context.Background()
	credential, records, blobs := backupFixture()

	payload := &models.BackupPayload{
		Version:   models.BackupVersion,
		Timestamp: "2026-08-31T00:00:00Z",
		Data: models.BackupData{
			Credential: credential,
			Records:    records,
			Blobs:      map[string]json.RawMessage{"att-1": json.RawMessage(blobs["att-1"])},
		},
	}

	mockCredentials.EXPECT().SaveCredential(ctx, credential).Return(nil)
	mockRecords.EXPECT().SaveRecord(ctx, records[models.CategoryBanks][0]).Return(nil)
	mockRecords.EXPECT().SaveRecord(ctx, records[models.CategoryMisc][0]).Return(nil)
	mockBlobs.EXPECT().PutBlob(ctx, "att-1", blobs["att-1"]).Return(nil)

	require.NoError(t, svc.Restore(ctx, payload))
}
