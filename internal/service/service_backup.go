// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abbasl7/e-vault/internal/crypto"
	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/store"
	"github.com/abbasl7/e-vault/models"
)

// backupSaltHex is the fixed, application-wide backup salt ("backup-salt-
// v1-fixed", zero-padded). Every installation shares it, so backup
// confidentiality rests solely on the backup password. Known weakness;
// changing it would break every existing backup file, so it stays until
// the format grows a version bump. See DESIGN.md.
const backupSaltHex = "6261636b75702d73616c742d76312d666978656400000000000000000000"

type backupService struct {
	credentials store.CredentialRepository
	records     store.RecordRepository
	blobs       store.BlobRepository
	keychain    crypto.KeyChainService
	logger      *logger.Logger
}

// NewBackupService creates the backup codec over the vault's stores.
func NewBackupService(credentials store.CredentialRepository, records store.RecordRepository, blobs store.BlobRepository, keychain crypto.KeyChainService, log *logger.Logger) BackupService {
	return &backupService{credentials: credentials, records: records, blobs: blobs, keychain: keychain, logger: log}
}

func (b *backupService) Export(ctx context.Context, backupPassword string) (string, error) {
	credential, err := b.credentials.GetCredential(ctx)
	if err != nil {
		return "", fmt.Errorf("load credential for export: %w", err)
	}

	records, err := b.records.GetAllRecords(ctx)
	if err != nil {
		return "", fmt.Errorf("load records for export: %w", err)
	}

	rawBlobs, err := b.blobs.ListBlobs(ctx)
	if err != nil {
		return "", fmt.Errorf("load blobs for export: %w", err)
	}
	blobs := make(map[string]json.RawMessage, len(rawBlobs))
	for id, envelope := range rawBlobs {
		blobs[id] = json.RawMessage(envelope)
	}

	payload := models.BackupPayload{
		Version:   models.BackupVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data: models.BackupData{
			Credential: credential,
			Records:    records,
			Blobs:      blobs,
		},
	}

	dump, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal backup payload: %w", err)
	}

	key, err := b.keychain.DeriveCapability(backupPassword, backupSaltHex)
	if err != nil {
		return "", fmt.Errorf("derive backup capability: %w", err)
	}
	defer key.Destroy()

	envelope, err := crypto.EncryptField(string(dump), key)
	if err != nil {
		return "", fmt.Errorf("encrypt backup: %w", err)
	}

	b.logger.Info().Str("func", "Export").Int("records", countRecords(records)).Msg("backup exported")
	return envelope, nil
}

func (b *backupService) Import(ctx context.Context, envelope, backupPassword string) (*models.BackupPayload, error) {
	key, err := b.keychain.DeriveCapability(backupPassword, backupSaltHex)
	if err != nil {
		return nil, fmt.Errorf("derive backup capability: %w", err)
	}
	defer key.Destroy()

	// A wrong password and a corrupted file both fail the AEAD tag; the
	// two are indistinguishable by construction.
	dump, err := crypto.DecryptField(envelope, key, crypto.Strict)
	if err != nil {
		return nil, ErrInvalidBackupPassword
	}

	var probe struct {
		Version   string          `json:"version"`
		Timestamp string          `json:"timestamp"`
		Data      json.RawMessage `json:"data"`
	}
	if err = json.Unmarshal([]byte(dump), &probe); err != nil {
		return nil, ErrMalformedBackup
	}
	if probe.Version == "" || len(probe.Data) == 0 || string(probe.Data) == "null" {
		return nil, ErrMalformedBackup
	}

	payload := &models.BackupPayload{Version: probe.Version, Timestamp: probe.Timestamp}
	if err = json.Unmarshal(probe.Data, &payload.Data); err != nil {
		return nil, ErrMalformedBackup
	}
	return payload, nil
}

func (b *backupService) Restore(ctx context.Context, payload *models.BackupPayload) error {
	if err := b.credentials.SaveCredential(ctx, payload.Data.Credential); err != nil {
		return fmt.Errorf("restore credential: %w", err)
	}

	for _, records := range payload.Data.Records {
		for _, record := range records {
			if err := b.records.SaveRecord(ctx, record); err != nil {
				return fmt.Errorf("restore record %s: %w", record.ID, err)
			}
		}
	}

	for id, envelope := range payload.Data.Blobs {
		if err := b.blobs.PutBlob(ctx, id, []byte(envelope)); err != nil {
			return fmt.Errorf("restore blob %s: %w", id, err)
		}
	}

	b.logger.Info().Str("func", "Restore").Int("records", countRecords(payload.Data.Records)).Msg("backup restored")
	return nil
}

func countRecords(byCategory map[models.Category][]models.Record) int {
	total := 0
	for _, records := range byCategory {
		total += len(records)
	}
	return total
}
