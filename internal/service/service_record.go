// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abbasl7/e-vault/internal/crypto"
	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/schema"
	"github.com/abbasl7/e-vault/internal/store"
	"github.com/abbasl7/e-vault/internal/validators"
	"github.com/abbasl7/e-vault/models"
)

type recordService struct {
	records   store.RecordRepository
	blobs     store.BlobRepository
	schema    schema.Table
	validator validators.Validator
	maxSize   int64
	logger    *logger.Logger
}

// NewRecordService creates the record envelope manager. The schema table
// decides which fields of each category pass through the field codec;
// maxAttachmentSize bounds attachment payloads in bytes.
func NewRecordService(records store.RecordRepository, blobs store.BlobRepository, table schema.Table, maxAttachmentSize int64, log *logger.Logger) RecordService {
	return &recordService{
		records:   records,
		blobs:     blobs,
		schema:    table,
		validator: validators.NewRecordValidator(),
		maxSize:   maxAttachmentSize,
		logger:    log,
	}
}

func (r *recordService) Create(ctx context.Context, sess *Session, record models.Record) (models.Record, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return models.Record{}, err
	}
	if err = r.validator.Validate(ctx, record, validators.FieldCategory, validators.FieldFields); err != nil {
		if errors.Is(err, validators.ErrInvalidCategory) {
			return models.Record{}, ErrUnknownCategory
		}
		return models.Record{}, fmt.Errorf("validate record for create: %w", err)
	}

	now := time.Now().UnixMilli()
	record.ID = newID()
	record.CreatedAt = now
	record.UpdatedAt = now
	record.Attachments = nil

	persisted, err := r.toPersisted(record, key)
	if err != nil {
		return models.Record{}, fmt.Errorf("encrypt record for create: %w", err)
	}
	if err = r.records.SaveRecord(ctx, persisted); err != nil {
		return models.Record{}, fmt.Errorf("save created record: %w", err)
	}

	return record, nil
}

func (r *recordService) Update(ctx context.Context, sess *Session, record models.Record) (models.Record, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return models.Record{}, err
	}

	if err = r.validator.Validate(ctx, record, validators.FieldID, validators.FieldFields); err != nil {
		return models.Record{}, fmt.Errorf("validate record for update: %w", err)
	}

	existing, err := r.records.GetRecord(ctx, record.ID)
	if err != nil {
		return models.Record{}, fmt.Errorf("load record for update: %w", err)
	}

	// Creation time, category and attachments belong to the stored row;
	// only field values change through Update.
	record.Category = existing.Category
	record.CreatedAt = existing.CreatedAt
	record.Attachments = existing.Attachments
	record.UpdatedAt = time.Now().UnixMilli()

	persisted, err := r.toPersisted(record, key)
	if err != nil {
		return models.Record{}, fmt.Errorf("encrypt record for update: %w", err)
	}
	if err = r.records.SaveRecord(ctx, persisted); err != nil {
		return models.Record{}, fmt.Errorf("save updated record: %w", err)
	}

	return record, nil
}

func (r *recordService) Get(ctx context.Context, sess *Session, id string) (models.Record, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return models.Record{}, err
	}

	persisted, err := r.records.GetRecord(ctx, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("load record: %w", err)
	}
	return r.fromPersisted(persisted, key)
}

func (r *recordService) ListByCategory(ctx context.Context, sess *Session, category models.Category) ([]models.Record, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return nil, err
	}

	persisted, err := r.records.GetRecordsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load records by category: %w", err)
	}

	out := make([]models.Record, 0, len(persisted))
	for _, row := range persisted {
		record, err := r.fromPersisted(row, key)
		if err != nil {
			return nil, fmt.Errorf("decrypt record %s: %w", row.ID, err)
		}
		out = append(out, record)
	}
	return out, nil
}

func (r *recordService) Search(ctx context.Context, sess *Session, query string) ([]models.Record, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	byCategory, err := r.records.GetAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records for search: %w", err)
	}

	var out []models.Record
	for _, category := range models.Categories() {
		sensitive := r.schema.SensitiveFields(category)
		for _, row := range byCategory[category] {
			if !matchesQuery(row, sensitive, query) {
				continue
			}
			record, err := r.fromPersisted(row, key)
			if err != nil {
				return nil, fmt.Errorf("decrypt record %s: %w", row.ID, err)
			}
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *recordService) Delete(ctx context.Context, sess *Session, id string) error {
	if _, err := sessionKey(sess); err != nil {
		return err
	}

	record, err := r.records.GetRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("load record for delete: %w", err)
	}

	for _, attachment := range record.Attachments {
		if err = r.blobs.DeleteBlob(ctx, attachment.ID); err != nil {
			return fmt.Errorf("delete attachment blob %s: %w", attachment.ID, err)
		}
	}

	if err = r.records.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (r *recordService) Attach(ctx context.Context, sess *Session, recordID, name, mimeType string, data []byte) (models.Attachment, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return models.Attachment{}, err
	}
	if int64(len(data)) > r.maxSize {
		return models.Attachment{}, ErrAttachmentTooLarge
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	record, err := r.records.GetRecord(ctx, recordID)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("load record for attach: %w", err)
	}

	envelope, err := crypto.EncryptFile(data, key)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("encrypt attachment: %w", err)
	}
	envelopeJSON, err := json.Marshal(envelope)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("marshal attachment envelope: %w", err)
	}

	attachment := models.Attachment{
		ID:         newID(),
		Name:       name,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UnixMilli(),
	}
	if err = r.validator.Validate(ctx, attachment); err != nil {
		return models.Attachment{}, fmt.Errorf("validate attachment: %w", err)
	}

	if err = r.blobs.PutBlob(ctx, attachment.ID, envelopeJSON); err != nil {
		return models.Attachment{}, fmt.Errorf("store attachment blob: %w", err)
	}

	record.Attachments = append(record.Attachments, attachment)
	record.UpdatedAt = attachment.UploadedAt
	if err = r.records.SaveRecord(ctx, record); err != nil {
		return models.Attachment{}, fmt.Errorf("save record with attachment: %w", err)
	}

	return attachment, nil
}

func (r *recordService) OpenAttachment(ctx context.Context, sess *Session, recordID, attachmentID string) ([]byte, string, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return nil, "", err
	}

	record, err := r.records.GetRecord(ctx, recordID)
	if err != nil {
		return nil, "", fmt.Errorf("load record for attachment: %w", err)
	}

	attachment, found := findAttachment(record, attachmentID)
	if !found {
		return nil, "", ErrAttachmentNotFound
	}

	envelopeJSON, err := r.blobs.GetBlob(ctx, attachmentID)
	if err != nil {
		return nil, "", fmt.Errorf("load attachment blob: %w", err)
	}

	var envelope models.FileEnvelope
	if err = json.Unmarshal(envelopeJSON, &envelope); err != nil {
		return nil, "", fmt.Errorf("unmarshal attachment envelope: %w", err)
	}

	data, err := crypto.DecryptFile(envelope, key)
	if err != nil {
		return nil, "", fmt.Errorf("decrypt attachment: %w", err)
	}
	return data, attachment.MimeType, nil
}

func (r *recordService) Detach(ctx context.Context, sess *Session, recordID, attachmentID string) error {
	if _, err := sessionKey(sess); err != nil {
		return err
	}

	record, err := r.records.GetRecord(ctx, recordID)
	if err != nil {
		return fmt.Errorf("load record for detach: %w", err)
	}

	if _, found := findAttachment(record, attachmentID); !found {
		return ErrAttachmentNotFound
	}

	kept := record.Attachments[:0]
	for _, attachment := range record.Attachments {
		if attachment.ID != attachmentID {
			kept = append(kept, attachment)
		}
	}
	record.Attachments = kept
	record.UpdatedAt = time.Now().UnixMilli()

	if err = r.blobs.DeleteBlob(ctx, attachmentID); err != nil {
		return fmt.Errorf("delete attachment blob: %w", err)
	}
	if err = r.records.SaveRecord(ctx, record); err != nil {
		return fmt.Errorf("save record without attachment: %w", err)
	}
	return nil
}

// toPersisted encrypts exactly the category's sensitive fields and leaves
// every other field untouched. One-to-one on fields: nothing is reordered,
// merged or dropped.
func (r *recordService) toPersisted(record models.Record, key *crypto.KeyCapability) (models.Record, error) {
	sensitive := r.schema.SensitiveFields(record.Category)

	out := record.Clone()
	for name, value := range record.Fields {
		if _, ok := sensitive[name]; !ok {
			continue
		}
		encrypted, err := crypto.EncryptField(value, key)
		if err != nil {
			return models.Record{}, fmt.Errorf("encrypt field %q: %w", name, err)
		}
		out.Fields[name] = encrypted
	}
	return out, nil
}

// fromPersisted is the inverse. Field decryption is tolerant: a bad field
// yields the placeholder value so one corrupted field never loses the
// record. Only a destroyed capability turns into an error.
func (r *recordService) fromPersisted(record models.Record, key *crypto.KeyCapability) (models.Record, error) {
	sensitive := r.schema.SensitiveFields(record.Category)

	out := record.Clone()
	for name, value := range record.Fields {
		if _, ok := sensitive[name]; !ok {
			continue
		}
		decrypted, err := crypto.DecryptField(value, key, crypto.TolerantPlaceholder)
		if err != nil {
			return models.Record{}, fmt.Errorf("decrypt field %q: %w", name, err)
		}
		out.Fields[name] = decrypted
	}
	return out, nil
}

func matchesQuery(record models.Record, sensitive map[string]struct{}, query string) bool {
	for name, value := range record.Fields {
		if _, ok := sensitive[name]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}

func findAttachment(record models.Record, attachmentID string) (models.Attachment, bool) {
	for _, attachment := range record.Attachments {
		if attachment.ID == attachmentID {
			return attachment, true
		}
	}
	return models.Attachment{}, false
}

// sessionKey extracts the key capability from sess, refreshing its activity
// timestamp. Returns ErrNotAuthenticated for a nil or destroyed session.
func sessionKey(sess *Session) (*crypto.KeyCapability, error) {
	if sess == nil {
		return nil, ErrNotAuthenticated
	}
	key := sess.Key()
	if key == nil {
		return nil, ErrNotAuthenticated
	}
	sess.Touch()
	return key, nil
}
