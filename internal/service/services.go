// Package service implements the vault engine: the credential and session
// manager, the record envelope manager, and the backup codec. It sits
// between the TUI and the stores; plaintext never crosses the store
// boundary and key material never leaves the session.
package service

import (
	"github.com/abbasl7/e-vault/internal/crypto"
	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/internal/schema"
	"github.com/abbasl7/e-vault/internal/store"
)

// Services aggregates every vault service behind one constructor.
type Services struct {
	SessionService SessionService
	RecordService  RecordService
	BackupService  BackupService
}

// NewServices wires the services over the given storages. The schema table
// decides which record fields are sensitive; maxAttachmentSize bounds
// attachment payloads in bytes.
func NewServices(storages *store.Storages, table schema.Table, maxAttachmentSize int64, log *logger.Logger) *Services {
	keychain := crypto.NewKeyChainService()

	return &Services{
		SessionService: NewSessionService(storages.CredentialRepository, keychain, log),
		RecordService:  NewRecordService(storages.RecordRepository, storages.BlobRepository, table, maxAttachmentSize, log),
		BackupService:  NewBackupService(storages.CredentialRepository, storages.RecordRepository, storages.BlobRepository, keychain, log),
	}
}
