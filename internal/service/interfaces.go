package service

import (
	"context"
	"time"

	"github.com/abbasl7/e-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

// SessionService owns the credential lifecycle and the single active
// session. All state transitions (setup, login, password change/reset,
// logout) are serialized relative to each other; concurrent calls never
// leave the key capability half-replaced.
type SessionService interface {
	// Setup creates the vault credential and opens the first session.
	// Fails with ErrAlreadyInitialized if a credential already exists.
	// Security answers are lower-cased before hashing so they compare
	// case-insensitively on reset.
	Setup(ctx context.Context, username, password, question1, answer1, question2, answer2 string) (*Session, error)

	// Login verifies password against the stored credential and opens a
	// session. Fails with ErrNoAccount if the vault has never been set up,
	// ErrInvalidCredentials on a verification mismatch.
	Login(ctx context.Context, password string) (*Session, error)

	// ChangePassword re-derives the verification value under the same salt
	// and the new password, persists it, and swaps the active session's key
	// capability. Fails with ErrInvalidCredentials if oldPassword fails
	// verification. Existing record envelopes are NOT re-encrypted; they
	// stay readable only under the old password's key.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// ResetPassword verifies both security answers and updates the
	// verification value the same way ChangePassword does. Fails with
	// ErrWrongAnswer if either answer mismatches, leaving the credential
	// untouched. Carries the same non-re-encryption hazard, compounded:
	// the caller may not know the old password at all, so data encrypted
	// before the reset becomes permanently unreadable.
	ResetPassword(ctx context.Context, answer1, answer2, newPassword string) error

	// Logout destroys the active session and its key capability.
	// Idempotent; safe to call with no session open.
	Logout()

	// Current returns the active session, or nil when unauthenticated.
	Current() *Session

	// SecurityQuestions returns the two stored security questions so the
	// reset flow can show them before authentication. Fails with
	// ErrNoAccount if the vault has never been set up.
	SecurityQuestions(ctx context.Context) (question1, question2 string, err error)

	// ExpireIfInactive logs the active session out if it has been idle
	// longer than timeout as of now, and reports whether it did. Safe to
	// call redundantly and with no session open.
	ExpireIfInactive(now time.Time, timeout time.Duration) bool
}

// RecordService manages vault records and their attachments. Plaintext
// records cross this boundary; stored rows only ever hold envelope form.
// Every method takes the session explicitly and refreshes its activity
// timestamp.
type RecordService interface {
	// Create assigns a fresh ID and timestamps, encrypts the category's
	// sensitive fields, and persists the record. Returns the stored record
	// in plaintext form. Fails with ErrUnknownCategory for a category not
	// in the schema table.
	Create(ctx context.Context, sess *Session, record models.Record) (models.Record, error)

	// Update re-encrypts and persists an existing record, stamping
	// UpdatedAt and preserving CreatedAt and attachments.
	Update(ctx context.Context, sess *Session, record models.Record) (models.Record, error)

	// Get loads one record and decrypts its sensitive fields. A field that
	// fails to decrypt surfaces as the placeholder value, never as an
	// error; callers must tolerate partially decrypted records.
	Get(ctx context.Context, sess *Session, id string) (models.Record, error)

	// ListByCategory loads all records of one category, newest first,
	// decrypted the same tolerant way Get decrypts.
	ListByCategory(ctx context.Context, sess *Session, category models.Category) ([]models.Record, error)

	// Search matches query case-insensitively against the non-sensitive
	// field values of every record and returns decrypted matches.
	// Sensitive fields are never searched; their plaintext is not
	// available without decrypting the whole vault.
	Search(ctx context.Context, sess *Session, query string) ([]models.Record, error)

	// Delete removes a record and every attachment blob it owns.
	Delete(ctx context.Context, sess *Session, id string) error

	// Attach encrypts data and stores it as a new attachment on the
	// record. Fails with ErrAttachmentTooLarge when data exceeds the
	// configured cap.
	Attach(ctx context.Context, sess *Session, recordID, name, mimeType string, data []byte) (models.Attachment, error)

	// OpenAttachment loads and decrypts one attachment payload. Decryption
	// failures propagate: a corrupted document blocks the action that
	// requested it instead of substituting content.
	OpenAttachment(ctx context.Context, sess *Session, recordID, attachmentID string) (data []byte, mimeType string, err error)

	// Detach removes one attachment and its blob from the record.
	Detach(ctx context.Context, sess *Session, recordID, attachmentID string) error
}

// BackupService exports and restores the whole vault as a single encrypted
// artifact. The backup key is derived from a backup password and a fixed,
// application-wide salt, so backup confidentiality rests entirely on the
// password; see DESIGN.md for why the fixed salt is kept.
type BackupService interface {
	// Export dumps the credential, every record in envelope form, and
	// every attachment blob, encrypts the dump under backupPassword, and
	// returns the serialized backup artifact.
	Export(ctx context.Context, backupPassword string) (string, error)

	// Import decrypts and validates a backup artifact. Fails with
	// ErrInvalidBackupPassword when decryption fails (a wrong password and
	// a corrupted file are indistinguishable) and ErrMalformedBackup when
	// the decrypted payload lacks the version or data markers.
	Import(ctx context.Context, envelope, backupPassword string) (*models.BackupPayload, error)

	// Restore writes a previously imported payload into the stores,
	// replacing the credential and any records or blobs that share IDs
	// with the backup's.
	Restore(ctx context.Context, payload *models.BackupPayload) error
}
