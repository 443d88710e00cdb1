package models

import "encoding/json"

// BackupVersion is the version marker written into every exported backup
// payload and required on import.
const BackupVersion = "1.0"

// BackupPayload is the decrypted content of a backup file: the credential
// row plus every record, keyed by category. The whole payload is serialized
// to JSON and wrapped in a single field-style envelope under a key derived
// from the backup password.
type BackupPayload struct {
	// Version must equal [BackupVersion].
	Version string `json:"version"`

	// Timestamp is the RFC 3339 export time.
	Timestamp string `json:"timestamp"`

	// Data is the full dump. Records stay in persisted (encrypted) form;
	// the backup envelope is a second layer on top of them.
	Data BackupData `json:"data"`
}

// BackupData carries the actual dump inside a backup payload.
type BackupData struct {
	Credential Credential            `json:"credential"`
	Records    map[Category][]Record `json:"records"`

	// Blobs maps attachment IDs to their serialized file envelopes, so a
	// restored vault can repopulate the blob store.
	Blobs map[string]json.RawMessage `json:"blobs,omitempty"`
}
