package models

// FileEnvelope is the encrypted form of one binary attachment payload.
//
// The textual encodings differ from the field envelope on purpose: existing
// vaults store attachment IVs as hex and ciphertext as base64, and the
// formats must stay readable. Both carry the GCM tag inside the ciphertext.
type FileEnvelope struct {
	// IV is the hex encoding of the 12-byte GCM nonce.
	IV string `json:"iv"`

	// Data is the standard-base64 encoding of ciphertext plus tag.
	Data string `json:"data"`
}

// Attachment describes one encrypted file attached to a record. Name, MIME
// type, size and upload time are plaintext so attachment lists render without
// touching the key; the payload itself is opaque until explicitly opened.
type Attachment struct {
	// ID is the UUID of the attachment; it doubles as the blob-store key.
	ID string `json:"id"`

	// Name is the original file name.
	Name string `json:"name"`

	// MimeType is the declared MIME type of the decrypted payload.
	MimeType string `json:"type"`

	// Size is the plaintext size in bytes.
	Size int64 `json:"size"`

	// UploadedAt is Unix milliseconds.
	UploadedAt int64 `json:"uploadedAt"`

	// Encrypted holds the envelope metadata for the payload. The ciphertext
	// itself lives in the blob store under ID; Data is empty on the record
	// row and populated only when the blob is loaded.
	Encrypted FileEnvelope `json:"encrypted"`
}
