// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/abbasl7/e-vault/models"
)

// EncryptFile encrypts a whole attachment payload in one call and returns
// its envelope. The IV is drawn independently of any field-codec IV.
//
// The envelope encodings (hex IV, base64 ciphertext) differ from the field
// codec's decimal arrays. That asymmetry predates this implementation and is
// preserved so existing vault attachments stay readable; see DESIGN.md.
//
// Payload size is not checked here — files are bounded by the attachment
// size cap the record service enforces before calling in.
func EncryptFile(data []byte, key *KeyCapability) (models.FileEnvelope, error) {
	iv, ciphertext, err := key.seal(data)
	if err != nil {
		return models.FileEnvelope{}, fmt.Errorf("encrypt file: %w", err)
	}

	return models.FileEnvelope{
		IV:   hex.EncodeToString(iv),
		Data: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// DecryptFile decrypts an attachment envelope back into the plaintext
// payload. Unlike the field codec there is no tolerant mode: a corrupted
// document must block the preview/download that requested it, never
// silently substitute content.
func DecryptFile(envelope models.FileEnvelope, key *KeyCapability) ([]byte, error) {
	iv, err := hex.DecodeString(envelope.IV)
	if err != nil {
		return nil, fmt.Errorf("decode file iv: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Data)
	if err != nil {
		return nil, fmt.Errorf("decode file ciphertext: %w", err)
	}

	plaintext, err := key.open(iv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("open file envelope: %w", err)
	}
	return plaintext, nil
}
