// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package crypto

import (
	"encoding/json"
	"fmt"
)

// DecryptionErrorPlaceholder is the literal value a tolerant decrypt yields
// for a field that fails authentication or has a malformed envelope. The UI
// renders it verbatim, so one corrupted optional field never blocks a whole
// record.
const DecryptionErrorPlaceholder = "[Decryption Error]"

// DecryptPolicy selects how [DecryptField] reacts to a failure.
type DecryptPolicy int

const (
	// Strict propagates decryption failures as errors. Used wherever
	// substituting content would be worse than failing the operation
	// (attachments, backup import).
	Strict DecryptPolicy = iota

	// TolerantPlaceholder recovers locally by returning
	// [DecryptionErrorPlaceholder]. Used for record text fields.
	TolerantPlaceholder
)

// fieldEnvelope is the serialized form of one encrypted string value. Both
// members marshal as decimal byte arrays, not base64 — the format existing
// vaults were written in.
type fieldEnvelope struct {
	Ciphertext decimalBytes `json:"ciphertext"`
	IV         decimalBytes `json:"iv"`
}

// decimalBytes marshals a byte slice as a JSON array of numbers
// ([12,255,0,...]) instead of encoding/json's default base64 string.
type decimalBytes []byte

func (b decimalBytes) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(b))
	for i, v := range b {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

func (b *decimalBytes) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte value out of range: %d", v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// EncryptField encrypts one string value into its serialized envelope.
//
// The empty string is returned unchanged with no envelope: optional fields
// round-trip for free and an absent value stays recognisably absent. Every
// non-empty call draws a fresh random IV.
func EncryptField(value string, key *KeyCapability) (string, error) {
	if value == "" {
		return "", nil
	}

	iv, ciphertext, err := key.seal([]byte(value))
	if err != nil {
		return "", fmt.Errorf("encrypt field: %w", err)
	}

	envelope, err := json.Marshal(fieldEnvelope{Ciphertext: ciphertext, IV: iv})
	if err != nil {
		return "", fmt.Errorf("marshal field envelope: %w", err)
	}
	return string(envelope), nil
}

// DecryptField decrypts a serialized envelope back into the plaintext value.
// The empty string decrypts to the empty string.
//
// Failure handling follows policy: [Strict] returns the error,
// [TolerantPlaceholder] swallows it and returns
// [DecryptionErrorPlaceholder]. A destroyed capability is an error under
// either policy — that is a caller bug, not data corruption.
func DecryptField(serialized string, key *KeyCapability, policy DecryptPolicy) (string, error) {
	if serialized == "" {
		return "", nil
	}
	if key.destroyed() {
		return "", ErrCapabilityDestroyed
	}

	plaintext, err := decryptFieldEnvelope(serialized, key)
	if err != nil {
		if policy == TolerantPlaceholder {
			return DecryptionErrorPlaceholder, nil
		}
		return "", err
	}
	return plaintext, nil
}

func decryptFieldEnvelope(serialized string, key *KeyCapability) (string, error) {
	var envelope fieldEnvelope
	if err := json.Unmarshal([]byte(serialized), &envelope); err != nil {
		return "", fmt.Errorf("unmarshal field envelope: %w", err)
	}

	plaintext, err := key.open(envelope.IV, envelope.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("open field envelope: %w", err)
	}
	return string(plaintext), nil
}
