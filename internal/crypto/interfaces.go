// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

// Package crypto implements the zero-knowledge encryption engine of the
// vault: password-based key derivation, the opaque key capability, and the
// field and file codecs that turn plaintext values into storable envelopes.
//
// Nothing in this package touches persistent storage. Callers obtain a
// [KeyCapability] through [KeyChainService] and pass it to the codec
// functions; the capability itself never leaves process memory.
package crypto

// KeyChainService derives verification values and encryption capabilities
// from the master password and a salt.
//
// The salt always travels as the hex string of 16 random bytes, but the two
// derivations consume it in two deliberately different byte encodings:
// the verification value hashes the UTF-8 bytes of the hex string itself,
// while the encryption capability hashes the raw bytes the string decodes
// to. The two PBKDF2 outputs are therefore cryptographically independent,
// so the stored verification value reveals nothing about the key. Existing
// vaults depend on this exact split; do not "simplify" it.
type KeyChainService interface {
	// GenerateSaltHex returns a fresh 16-byte salt from the OS CSPRNG,
	// hex-encoded. Returns an error if the random read fails.
	GenerateSaltHex() (string, error)

	// DeriveVerification derives the hex-encoded 32-byte verification value
	// for password under saltHex. Deterministic; never fails.
	DeriveVerification(password, saltHex string) string

	// DeriveCapability derives the AES-256-GCM encryption capability for
	// password under the raw bytes saltHex decodes to. Returns an error only
	// if saltHex is not valid hex.
	DeriveCapability(password, saltHex string) (*KeyCapability, error)
}
