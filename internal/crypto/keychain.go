// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// PBKDF2 tuning parameters. Stored in the struct so tests can lower the
	// iteration count; production code always uses the defaults, which are
	// part of the vault format.
	iterations int
	keyLen     int
}

// NewKeyChainService constructs a [KeyChainService] with the parameters the
// vault format was created with:
//   - PBKDF2-HMAC-SHA256
//   - 100,000 iterations
//   - 32-byte (256-bit) output
func NewKeyChainService() KeyChainService {
	return &keyChainService{
		iterations: 100_000,
		keyLen:     32, // 256 bits
	}
}

// GenerateSaltHex implements [KeyChainService]. It reads 16 random bytes
// from the OS CSPRNG and returns their hex encoding.
func (k *keyChainService) GenerateSaltHex() (string, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

// DeriveVerification implements [KeyChainService]. The salt input to PBKDF2
// is the UTF-8 encoding of saltHex itself, NOT the decoded bytes — that is
// what domain-separates the verification value from the encryption key.
func (k *keyChainService) DeriveVerification(password, saltHex string) string {
	sum := pbkdf2.Key([]byte(password), []byte(saltHex), k.iterations, k.keyLen, sha256.New)
	return hex.EncodeToString(sum)
}

// DeriveCapability implements [KeyChainService]. The salt input to PBKDF2 is
// the raw 16 bytes saltHex decodes to.
func (k *keyChainService) DeriveCapability(password, saltHex string) (*KeyCapability, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, fmt.Errorf("decode salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, k.iterations, k.keyLen, sha256.New)
	return newKeyCapability(key)
}
