// SPDX-License-Identifier: Apache-2.0
// Copyright 2025 e-vault authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ivSize is the AES-GCM nonce length used by every envelope in the vault.
const ivSize = 12

// ErrCapabilityDestroyed is returned by codec operations after the
// capability's Destroy method has been called.
var ErrCapabilityDestroyed = errors.New("key capability destroyed")

// KeyCapability is an opaque symmetric encrypt/decrypt capability. It is
// created only by [KeyChainService.DeriveCapability], lives exclusively in
// process memory, and exposes no way to read the underlying key bytes.
//
// A capability is immutable once issued and safe for concurrent use by the
// codec functions. The session manager that owns it must call Destroy when
// the session ends; after that every operation fails with
// [ErrCapabilityDestroyed].
type KeyCapability struct {
	key  []byte
	aead cipher.AEAD
}

func newKeyCapability(key []byte) (*KeyCapability, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &KeyCapability{key: key, aead: aead}, nil
}

// Destroy wipes the key bytes and disables the capability. Idempotent.
//
// The AEAD instance internally retains expanded round keys that cannot be
// reached from here; wiping the source key and dropping the reference is the
// closest Go gets to zeroisation.
func (c *KeyCapability) Destroy() {
	for i := range c.key {
		c.key[i] = 0
	}
	c.key = nil
	c.aead = nil
}

// destroyed reports whether Destroy has been called.
func (c *KeyCapability) destroyed() bool {
	return c == nil || c.aead == nil
}

// seal encrypts plaintext under a fresh random IV and returns (iv,
// ciphertext-with-tag). Every call draws a new IV; IV reuse under one key
// would be fatal for GCM.
func (c *KeyCapability) seal(plaintext []byte) (iv, ciphertext []byte, err error) {
	if c.destroyed() {
		return nil, nil, ErrCapabilityDestroyed
	}

	iv = make([]byte, ivSize)
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, fmt.Errorf("generate iv: %w", err)
	}

	return iv, c.aead.Seal(nil, iv, plaintext, nil), nil
}

// open decrypts ciphertext under iv, verifying the authentication tag.
func (c *KeyCapability) open(iv, ciphertext []byte) ([]byte, error) {
	if c.destroyed() {
		return nil, ErrCapabilityDestroyed
	}
	if len(iv) != ivSize {
		return nil, fmt.Errorf("bad iv length: %d", len(iv))
	}

	plaintext, err := c.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}
