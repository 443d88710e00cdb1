package crypto

import (
	"encoding/hex"
	"testing"
)

func TestGenerateSaltHex_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService()

	s1, err := svc.GenerateSaltHex()
	if err != nil {
		t.Fatalf("GenerateSaltHex error: %v", err)
	}
	s2, err := svc.GenerateSaltHex()
	if err != nil {
		t.Fatalf("GenerateSaltHex error: %v", err)
	}

	if len(s1) != 32 {
		t.Fatalf("salt hex length = %d, want 32", len(s1))
	}
	if _, err := hex.DecodeString(s1); err != nil {
		t.Fatalf("salt is not valid hex: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDeriveVerification_Deterministic(t *testing.T) {
	svc := NewKeyChainService()

	password := "correct-horse-battery-staple"
	salt := "000102030405060708090a0b0c0d0e0f"

	v1 := svc.DeriveVerification(password, salt)
	v2 := svc.DeriveVerification(password, salt)

	if len(v1) != 64 {
		t.Fatalf("verification hex length = %d, want 64", len(v1))
	}
	if v1 != v2 {
		t.Fatalf("expected verification value to be deterministic")
	}

	if v3 := svc.DeriveVerification("other password", salt); v3 == v1 {
		t.Fatalf("expected different passwords to verify differently")
	}
	if v4 := svc.DeriveVerification(password, "0f0e0d0c0b0a09080706050403020100"); v4 == v1 {
		t.Fatalf("expected different salts to verify differently")
	}
}

// The verification value and the encryption key derive from the same
// password and the same logical salt but through two different salt byte
// encodings. Feeding the verification value back in as an AES key must not
// open anything the real capability sealed.
func TestDeriveVerification_IndependentOfCapability(t *testing.T) {
	svc := NewKeyChainService()

	password := "correct-horse-battery-staple"
	salt := "000102030405060708090a0b0c0d0e0f"

	capability, err := svc.DeriveCapability(password, salt)
	if err != nil {
		t.Fatalf("DeriveCapability error: %v", err)
	}

	sealed, err := EncryptField("top secret", capability)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	verificationBytes, err := hex.DecodeString(svc.DeriveVerification(password, salt))
	if err != nil {
		t.Fatalf("decode verification value: %v", err)
	}

	impostor, err := newKeyCapability(verificationBytes)
	if err != nil {
		t.Fatalf("newKeyCapability error: %v", err)
	}

	if _, err := DecryptField(sealed, impostor, Strict); err == nil {
		t.Fatalf("expected decryption under the verification value to fail")
	}
}

func TestDeriveCapability_MalformedSalt(t *testing.T) {
	svc := NewKeyChainService()

	if _, err := svc.DeriveCapability("pw", "not-hex!"); err == nil {
		t.Fatalf("expected error for malformed salt")
	}
}

func TestDeriveCapability_SamePasswordSameKey(t *testing.T) {
	svc := NewKeyChainService()

	salt := "a0a1a2a3a4a5a6a7a8a9aaabacadaeaf"

	c1, err := svc.DeriveCapability("pw", salt)
	if err != nil {
		t.Fatalf("DeriveCapability error: %v", err)
	}
	c2, err := svc.DeriveCapability("pw", salt)
	if err != nil {
		t.Fatalf("DeriveCapability error: %v", err)
	}

	// Two independently derived capabilities must interoperate.
	sealed, err := EncryptField("hello", c1)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}
	plain, err := DecryptField(sealed, c2, Strict)
	if err != nil {
		t.Fatalf("DecryptField error: %v", err)
	}
	if plain != "hello" {
		t.Fatalf("round trip mismatch: %q", plain)
	}
}

func TestKeyCapability_Destroy(t *testing.T) {
	svc := NewKeyChainService()

	capability, err := svc.DeriveCapability("pw", "a0a1a2a3a4a5a6a7a8a9aaabacadaeaf")
	if err != nil {
		t.Fatalf("DeriveCapability error: %v", err)
	}

	sealed, err := EncryptField("gone soon", capability)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	capability.Destroy()
	capability.Destroy() // idempotent

	if _, err := EncryptField("more", capability); err == nil {
		t.Fatalf("expected encryption after Destroy to fail")
	}
	if _, err := DecryptField(sealed, capability, TolerantPlaceholder); err == nil {
		t.Fatalf("expected decryption after Destroy to fail even under tolerant policy")
	}
}
