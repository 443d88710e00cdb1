package crypto

import (
	"encoding/json"
	"strings"
	"testing"
)

func testCapability(t *testing.T) *KeyCapability {
	t.Helper()

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 7)
	}
	capability, err := newKeyCapability(key)
	if err != nil {
		t.Fatalf("newKeyCapability error: %v", err)
	}
	return capability
}

func TestEncryptField_EmptyIsNoOp(t *testing.T) {
	key := testCapability(t)

	sealed, err := EncryptField("", key)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}
	if sealed != "" {
		t.Fatalf("empty value must encrypt to empty string, got %q", sealed)
	}

	plain, err := DecryptField("", key, Strict)
	if err != nil {
		t.Fatalf("DecryptField error: %v", err)
	}
	if plain != "" {
		t.Fatalf("empty envelope must decrypt to empty string, got %q", plain)
	}
}

func TestField_RoundTrip(t *testing.T) {
	key := testCapability(t)

	values := []string{
		"1234 5678 9012 3456",
		"многоязычный текст",
		strings.Repeat("x", 4096),
		`{"nested":"json"}`,
	}

	for _, value := range values {
		sealed, err := EncryptField(value, key)
		if err != nil {
			t.Fatalf("EncryptField(%q) error: %v", value, err)
		}

		plain, err := DecryptField(sealed, key, Strict)
		if err != nil {
			t.Fatalf("DecryptField error: %v", err)
		}
		if plain != value {
			t.Fatalf("round trip mismatch: got %q, want %q", plain, value)
		}
	}
}

func TestField_EnvelopeIsDecimalArrays(t *testing.T) {
	key := testCapability(t)

	sealed, err := EncryptField("value", key)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	// The serialized form is the persisted representation; it must be a
	// JSON object with integer arrays, never base64 strings.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(sealed), &raw); err != nil {
		t.Fatalf("envelope is not a JSON object: %v", err)
	}
	for _, member := range []string{"ciphertext", "iv"} {
		body, ok := raw[member]
		if !ok {
			t.Fatalf("envelope missing %q member", member)
		}
		var ints []int
		if err := json.Unmarshal(body, &ints); err != nil {
			t.Fatalf("envelope member %q is not an integer array: %v", member, err)
		}
	}

	var envelope fieldEnvelope
	if err := json.Unmarshal([]byte(sealed), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if len(envelope.IV) != 12 {
		t.Fatalf("iv length = %d, want 12", len(envelope.IV))
	}
}

func TestField_FreshIVPerEncryption(t *testing.T) {
	key := testCapability(t)

	s1, err := EncryptField("same plaintext", key)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}
	s2, err := EncryptField("same plaintext", key)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	if s1 == s2 {
		t.Fatalf("two encryptions of the same plaintext must differ")
	}
}

func TestDecryptField_TamperedEnvelope(t *testing.T) {
	key := testCapability(t)

	sealed, err := EncryptField("authentic value", key)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	var envelope fieldEnvelope
	if err := json.Unmarshal([]byte(sealed), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(e *fieldEnvelope)
	}{
		{"flip ciphertext bit", func(e *fieldEnvelope) { e.Ciphertext[0] ^= 0x01 }},
		{"flip tag bit", func(e *fieldEnvelope) { e.Ciphertext[len(e.Ciphertext)-1] ^= 0x80 }},
		{"flip iv bit", func(e *fieldEnvelope) { e.IV[3] ^= 0x10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := fieldEnvelope{
				Ciphertext: append(decimalBytes(nil), envelope.Ciphertext...),
				IV:         append(decimalBytes(nil), envelope.IV...),
			}
			tt.mutate(&mutated)
			body, err := json.Marshal(mutated)
			if err != nil {
				t.Fatalf("marshal mutated envelope: %v", err)
			}

			// Tolerant policy recovers into the placeholder, never into the
			// original or a plausible-looking corruption.
			plain, err := DecryptField(string(body), key, TolerantPlaceholder)
			if err != nil {
				t.Fatalf("tolerant DecryptField returned error: %v", err)
			}
			if plain != DecryptionErrorPlaceholder {
				t.Fatalf("tolerant decrypt = %q, want placeholder", plain)
			}

			// Strict policy propagates.
			if _, err := DecryptField(string(body), key, Strict); err == nil {
				t.Fatalf("strict decrypt of tampered envelope must fail")
			}
		})
	}
}

func TestDecryptField_MalformedEnvelope(t *testing.T) {
	key := testCapability(t)

	for _, serialized := range []string{
		"not json",
		`{"ciphertext":"base64-not-allowed","iv":[1,2,3]}`,
		`{"ciphertext":[1,2,300],"iv":[0]}`,
		`{"iv":[1,2,3,4,5,6,7,8,9,10,11,12]}`,
	} {
		plain, err := DecryptField(serialized, key, TolerantPlaceholder)
		if err != nil {
			t.Fatalf("tolerant DecryptField(%q) returned error: %v", serialized, err)
		}
		if plain != DecryptionErrorPlaceholder {
			t.Fatalf("tolerant decrypt of %q = %q, want placeholder", serialized, plain)
		}

		if _, err := DecryptField(serialized, key, Strict); err == nil {
			t.Fatalf("strict decrypt of %q must fail", serialized)
		}
	}
}

func TestDecryptField_WrongKey(t *testing.T) {
	key := testCapability(t)

	otherBytes := make([]byte, 32)
	for i := range otherBytes {
		otherBytes[i] = byte(255 - i)
	}
	other, err := newKeyCapability(otherBytes)
	if err != nil {
		t.Fatalf("newKeyCapability error: %v", err)
	}

	sealed, err := EncryptField("secret", key)
	if err != nil {
		t.Fatalf("EncryptField error: %v", err)
	}

	plain, err := DecryptField(sealed, other, TolerantPlaceholder)
	if err != nil {
		t.Fatalf("tolerant DecryptField returned error: %v", err)
	}
	if plain != DecryptionErrorPlaceholder {
		t.Fatalf("decrypt under wrong key = %q, want placeholder", plain)
	}
}
