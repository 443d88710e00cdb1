package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/abbasl7/e-vault/models"
)

func TestFile_RoundTrip(t *testing.T) {
	key := testCapability(t)

	payloads := [][]byte{
		[]byte("%PDF-1.4 tiny document"),
		bytes.Repeat([]byte{0x00, 0xFF, 0x10}, 50_000),
		{},
	}

	for _, payload := range payloads {
		envelope, err := EncryptFile(payload, key)
		if err != nil {
			t.Fatalf("EncryptFile error: %v", err)
		}

		if _, err := hex.DecodeString(envelope.IV); err != nil {
			t.Fatalf("file iv is not hex: %v", err)
		}
		if _, err := base64.StdEncoding.DecodeString(envelope.Data); err != nil {
			t.Fatalf("file ciphertext is not base64: %v", err)
		}

		plain, err := DecryptFile(envelope, key)
		if err != nil {
			t.Fatalf("DecryptFile error: %v", err)
		}
		if !bytes.Equal(plain, payload) {
			t.Fatalf("round trip mismatch: %d bytes in, %d bytes out", len(payload), len(plain))
		}
	}
}

func TestFile_IndependentIVs(t *testing.T) {
	key := testCapability(t)

	payload := []byte("same file twice")

	e1, err := EncryptFile(payload, key)
	if err != nil {
		t.Fatalf("EncryptFile error: %v", err)
	}
	e2, err := EncryptFile(payload, key)
	if err != nil {
		t.Fatalf("EncryptFile error: %v", err)
	}

	if e1.IV == e2.IV {
		t.Fatalf("expected independent IVs for two encryptions")
	}
	if e1.Data == e2.Data {
		t.Fatalf("expected different ciphertexts for two encryptions")
	}
}

// File decryption has no tolerant mode: any tampering must surface as an
// error, in contrast to the field codec's placeholder behaviour.
func TestDecryptFile_TamperPropagates(t *testing.T) {
	key := testCapability(t)

	envelope, err := EncryptFile([]byte("important document"), key)
	if err != nil {
		t.Fatalf("EncryptFile error: %v", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Data)
	if err != nil {
		t.Fatalf("decode ciphertext: %v", err)
	}
	ciphertext[0] ^= 0x01
	tampered := models.FileEnvelope{
		IV:   envelope.IV,
		Data: base64.StdEncoding.EncodeToString(ciphertext),
	}

	if _, err := DecryptFile(tampered, key); err == nil {
		t.Fatalf("expected tampered file decryption to fail")
	}

	iv, err := hex.DecodeString(envelope.IV)
	if err != nil {
		t.Fatalf("decode iv: %v", err)
	}
	iv[0] ^= 0x01
	tampered = models.FileEnvelope{
		IV:   hex.EncodeToString(iv),
		Data: envelope.Data,
	}

	if _, err := DecryptFile(tampered, key); err == nil {
		t.Fatalf("expected bad-iv file decryption to fail")
	}
}

func TestDecryptFile_MalformedEnvelope(t *testing.T) {
	key := testCapability(t)

	for _, envelope := range []models.FileEnvelope{
		{IV: "zzzz", Data: "aGVsbG8="},
		{IV: "00112233445566778899aabb", Data: "not!base64"},
		{IV: "00", Data: "aGVsbG8="},
	} {
		if _, err := DecryptFile(envelope, key); err == nil {
			t.Fatalf("expected malformed envelope %+v to fail", envelope)
		}
	}
}
