package storage

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

var gcmMagic = []byte("GCM3NCR0")

const (
	saltSize         = 16
	nonceSize        = 12
	tagSize          = 16
	pbkdf2Iterations = 100000
)

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, 32, sha256.New)
}

// Seal encrypts data with AES-GCM under a PBKDF2 key derived from password.
// Format: magic(8) + salt(16) + nonce(12) + encrypted_data + auth_tag(16)
func Seal(data []byte, password string) ([]byte, error) {
	salt := make([]byte, saltSize)
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(gcmMagic)+saltSize+nonceSize+len(data)+tagSize)
	out = append(out, gcmMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, data, nil), nil
}

// Open reverses Seal
func Open(sealed []byte, password string) ([]byte, error) {
	if len(sealed) < len(gcmMagic)+saltSize+nonceSize+tagSize {
		return nil, fmt.Errorf("GCM data too short: %d bytes", len(sealed))
	}
	if !bytes.Equal(sealed[:len(gcmMagic)], gcmMagic) {
		return nil, fmt.Errorf("unknown encryption format")
	}
	rest := sealed[len(gcmMagic):]
	salt, nonce, ciphertext := rest[:saltSize], rest[saltSize:saltSize+nonceSize], rest[saltSize+nonceSize:]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("GCM decryption failed: %w", err)
	}
	return plaintext, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
