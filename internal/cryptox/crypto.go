// Package cryptox implements the stateless authenticated-encryption primitive
// used for clipboard payloads. Every encrypted field is laid out as
// nonce||ciphertext||tag, with a fresh random nonce per call, so fields are
// independently decryptable and nonces are never reused under a key.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/common"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes.
	NonceSize = 12
	// tagSize is the GCM authentication tag length in bytes.
	tagSize = 16
)

// Encrypt seals plaintext under key using AES-256-GCM and returns the field
// bytes laid out as nonce||ciphertext||tag.
//
// The nonce is drawn from the system CSPRNG rather than a counter: separate
// or restarted processes could otherwise collide, and at 96 random bits the
// reuse probability over a clipboard history's volume is negligible.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce generation: %w", err)
	}

	out := make([]byte, 0, NonceSize+len(plaintext)+tagSize)
	out = append(out, nonce...)
	out = aesgcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// Decrypt opens a field produced by Encrypt. Any authentication failure
// (tampered or truncated bytes, or a key other than the one used to encrypt)
// yields common.ErrIntegrity and no plaintext.
func Decrypt(key, field []byte) ([]byte, error) {
	if len(field) < NonceSize+tagSize {
		return nil, common.ErrIntegrity
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init: %w", err)
	}

	plaintext, err := aesgcm.Open(nil, field[:NonceSize], field[NonceSize:], nil)
	if err != nil {
		return nil, common.ErrIntegrity
	}
	return plaintext, nil
}
