// Package common defines shared constants and sentinel errors used across
// clipvault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Vault errors: a crypto operation was attempted while the master key
	// is not resident in memory.
	ErrNotUnlocked = errors.New("vault is locked")

	// Crypto errors: authenticated decryption failed (tampered or corrupted
	// ciphertext, or a key other than the one used to encrypt).
	ErrIntegrity = errors.New("integrity check failed")

	// Capture pipeline outcomes. ErrDuplicate is not a failure: it reports
	// that an identical item already exists and the capture was skipped.
	ErrDuplicate = errors.New("duplicate item skipped")

	// Clipboard adapter errors.
	ErrUnsupportedKind = errors.New("unsupported clipboard kind")
)
