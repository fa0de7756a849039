package secret

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/zalando/go-keyring"
)

// Keyring stores secrets in the OS credential store (macOS Keychain, Windows
// Credential Manager, or the freedesktop Secret Service) via zalando/go-keyring.
// The keyring holds strings, so blobs are hex-encoded on the way in.
type Keyring struct{}

func NewKeyring() *Keyring {
	return &Keyring{}
}

func (k *Keyring) Get(service, account string) ([]byte, error) {
	s, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("keyring get: %w", err)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("keyring entry is not valid hex: %w", err)
	}
	return b, nil
}

func (k *Keyring) Set(service, account string, value []byte) error {
	if err := keyring.Set(service, account, hex.EncodeToString(value)); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (k *Keyring) Delete(service, account string) error {
	err := keyring.Delete(service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
