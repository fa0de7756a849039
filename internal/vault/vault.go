// Package vault owns the master-key lifecycle: generation, retrieval from the
// OS credential store, in-memory custody, auto-lock and reset. It is the only
// component allowed to hold key bytes; everything else borrows the key for
// the duration of a single crypto call via WithKey.
package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/secret"
)

// Vault guards the in-memory master key. The zero state is locked: key is
// nil until Unlock loads (or generates) the persisted key. All transitions
// happen under mu, so a Lock or Reset is atomic with respect to any in-flight
// WithKey call and no caller can observe a half-wiped buffer.
type Vault struct {
	secrets secret.Store
	service string
	account string
	logger  logging.Logger

	mu       sync.Mutex
	key      []byte
	autoLock time.Duration
	timer    *time.Timer
	timerGen uint64
}

// New returns a locked Vault persisting its key under service/account in the
// given secret store. autoLock of 0 disables inactivity locking.
func New(secrets secret.Store, service, account string, autoLock time.Duration, logger logging.Logger) *Vault {
	return &Vault{
		secrets:  secrets,
		service:  service,
		account:  account,
		autoLock: autoLock,
		logger:   logger.With("component", "vault"),
	}
}

// Unlock loads the master key into memory, generating and persisting 256
// fresh random bits on first run. It is idempotent while unlocked; every
// call re-arms the auto-lock timer.
func (v *Vault) Unlock(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.key != nil {
		v.armTimerLocked()
		return nil
	}

	key, err := v.secrets.Get(v.service, v.account)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("loading master key: %w", err)
		}
		key = common.GenerateRandByteArray(cryptox.KeySize)
		if err := v.secrets.Set(v.service, v.account, key); err != nil {
			common.WipeByteArray(key)
			return fmt.Errorf("storing master key: %w", err)
		}
		v.logger.Info(ctx, "generated new master key")
	}

	if len(key) != cryptox.KeySize {
		common.WipeByteArray(key)
		return fmt.Errorf("stored master key has wrong length %d", len(key))
	}

	v.key = key
	v.armTimerLocked()
	v.logger.Info(ctx, "vault unlocked")
	return nil
}

// Lock wipes the in-memory key immediately. Subsequent WithKey calls fail
// with common.ErrNotUnlocked until the next Unlock.
func (v *Vault) Lock() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lockLocked()
}

func (v *Vault) lockLocked() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	if v.key != nil {
		common.WipeByteArray(v.key)
		v.key = nil
		v.logger.Info(context.Background(), "vault locked")
	}
}

// Reset generates a new master key, overwrites the credential-store entry and
// replaces the in-memory buffer, leaving the vault unlocked with the new key.
// This is irreversible: every field encrypted under the previous key becomes
// permanently undecipherable. Confirmation is the caller's responsibility.
func (v *Vault) Reset(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := common.GenerateRandByteArray(cryptox.KeySize)
	if err := v.secrets.Set(v.service, v.account, key); err != nil {
		common.WipeByteArray(key)
		return fmt.Errorf("storing master key: %w", err)
	}

	if v.key != nil {
		common.WipeByteArray(v.key)
	}
	v.key = key
	v.armTimerLocked()
	v.logger.Warn(ctx, "master key reset; previously stored items are no longer decryptable")
	return nil
}

// IsUnlocked reports whether the key is resident in memory.
func (v *Vault) IsUnlocked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.key != nil
}

// WithKey runs fn with the raw master key while holding the vault lock, and
// re-arms the auto-lock timer on success. fn must not retain the slice beyond
// the call. Returns common.ErrNotUnlocked when no key is resident.
func (v *Vault) WithKey(fn func(key []byte) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.key == nil {
		return common.ErrNotUnlocked
	}
	if err := fn(v.key); err != nil {
		return err
	}
	v.armTimerLocked()
	return nil
}

// SetAutoLock changes the inactivity window and re-arms the timer if the
// vault is currently unlocked. A duration of 0 disables auto-lock.
func (v *Vault) SetAutoLock(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.autoLock = d
	if v.key != nil {
		v.armTimerLocked()
	}
}

// armTimerLocked restarts the inactivity timer. Callers must hold mu.
//
// Stop is a no-op once a timer has fired, so a callback that fired while the
// caller held mu may still be waiting to acquire it. Each re-arm bumps
// timerGen; a callback whose captured generation is no longer current has
// been superseded and must not lock the vault.
func (v *Vault) armTimerLocked() {
	v.timerGen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	if v.autoLock <= 0 {
		return
	}
	gen := v.timerGen
	v.timer = time.AfterFunc(v.autoLock, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if gen != v.timerGen {
			return
		}
		v.lockLocked()
	})
}

// Close locks the vault, wiping any resident key material. Part of process
// shutdown teardown.
func (v *Vault) Close() {
	v.Lock()
}
