package vault

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/secret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testService = "com.dmitrijs2005.clipvault.test"
	testAccount = "default"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func newTestVault(t *testing.T, store secret.Store, autoLock time.Duration) *Vault {
	t.Helper()
	v := New(store, testService, testAccount, autoLock, testLogger())
	t.Cleanup(v.Close)
	return v
}

func currentKey(t *testing.T, v *Vault) []byte {
	t.Helper()
	var key []byte
	require.NoError(t, v.WithKey(func(k []byte) error {
		key = append([]byte{}, k...)
		return nil
	}))
	return key
}

func TestUnlock_GeneratesAndPersistsKeyOnFirstRun(t *testing.T) {
	store := secret.NewMemory()
	v := newTestVault(t, store, 0)
	ctx := context.Background()

	_, err := store.Get(testService, testAccount)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, v.Unlock(ctx))
	require.True(t, v.IsUnlocked())

	persisted, err := store.Get(testService, testAccount)
	require.NoError(t, err)
	assert.Len(t, persisted, cryptox.KeySize)
	assert.Equal(t, persisted, currentKey(t, v))
}

func TestUnlock_LoadsExistingKey(t *testing.T) {
	store := secret.NewMemory()
	existing := common.GenerateRandByteArray(cryptox.KeySize)
	require.NoError(t, store.Set(testService, testAccount, existing))

	v := newTestVault(t, store, 0)
	require.NoError(t, v.Unlock(context.Background()))
	assert.Equal(t, existing, currentKey(t, v))
}

func TestUnlock_Idempotent(t *testing.T) {
	v := newTestVault(t, secret.NewMemory(), 0)
	ctx := context.Background()

	require.NoError(t, v.Unlock(ctx))
	k1 := currentKey(t, v)
	require.NoError(t, v.Unlock(ctx))
	assert.Equal(t, k1, currentKey(t, v))
}

func TestUnlock_RejectsWrongSizeKey(t *testing.T) {
	store := secret.NewMemory()
	require.NoError(t, store.Set(testService, testAccount, []byte("short")))

	v := newTestVault(t, store, 0)
	require.Error(t, v.Unlock(context.Background()))
	assert.False(t, v.IsUnlocked())
}

func TestLock_GatesCrypto(t *testing.T) {
	v := newTestVault(t, secret.NewMemory(), 0)
	ctx := context.Background()

	err := v.WithKey(func([]byte) error { return nil })
	require.ErrorIs(t, err, common.ErrNotUnlocked)

	require.NoError(t, v.Unlock(ctx))
	require.NoError(t, v.WithKey(func([]byte) error { return nil }))

	v.Lock()
	err = v.WithKey(func([]byte) error { return nil })
	require.ErrorIs(t, err, common.ErrNotUnlocked)

	// unlock again restores access to the same key
	require.NoError(t, v.Unlock(ctx))
	require.NoError(t, v.WithKey(func([]byte) error { return nil }))
}

func TestReset_ReplacesKeyIrreversibly(t *testing.T) {
	store := secret.NewMemory()
	v := newTestVault(t, store, 0)
	ctx := context.Background()

	require.NoError(t, v.Unlock(ctx))
	oldKey := currentKey(t, v)

	field, err := cryptox.Encrypt(oldKey, []byte("remember me"))
	require.NoError(t, err)

	require.NoError(t, v.Reset(ctx))
	require.True(t, v.IsUnlocked())

	newKey := currentKey(t, v)
	assert.NotEqual(t, oldKey, newKey)

	persisted, err := store.Get(testService, testAccount)
	require.NoError(t, err)
	assert.Equal(t, newKey, persisted)

	// ciphertext sealed under the old key is gone for good
	pt, err := cryptox.Decrypt(newKey, field)
	require.ErrorIs(t, err, common.ErrIntegrity)
	assert.Nil(t, pt)
}

func TestReset_FromLockedState(t *testing.T) {
	v := newTestVault(t, secret.NewMemory(), 0)
	require.NoError(t, v.Reset(context.Background()))
	assert.True(t, v.IsUnlocked())
}

func TestAutoLock_FiresAfterInactivity(t *testing.T) {
	v := newTestVault(t, secret.NewMemory(), 30*time.Millisecond)
	require.NoError(t, v.Unlock(context.Background()))

	require.Eventually(t, func() bool { return !v.IsUnlocked() },
		time.Second, 5*time.Millisecond)
}

func TestAutoLock_ReArmedByCrypto(t *testing.T) {
	v := newTestVault(t, secret.NewMemory(), 60*time.Millisecond)
	require.NoError(t, v.Unlock(context.Background()))

	// keep touching the key more often than the window; the vault must stay open
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		require.NoError(t, v.WithKey(func([]byte) error { return nil }))
	}
	assert.True(t, v.IsUnlocked())

	require.Eventually(t, func() bool { return !v.IsUnlocked() },
		time.Second, 5*time.Millisecond)
}

func TestAutoLock_CryptoSpanningFiringInstantStillReArms(t *testing.T) {
	v := newTestVault(t, secret.NewMemory(), 50*time.Millisecond)
	require.NoError(t, v.Unlock(context.Background()))

	// Hold the key past the firing instant. The timer callback blocks on the
	// vault mutex while fn runs; once this call re-arms the timer, that
	// superseded callback must not wipe the key.
	require.NoError(t, v.WithKey(func([]byte) error {
		time.Sleep(120 * time.Millisecond)
		return nil
	}))

	time.Sleep(10 * time.Millisecond)
	assert.True(t, v.IsUnlocked())

	// the re-armed window still locks eventually
	require.Eventually(t, func() bool { return !v.IsUnlocked() },
		time.Second, 5*time.Millisecond)
}

func TestClose_WipesKey(t *testing.T) {
	v := New(secret.NewMemory(), testService, testAccount, 0, testLogger())
	require.NoError(t, v.Unlock(context.Background()))
	v.Close()
	assert.False(t, v.IsUnlocked())
}
