package secret

import (
	"testing"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()
	_, err := m.Get("svc", "default")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemory_SetGetDelete(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Set("svc", "default", []byte{1, 2, 3}))

	got, err := m.Get("svc", "default")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	// stored value is isolated from caller mutation
	got[0] = 0xff
	again, err := m.Get("svc", "default")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again)

	require.NoError(t, m.Delete("svc", "default"))
	_, err = m.Get("svc", "default")
	require.ErrorIs(t, err, common.ErrNotFound)

	// deleting an absent entry is not an error
	require.NoError(t, m.Delete("svc", "default"))
}

func TestMemory_AccountsAreIndependent(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("svc", "a", []byte("one")))
	require.NoError(t, m.Set("svc", "b", []byte("two")))

	got, err := m.Get("svc", "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), got)
}
