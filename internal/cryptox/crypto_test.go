package cryptox

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	return common.GenerateRandByteArray(KeySize)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testKey(t)

	payloads := [][]byte{
		nil,
		[]byte(""),
		[]byte("hello world"),
		[]byte("многобайтовый текст"),
		bytes.Repeat([]byte{0xab}, 1<<16),
	}

	for _, pt := range payloads {
		field, err := Encrypt(key, pt)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(field), NonceSize+tagSize)

		got, err := Decrypt(key, field)
		require.NoError(t, err)
		assert.Equal(t, []byte(pt), append([]byte{}, got...))
	}
}

func TestDecrypt_TamperDetected(t *testing.T) {
	key := testKey(t)
	field, err := Encrypt(key, []byte("hello world"))
	require.NoError(t, err)

	// flipping any single bit must fail authentication
	for _, pos := range []int{0, NonceSize, len(field) / 2, len(field) - 1} {
		tampered := append([]byte{}, field...)
		tampered[pos] ^= 0x01

		pt, err := Decrypt(key, tampered)
		require.ErrorIs(t, err, common.ErrIntegrity, "bit flip at %d not detected", pos)
		assert.Nil(t, pt)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	field, err := Encrypt(testKey(t), []byte("secret"))
	require.NoError(t, err)

	pt, err := Decrypt(testKey(t), field)
	require.ErrorIs(t, err, common.ErrIntegrity)
	assert.Nil(t, pt)
}

func TestDecrypt_TooShort(t *testing.T) {
	key := testKey(t)
	for _, blob := range [][]byte{nil, {}, make([]byte, NonceSize), make([]byte, NonceSize+tagSize-1)} {
		pt, err := Decrypt(key, blob)
		require.ErrorIs(t, err, common.ErrIntegrity)
		assert.Nil(t, pt)
	}
}

func TestEncrypt_NonceUnique(t *testing.T) {
	key := testKey(t)
	pt := []byte("same plaintext")

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		field, err := Encrypt(key, pt)
		require.NoError(t, err)

		nonce := string(field[:NonceSize])
		_, dup := seen[nonce]
		require.False(t, dup, "nonce reused on iteration %d", i)
		seen[nonce] = struct{}{}
	}
}

func TestEncrypt_BadKeyLength(t *testing.T) {
	_, err := Encrypt([]byte("short"), []byte("x"))
	require.Error(t, err)
}
