package signer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	plaintext := []byte("thirty-two bytes of key material")

	ciphertext, err := Encrypt(plaintext, "hunter2")
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "key material")

	decrypted, err := Decrypt(ciphertext, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)

	_, err = Decrypt(ciphertext, "wrong")
	require.Error(t, err)
}

func TestSaveAndLoadKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "keys", "key.age")
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	require.NoError(t, SaveKey(path, key, "hunter2"))

	loaded, err := LoadKey(path, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, key, loaded)
	ZeroBytes(loaded)
}

func TestSaveKeyRefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key.age")
	key := make([]byte, 32)

	require.NoError(t, SaveKey(path, key, "pw"))
	err := SaveKey(path, key, "pw")
	require.ErrorIs(t, err, mferr.ErrKeyExists)
}

func TestLoadKeyErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadKey(filepath.Join(t.TempDir(), "nope.age"), "pw")
		require.ErrorIs(t, err, mferr.ErrKeyNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "key.age")
		require.NoError(t, SaveKey(path, make([]byte, 32), "right"))

		_, err := LoadKey(path, "wrong")
		require.ErrorIs(t, err, mferr.ErrDecryptionFailed)
	})
}
