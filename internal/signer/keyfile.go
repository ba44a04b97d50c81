package signer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"

	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// Encrypt encrypts plaintext using age with a password-based recipient.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts ciphertext using age with a password-based identity.
func Decrypt(ciphertext []byte, password string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, mferr.Wrap(err, "decrypting key file")
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}

	return plaintext, nil
}

// SaveKey encrypts and writes a private key to the given path. Refuses
// to overwrite an existing key file.
func SaveKey(path string, key []byte, password string) error {
	if _, err := os.Stat(path); err == nil {
		return mferr.WithDetails(mferr.ErrKeyExists, map[string]string{
			"path": path,
		})
	}

	ciphertext, err := Encrypt(key, password)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	return os.WriteFile(path, ciphertext, 0o600)
}

// LoadKey reads and decrypts a private key from the given path. The
// returned bytes must be zeroed by the caller after use.
func LoadKey(path, password string) ([]byte, error) {
	// #nosec G304 -- key path comes from validated config
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mferr.WithDetails(mferr.ErrKeyNotFound, map[string]string{
				"path": path,
			})
		}
		return nil, err
	}

	plaintext, err := Decrypt(ciphertext, password)
	if err != nil {
		return nil, mferr.WithDetails(mferr.ErrDecryptionFailed, map[string]string{
			"path": path,
		})
	}

	lockMemory(plaintext)
	return plaintext, nil
}

// ZeroBytes wipes a byte slice.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
