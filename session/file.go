package session

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

// FileStore seals the session with XChaCha20-Poly1305 and writes it to a
// single file with 0600 permissions. It is the desktop/CLI stand-in for a
// mobile platform's secure credential storage: the blob is useless without
// the 32-byte key, which the caller is expected to source from the OS
// keychain or an equivalent secret.
type FileStore struct {
	path string
	aead cipher.AEAD
}

// NewFileStore creates a FileStore writing to path. key must be exactly 32
// bytes.
func NewFileStore(path string, key []byte) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("file store key: %w", err)
	}

	return &FileStore{path: path, aead: aead}, nil
}

// Save describes the save operation and its observable behavior.
//
// Save writes atomically (temp file + rename) so a crash mid-write never
// leaves a truncated blob behind.
func (s *FileStore) Save(_ context.Context, sess *Session) error {
	if sess == nil {
		return errors.New("nil session")
	}

	plain, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plain)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := s.aead.Seal(nonce, nonce, plain, nil)

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
func (s *FileStore) Load(_ context.Context) (*Session, error) {
	sealed, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(sealed) < s.aead.NonceSize() {
		return nil, ErrCorrupt
	}

	nonce, box := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, box, nil)
	if err != nil {
		return nil, ErrCorrupt
	}

	var sess Session
	if err := json.Unmarshal(plain, &sess); err != nil {
		return nil, ErrCorrupt
	}
	return &sess, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete is idempotent: a missing file is not an error.
func (s *FileStore) Delete(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
