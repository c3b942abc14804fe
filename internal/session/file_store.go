package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// ParseKey decodes a 64-char hex secretbox key. Empty input returns nil.
func ParseKey(s string) (*[keySize]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("session: decode key: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("session: key must be %d bytes, got %d", keySize, len(raw))
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}

// FileStore keeps the token in a single file. With a key, the file holds
// nonce||secretbox(token) instead of plain text.
type FileStore struct {
	path string
	key  *[keySize]byte
}

func NewFileStore(path string, key *[keySize]byte) *FileStore {
	return &FileStore{path: path, key: key}
}

func (f *FileStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return "", ErrNoToken
	}
	if f.key == nil {
		return strings.TrimSpace(string(data)), nil
	}

	if len(data) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("session: %s is too short to be sealed", f.path)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])
	plain, ok := secretbox.Open(nil, data[nonceSize:], &nonce, f.key)
	if !ok {
		return "", fmt.Errorf("session: %s cannot be opened with the configured key", f.path)
	}
	return string(plain), nil
}

func (f *FileStore) Save(ctx context.Context, token string) error {
	data := []byte(token)
	if f.key != nil {
		var nonce [nonceSize]byte
		if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
			return fmt.Errorf("session: nonce: %w", err)
		}
		data = secretbox.Seal(nonce[:], data, &nonce, f.key)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	// The slot is replaced atomically.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("session: rename %s: %w", tmp, err)
	}
	return nil
}

func (f *FileStore) Delete(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", f.path, err)
	}
	return nil
}
