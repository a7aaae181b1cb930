package credstore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size of the FileStore encryption key
	KeySize = 32 // 256 bits for AES-256

	// hkdfInfo provides domain separation for the derived file key
	hkdfInfo = "clientkit-credstore-v1"
)

// FileStore implements Store backed by an encrypted file on disk. The whole
// key-value set is serialized as JSON and sealed with AES-256-GCM under a
// key derived from the caller's secret via HKDF. Writes go through a
// temp-file rename so a crash never leaves a truncated store behind.
//
// An existing file that fails to decrypt or parse is treated as absent and
// the store starts empty; stale or tampered credentials are dropped rather
// than surfaced.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	aead   cipher.AEAD
	values map[string]string
}

// NewFileStore opens or creates an encrypted credential store at path.
// The key must be KeySize bytes.
func NewFileStore(path string, key []byte) (*FileStore, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	s := &FileStore{
		path:   path,
		aead:   aead,
		values: make(map[string]string),
	}

	if err := s.load(); err != nil {
		// Unreadable state is discarded, not surfaced: the caller re-auths.
		s.values = make(map[string]string)
	}

	return s, nil
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	value, exists := s.values[key]
	s.mu.RUnlock()

	if !exists {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores a single value under key and persists the store.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flush()
}

// SetMany stores all values and persists them in a single write.
func (s *FileStore) SetMany(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.values, values)
	return s.flush()
}

// Delete removes the given keys and persists the store in a single write.
func (s *FileStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.values, key)
	}
	return s.flush()
}

// load reads and decrypts the backing file into memory.
func (s *FileStore) load() error {
	sealed, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Join(ErrStoreUnavailable, err)
	}

	if len(sealed) < s.aead.NonceSize() {
		return ErrStoreUnavailable
	}

	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return json.Unmarshal(plaintext, &s.values)
}

// flush encrypts the in-memory state and atomically replaces the file.
// Caller must hold the write lock.
func (s *FileStore) flush() error {
	plaintext, err := json.Marshal(s.values)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	// Nonce is prepended to the ciphertext for storage
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credstore-*")
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(sealed); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Join(ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Join(ErrStoreUnavailable, err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Join(ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// newAEAD derives the file key with HKDF-SHA256 and builds an AES-GCM AEAD.
func newAEAD(key []byte) (cipher.AEAD, error) {
	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(hkdfInfo)), derived); err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	return cipher.NewGCM(block)
}
