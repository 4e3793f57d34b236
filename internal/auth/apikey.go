// Package auth handles API credential validation and storage access.
package auth

import (
	"errors"
	"strings"

	"github.com/ferraz/discovery-go/internal/store"
)

// minKeyLength matches the backend's format check on /api/configure.
const minKeyLength = 10

// ErrNoCredential indicates no API key is stored.
var ErrNoCredential = errors.New("no API key configured")

// ValidateKey checks the credential format before it is stored or sent.
func ValidateKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is required")
	}
	if len(key) < minKeyLength {
		return errors.New("invalid API key format")
	}
	return nil
}

// LoadKey reads the stored credential.
func LoadKey(s store.Store) (string, error) {
	key, ok, err := s.Get(store.KeyAPIKey)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(key) == "" {
		return "", ErrNoCredential
	}
	return strings.TrimSpace(key), nil
}

// SaveKey validates and stores the credential.
func SaveKey(s store.Store, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.Set(store.KeyAPIKey, strings.TrimSpace(key))
}

// ClearKey removes the stored credential.
func ClearKey(s store.Store) error {
	return s.Delete(store.KeyAPIKey)
}

// HasKey reports whether a non-empty credential is stored.
func HasKey(s store.Store) bool {
	_, err := LoadKey(s)
	return err == nil
}

// Redact returns a display-safe form of the key.
func Redact(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
