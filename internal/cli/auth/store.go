package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "painelctl"
	// Single key: one session token per machine, regardless of environment.
	tokenKey = "session-token"
)

// ErrNoToken is returned when no session token is stored.
var ErrNoToken = errors.New("not authenticated. Please run 'painelctl login' first")

// TokenStore abstracts session token persistence so the API client never
// touches the OS keyring directly and tests can swap in an in-memory store.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// KeyringStore persists the session token in the OS keychain/credential manager.
type KeyringStore struct{}

// NewKeyringStore returns the production token store.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) SaveToken(token string) error {
	if err := keyring.Set(service, tokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *KeyringStore) LoadToken() (string, error) {
	token, err := keyring.Get(service, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (s *KeyringStore) DeleteToken() error {
	if err := keyring.Delete(service, tokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
