package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "forkline-cli"

// KeyringBackend stores the session in the OS keychain/credential manager.
type KeyringBackend struct{}

// NewKeyringBackend creates a keyring-backed session backend. It probes the
// keyring once so callers can fall back to the file backend on machines
// without one.
func NewKeyringBackend() (*KeyringBackend, error) {
	b := &KeyringBackend{}
	if _, err := b.Get(tokenKey); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("keyring unavailable: %w", err)
	}
	return b, nil
}

func (k *KeyringBackend) Get(key string) (string, error) {
	value, err := keyring.Get(keyringService, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read from keyring: %w", err)
	}
	return value, nil
}

func (k *KeyringBackend) Set(key, value string) error {
	if err := keyring.Set(keyringService, key, value); err != nil {
		return fmt.Errorf("failed to write to keyring: %w", err)
	}
	return nil
}

func (k *KeyringBackend) Delete(key string) error {
	if err := keyring.Delete(keyringService, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
