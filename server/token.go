package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "gesturecli"
	keyringUser    = "server"
)

// LoadToken returns the bearer token stored in the OS keyring, or "" when
// none has been generated.
func LoadToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read server token from keyring: %w", err)
	}
	return token, nil
}

// GenerateToken creates a random token and stores it in the keyring,
// replacing any previous one.
func GenerateToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return "", fmt.Errorf("failed to store server token in keyring: %w", err)
	}
	return token, nil
}

// ClearToken removes the stored token. Clearing a missing token is not an
// error.
func ClearToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete server token from keyring: %w", err)
	}
	return nil
}
