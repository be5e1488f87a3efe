package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/dayone/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested name
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get returns the secret stored for user under the dayone service.
func Get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for user under the dayone service.
func Set(user, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", user)
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored for user.
func Delete(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString returns the stored backend location (postgres DSN or redis URL).
func GetConnectionString() (string, error) { return Get(constants.KeyringUserConnection) }

// SetConnectionString stores the backend location.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return Set(constants.KeyringUserConnection, connStr)
}

// DeleteConnectionString removes the stored backend location.
func DeleteConnectionString() error { return Delete(constants.KeyringUserConnection) }

// GetRedisPassword returns the stored redis password.
func GetRedisPassword() (string, error) { return Get(constants.KeyringUserRedisPass) }

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered but is empty
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
