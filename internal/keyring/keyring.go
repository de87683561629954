package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/hard75/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Secret reads an entry stored under the application's keyring service.
func Secret(account string) (string, error) {
	value, err := keyring.Get(constants.AppName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// SetSecret stores an entry under the application's keyring service.
func SetSecret(account, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, account, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteSecret removes an entry from the application's keyring service.
func DeleteSecret(account string) error {
	err := keyring.Delete(constants.AppName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString returns the stored PostgreSQL connection string.
func GetConnectionString() (string, error) {
	return Secret(constants.DefaultKeyringUser)
}

// SetConnectionString stores the PostgreSQL connection string. Unlike --config,
// the stored value may carry a password.
func SetConnectionString(connStr string) error {
	return SetSecret(constants.DefaultKeyringUser, connStr)
}

func DeleteConnectionString() error {
	return DeleteSecret(constants.DefaultKeyringUser)
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Mask hides the password portion of a connection string for display.
func Mask(connStr string) string {
	if i := strings.Index(connStr, "://"); i >= 0 {
		rest := connStr[i+3:]
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return connStr
		}
		userinfo := rest[:at]
		if colon := strings.Index(userinfo, ":"); colon >= 0 {
			return connStr[:i+3] + userinfo[:colon] + ":****" + rest[at:]
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if kv := strings.SplitN(f, "=", 2); len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			fields[i] = kv[0] + "=****"
		}
	}
	return strings.Join(fields, " ")
}
