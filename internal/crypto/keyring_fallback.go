//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fallbackKeyring keeps the token in a 0600 file under the user config
// dir when no system keychain is available. INVOICEPRO_TOKEN overrides
// it for headless use.
type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

func tokenFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", ServiceName, "token"), nil
}

// GetToken retrieves the session token from INVOICEPRO_TOKEN or the
// token file
func (k *fallbackKeyring) GetToken() (string, error) {
	if token := os.Getenv("INVOICEPRO_TOKEN"); token != "" {
		return token, nil
	}

	path, err := tokenFilePath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("no stored session: run 'invoicepro login'")
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	if len(data) == 0 {
		return "", errors.New("stored session token is empty")
	}

	return string(data), nil
}

// SetToken writes the session token to the token file
func (k *fallbackKeyring) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	path, err := tokenFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// DeleteToken removes the token file
func (k *fallbackKeyring) DeleteToken() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}

	return nil
}

// IsAvailable reports whether a token source exists
func (k *fallbackKeyring) IsAvailable() bool {
	if os.Getenv("INVOICEPRO_TOKEN") != "" {
		return true
	}
	path, err := tokenFilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
