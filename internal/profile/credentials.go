package profile

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrNoCredentials is returned when no credentials are stored for a profile.
var ErrNoCredentials = errors.New("not logged in")

// Credentials holds the persisted login state for a profile. These are
// the same four values the web client keeps in browser storage.
type Credentials struct {
	Token    string `toml:"token"`
	UserID   int64  `toml:"user_id"`
	UserType string `toml:"user_type"` // athlete or coach
	FullName string `toml:"full_name"`
}

// LoadCredentials reads stored credentials from the given path.
// Returns ErrNoCredentials if the file does not exist or holds no token.
func LoadCredentials(path string) (*Credentials, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, ErrNoCredentials
	}
	var creds Credentials
	if _, err := toml.DecodeFile(path, &creds); err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, ErrNoCredentials
	}
	return &creds, nil
}

// SaveCredentials writes credentials to the given path, creating parent
// dirs as needed. The file is private to the user.
func SaveCredentials(path string, creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(creds)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// ClearCredentials removes stored credentials (logout). Missing file is
// not an error.
func ClearCredentials(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
