package config

import (
	"os"
	"path/filepath"
)

// FathomPath returns the root directory for Fathom data.
// It uses $FATHOM_PATH if set, otherwise defaults to ~/.fathom.
func FathomPath() string {
	if v := os.Getenv("FATHOM_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fathom")
	}
	return filepath.Join(home, ".fathom")
}

// ConfigPath returns the path to the Fathom config file.
func ConfigPath() string {
	return filepath.Join(FathomPath(), "config.jsonc")
}

// DotenvPath returns the path to the Fathom .env file.
func DotenvPath() string {
	return filepath.Join(FathomPath(), ".env")
}

// SessionsPath returns the directory where research sessions are archived.
func SessionsPath() string {
	return filepath.Join(FathomPath(), "sessions")
}
