package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory before any .env file is
// loaded, since the .env itself lives there.
func GetRuntimePath() string {
	path := os.Getenv("SANI_RUNTIME_PATH")
	if path == "" {
		path = ".sanibot"
	}
	return underHome(path)
}

// underHome anchors a relative runtime path under the user's home
// directory, matching what the installer writes.
func underHome(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path)
}
