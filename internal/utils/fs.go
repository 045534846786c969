package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirs lists the directories searched for the config file, most
// specific first.
func ConfigDirs(app string) []string {
	dirs := []string{"."}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, app))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", app))
	}

	return append(dirs, filepath.Join("/etc", app))
}

// CreateFile creates path for writing, making its parent directory first.
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	Debug("Opened %s for writing", path)
	return f, nil
}
