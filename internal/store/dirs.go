package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/semilin/kmdata/internal/model"
)

const (
	// AppDirName is the namespace segment appended to the user data root
	AppDirName = "keymeow"

	defaultDirPermissions = 0775
)

var userHomeDir = homedir.Dir // mockable for testing
var goos = runtime.GOOS       // mockable for testing

// Locate returns the path of the per-user data directory, without creating it.
// Returns model.ErrNoHomeDirectory if the platform cannot tell where the user's profile is.
func Locate() (string, error) {
	root, err := userDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, AppDirName), nil
}

// userDataDir follows the platform conventions for per-user application data:
// %APPDATA% on Windows, ~/Library/Application Support on macOS and $XDG_DATA_HOME or ~/.local/share elsewhere
func userDataDir() (string, error) {
	switch goos {
	case "windows":
		if v := os.Getenv("APPDATA"); v != "" {
			return v, nil
		}
	case "darwin", "ios":
	default:
		if v := os.Getenv("XDG_DATA_HOME"); v != "" && filepath.IsAbs(v) {
			return v, nil
		}
	}

	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrNoHomeDirectory, err)
	}
	if home == "" {
		return "", model.ErrNoHomeDirectory
	}

	switch goos {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming"), nil
	case "darwin", "ios":
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		return filepath.Join(home, ".local", "share"), nil
	}
}

// CreateDirectories creates root and the subdirectories of all categories. Existing directories are left alone.
func CreateDirectories(root string) error {
	dirs := []string{root}
	for _, c := range model.Categories {
		dirs = append(dirs, filepath.Join(root, c.Dir()))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, defaultDirPermissions); err != nil {
			return model.NewPathError(model.ErrDirectoryCreate, d, err)
		}
	}
	return nil
}
