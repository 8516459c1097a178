package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/semilin/kmdata/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockPlatform(t *testing.T, os string, home string, homeErr error) {
	origGoos, origHome := goos, userHomeDir
	goos = os
	userHomeDir = func() (string, error) { return home, homeErr }
	t.Cleanup(func() {
		goos = origGoos
		userHomeDir = origHome
	})
}

func TestLocate(t *testing.T) {
	home := filepath.Join("home", "user")

	t.Run("linux default", func(t *testing.T) {
		mockPlatform(t, "linux", home, nil)
		t.Setenv("XDG_DATA_HOME", "")
		dir, err := Locate()
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "keymeow"), dir)
	})
	t.Run("linux XDG_DATA_HOME", func(t *testing.T) {
		xdg, _ := filepath.Abs(filepath.Join("xdg", "data"))
		mockPlatform(t, "linux", home, nil)
		t.Setenv("XDG_DATA_HOME", xdg)
		dir, err := Locate()
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(xdg, "keymeow"), dir)
	})
	t.Run("linux relative XDG_DATA_HOME is ignored", func(t *testing.T) {
		mockPlatform(t, "linux", home, nil)
		t.Setenv("XDG_DATA_HOME", "relative/data")
		dir, err := Locate()
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "keymeow"), dir)
	})
	t.Run("darwin", func(t *testing.T) {
		mockPlatform(t, "darwin", home, nil)
		t.Setenv("XDG_DATA_HOME", "/ignored")
		dir, err := Locate()
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "Library", "Application Support", "keymeow"), dir)
	})
	t.Run("windows APPDATA", func(t *testing.T) {
		mockPlatform(t, "windows", home, nil)
		t.Setenv("APPDATA", filepath.Join("roaming"))
		dir, err := Locate()
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join("roaming", "keymeow"), dir)
	})
	t.Run("windows without APPDATA", func(t *testing.T) {
		mockPlatform(t, "windows", home, nil)
		t.Setenv("APPDATA", "")
		dir, err := Locate()
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "AppData", "Roaming", "keymeow"), dir)
	})
	t.Run("no home directory", func(t *testing.T) {
		mockPlatform(t, "linux", "", errors.New("$HOME is not defined"))
		t.Setenv("XDG_DATA_HOME", "")
		_, err := Locate()
		assert.ErrorIs(t, err, model.ErrNoHomeDirectory)
	})
	t.Run("empty home directory", func(t *testing.T) {
		mockPlatform(t, "darwin", "", nil)
		_, err := Locate()
		assert.ErrorIs(t, err, model.ErrNoHomeDirectory)
	})
}

func TestCreateDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "keymeow")

	require.NoError(t, CreateDirectories(root))
	for _, d := range []string{"corpora", "metrics", "layouts"} {
		assert.DirExists(t, filepath.Join(root, d))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "corpora", "english.bin"), []byte{0x80}, 0664))

	// idempotent, existing contents stay
	require.NoError(t, CreateDirectories(root))
	assert.FileExists(t, filepath.Join(root, "corpora", "english.bin"))

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0664))
		err := CreateDirectories(filepath.Join(file, "keymeow"))
		assert.ErrorIs(t, err, model.ErrDirectoryCreate)
		var pErr *model.PathError
		if assert.ErrorAs(t, err, &pErr) {
			assert.Equal(t, filepath.Join(file, "keymeow"), pErr.Path)
		}
	})
}
