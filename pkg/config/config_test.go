package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	t.Setenv("HOME", dir)
	t.Setenv("ENERGIA_INDEX_CONFIG", "")
	t.Setenv("ENERGIA_INDEX_BASE_URL", "")
	t.Setenv("ENERGIA_INDEX_ARCHIVES", "")

	t.Run("uses defaults without a file", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "", cfg.Path())
		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, DefaultPackageName, cfg.PackageName)
		assert.Equal(t, DefaultMaintainer, cfg.Maintainer)
		assert.Equal(t, "", cfg.ArchivesDir)
	})

	t.Run("reads toml", func(t *testing.T) {
		path := filepath.Join(dir, "index.toml")

		err := ioutil.WriteFile(path, []byte(`
base-url = "https://x/"
maintainer = "TI"
archives-dir = "/srv/archives"
`), 0644)
		require.NoError(t, err)

		t.Setenv("ENERGIA_INDEX_CONFIG", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, path, cfg.Path())
		assert.Equal(t, "https://x/", cfg.BaseURL)
		assert.Equal(t, "TI", cfg.Maintainer)
		assert.Equal(t, "/srv/archives", cfg.ArchivesDir)
		assert.Equal(t, DefaultPackageName, cfg.PackageName)
	})

	t.Run("reads json", func(t *testing.T) {
		path := filepath.Join(dir, "index.json")

		err := ioutil.WriteFile(path, []byte(`{"base-url": "https://y/", "package-name": "ti"}`), 0644)
		require.NoError(t, err)

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "https://y/", cfg.BaseURL)
		assert.Equal(t, "ti", cfg.PackageName)
	})

	t.Run("finds the default config file", func(t *testing.T) {
		cdir := filepath.Join(dir, ".config", "energia-index")
		require.NoError(t, os.MkdirAll(cdir, 0755))

		err := ioutil.WriteFile(filepath.Join(cdir, "config.toml"), []byte(`email = "a@b"`), 0644)
		require.NoError(t, err)

		t.Setenv("ENERGIA_INDEX_CONFIG", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "a@b", cfg.Email)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("ENERGIA_INDEX_BASE_URL", "https://env/")
		t.Setenv("ENERGIA_INDEX_ARCHIVES", dir)

		cfg, err := LoadFile(filepath.Join(dir, "index.json"))
		require.NoError(t, err)

		assert.Equal(t, "https://env/", cfg.BaseURL)
		assert.Equal(t, dir, cfg.ArchivesDir)
	})

	t.Run("rejects archives that are not directories", func(t *testing.T) {
		t.Setenv("ENERGIA_INDEX_ARCHIVES", filepath.Join(dir, "index.json"))

		_, err := LoadFile(filepath.Join(dir, "index.json"))
		require.Error(t, err)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "index.ini"))
		require.Error(t, err)

		assert.True(t, errors.Is(err, ErrUnknownFormat))
	})
}
