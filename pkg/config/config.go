package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type Config struct {
	path string

	BaseURL     string `json:"base-url" toml:"base-url"`
	PackageName string `json:"package-name" toml:"package-name"`
	Maintainer  string `json:"maintainer" toml:"maintainer"`
	WebsiteURL  string `json:"website-url" toml:"website-url"`
	Email       string `json:"email" toml:"email"`
	HelpURL     string `json:"help-url" toml:"help-url"`
	ArchivesDir string `json:"archives-dir" toml:"archives-dir"`
}

const (
	DefaultConfigDir   = "~/.config/energia-index"
	DefaultBaseURL     = "http://energia.nu/files/"
	DefaultPackageName = "energia"
	DefaultMaintainer  = "Energia"
	DefaultWebsiteURL  = "http://energia.nu/"
	DefaultEmail       = "energia@energia.nu"
	DefaultHelpURL     = "http://energia.nu/"
)

var ErrUnknownFormat = errors.New("unknown config format")

// LoadConfig reads $ENERGIA_INDEX_CONFIG when set, otherwise config.toml or
// config.json in DefaultConfigDir. Missing files mean defaults.
func LoadConfig() (*Config, error) {
	if loc := os.Getenv("ENERGIA_INDEX_CONFIG"); loc != "" {
		return LoadFile(loc)
	}

	dir, err := homedir.Expand(DefaultConfigDir)
	if err != nil {
		return nil, err
	}

	for _, name := range []string{"config.toml", "config.json"} {
		path := filepath.Join(dir, name)

		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := &Config{}

	return updateFromEnv(setDefaults(cfg))
}

func LoadFile(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.DecodeFile(path, &cfg)
	case ".json":
		var f *os.File

		f, err = os.Open(path)
		if err != nil {
			break
		}

		defer f.Close()

		err = json.NewDecoder(f).Decode(&cfg)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "path: %s", path)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to load config %s", path)
	}

	cfg.path = path

	if cfg.ArchivesDir != "" {
		cfg.ArchivesDir, err = homedir.Expand(cfg.ArchivesDir)
		if err != nil {
			return nil, err
		}
	}

	return updateFromEnv(setDefaults(&cfg))
}

func setDefaults(cfg *Config) *Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.PackageName == "" {
		cfg.PackageName = DefaultPackageName
	}

	if cfg.Maintainer == "" {
		cfg.Maintainer = DefaultMaintainer
	}

	if cfg.WebsiteURL == "" {
		cfg.WebsiteURL = DefaultWebsiteURL
	}

	if cfg.Email == "" {
		cfg.Email = DefaultEmail
	}

	if cfg.HelpURL == "" {
		cfg.HelpURL = DefaultHelpURL
	}

	return cfg
}

func updateFromEnv(cfg *Config) (*Config, error) {
	if url := os.Getenv("ENERGIA_INDEX_BASE_URL"); url != "" {
		cfg.BaseURL = url
	}

	if path := os.Getenv("ENERGIA_INDEX_ARCHIVES"); path != "" {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !fi.IsDir() {
			return nil, errors.Errorf("path is not a directory: %s", path)
		}

		cfg.ArchivesDir = path
	}

	return cfg, nil
}

// Path is the file the config was read from, empty for defaults.
func (c *Config) Path() string {
	return c.path
}
