// Package config loads user settings from a YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/quickread/quickread/pkg/env"
	"github.com/quickread/quickread/pkg/reader"
)

// Config keeps the settings read from the configuration file. Fields absent
// from the file keep their defaults.
type Config struct {
	WPM              int         `yaml:"wpm" toml:"wpm"`
	Mode             reader.Mode `yaml:"mode" toml:"mode"`
	PunctuationPause bool        `yaml:"punctuation-pause" toml:"punctuation-pause"`
	SoftRewind       bool        `yaml:"soft-rewind" toml:"soft-rewind"`
	SoftRewindWords  int         `yaml:"soft-rewind-words" toml:"soft-rewind-words"`
	// Path of the library database.
	DB string `yaml:"db" toml:"db"`
	// Path of the debug log. Empty disables logging.
	Log string `yaml:"log" toml:"log"`
}

// Default returns the configuration used when there is no configuration file.
func Default() Config {
	s := reader.DefaultSettings()
	return Config{
		WPM:              s.WPM,
		Mode:             s.Mode,
		PunctuationPause: s.PunctuationPause,
		SoftRewind:       s.SoftRewind,
		SoftRewindWords:  s.SoftRewindWords,
	}
}

// Settings returns the reader settings in c, normalized.
func (c Config) Settings() reader.Settings {
	return reader.Settings{
		WPM:              c.WPM,
		Mode:             c.Mode,
		PunctuationPause: c.PunctuationPause,
		SoftRewind:       c.SoftRewind,
		SoftRewindWords:  c.SoftRewindWords,
	}.Normalize()
}

// Load reads the configuration from path on top of the defaults. The format
// is chosen by the extension: .toml for TOML, anything else for YAML.
//
// If path is empty, the default location is used, and a missing file there
// is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = findDefault()
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Dir returns the directory holding the configuration file, honoring
// $XDG_CONFIG_HOME.
func Dir() (string, error) {
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "quickread"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quickread"), nil
}

// DataDir returns the directory holding the library database, honoring
// $XDG_DATA_HOME, and creates it if necessary.
func DataDir() (string, error) {
	var dir string
	if xdg := os.Getenv(env.XDG_DATA_HOME); xdg != "" {
		dir = filepath.Join(xdg, "quickread")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "share", "quickread")
	}
	return dir, os.MkdirAll(dir, 0700)
}

// DBPath returns the path of the library database: $QUICKREAD_DB if set, the
// db setting if not empty, or db.bolt in DataDir.
func (c Config) DBPath() (string, error) {
	if p := os.Getenv(env.QUICKREAD_DB); p != "" {
		return p, nil
	}
	if c.DB != "" {
		return c.DB, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}

// findDefault returns the path of the first configuration file that exists:
// $QUICKREAD_CONFIG, then config.yaml, config.yml and config.toml in Dir.
func findDefault() string {
	if p := os.Getenv(env.QUICKREAD_CONFIG); p != "" {
		return p
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); !errors.Is(err, fs.ErrNotExist) {
			return p
		}
	}
	return ""
}
