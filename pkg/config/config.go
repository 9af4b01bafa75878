// Package config handles loading and saving algodocs configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/algodocs/config.yaml
//   - Data:    ~/.local/share/algodocs/ (extra catalog pages)
//   - State:   ~/.local/state/algodocs/ (taskbar slot, log file)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "algodocs"

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme         string `yaml:"theme,omitempty"`          // auto, dark, light
	StartLocation string `yaml:"start_location,omitempty"` // location opened on launch
}

// StoreConfig selects where the taskbar is persisted.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"` // file, sqlite, memory
	Dir     string `yaml:"dir,omitempty"`     // defaults to StateDir()
	Watch   *bool  `yaml:"watch,omitempty"`   // refresh the taskbar on external writes
}

// CatalogConfig adds page sources to the built-in catalog.
type CatalogConfig struct {
	ExtraDirs []string `yaml:"extra_dirs,omitempty"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`  // defaults to <store dir>/algodocs.log
}

// Config is the top-level configuration for algodocs.
type Config struct {
	UI        UIConfig       `yaml:"ui,omitempty"`
	Store     StoreConfig    `yaml:"store,omitempty"`
	Catalog   CatalogConfig  `yaml:"catalog,omitempty"`
	Log       LogConfig      `yaml:"log,omitempty"`
	Favorites map[int]string `yaml:"favorites,omitempty"` // Number key (1-9) -> page path
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Favorites: make(map[int]string),
		UI: UIConfig{
			Theme:         "auto",
			StartLocation: "/",
		},
		Store: StoreConfig{
			Backend: "file",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG config directory for algodocs.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for algodocs.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns the XDG state directory for algodocs.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Favorites == nil {
		cfg.Favorites = make(map[int]string)
	}

	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	cfg.Log.File = expandHome(cfg.Log.File)
	for i := range cfg.Catalog.ExtraDirs {
		cfg.Catalog.ExtraDirs[i] = expandHome(cfg.Catalog.ExtraDirs[i])
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolvedStoreDir returns the store directory, falling back to StateDir.
func (c Config) ResolvedStoreDir() string {
	if c.Store.Dir != "" {
		return c.Store.Dir
	}
	return StateDir()
}

// ResolvedLogFile returns the log file path, falling back to the store dir.
func (c Config) ResolvedLogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir := c.ResolvedStoreDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, appName+".log")
}

// WatchEnabled reports whether the taskbar watches for external writes.
// It defaults to on.
func (c Config) WatchEnabled() bool {
	return c.Store.Watch == nil || *c.Store.Watch
}

// FavoritePage returns the page path assigned to number key n (1-9).
func (c Config) FavoritePage(n int) (string, bool) {
	path, ok := c.Favorites[n]
	return path, ok && path != ""
}

// SetFavorite assigns a page path to a number key (1-9).
func (c *Config) SetFavorite(n int, path string) {
	if c.Favorites == nil {
		c.Favorites = make(map[int]string)
	}
	if path == "" {
		delete(c.Favorites, n)
	} else {
		c.Favorites[n] = path
	}
}

// FavoriteNumber returns the number key (1-9) for a page path, or 0.
func (c Config) FavoriteNumber(path string) int {
	for n, p := range c.Favorites {
		if strings.EqualFold(p, path) {
			return n
		}
	}
	return 0
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
