package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/darkawower/bgmanager/internal/colors"
	"github.com/darkawower/bgmanager/internal/platform"
	"github.com/darkawower/bgmanager/internal/settings"
)

type BackupConfig struct {
	Path string `toml:"path"`
}

type FallbackConfig struct {
	Color string `toml:"color"`
}

type EnumerationConfig struct {
	PlaceholderWidth  int `toml:"placeholder-width"`
	PlaceholderHeight int `toml:"placeholder-height"`
}

type Config struct {
	Backup      BackupConfig      `toml:"backup"`
	Fallback    FallbackConfig    `toml:"fallback"`
	Enumeration EnumerationConfig `toml:"enumeration"`

	configPath string
}

func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bgmanager")
}

func DefaultConfig() *Config {
	backupPath, _ := settings.DefaultPath()

	return &Config{
		Backup: BackupConfig{
			Path: backupPath,
		},
		Fallback: FallbackConfig{
			Color: colors.White.Hex(),
		},
		Enumeration: EnumerationConfig{
			PlaceholderWidth:  1920,
			PlaceholderHeight: 1080,
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.toml")
	}

	path = expandPath(path)

	cfg := DefaultConfig()
	cfg.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.postProcess()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) postProcess() {
	c.Backup.Path = expandPath(c.Backup.Path)
	if c.Backup.Path == "" {
		c.Backup.Path, _ = settings.DefaultPath()
	}
}

func (c *Config) Validate() error {
	if _, err := colors.ParseHex(c.Fallback.Color); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}

	if c.Enumeration.PlaceholderWidth <= 0 || c.Enumeration.PlaceholderHeight <= 0 {
		return fmt.Errorf("enumeration: placeholder size must be positive, got %dx%d",
			c.Enumeration.PlaceholderWidth, c.Enumeration.PlaceholderHeight)
	}

	return nil
}

// FallbackColor returns the solid colour used by the white command.
func (c *Config) FallbackColor() colors.Packed {
	col, err := colors.ParseHex(c.Fallback.Color)
	if err != nil {
		return colors.White.Packed()
	}
	return col.Packed()
}

// Placeholder returns the bounds recorded for monitors whose geometry
// cannot be determined.
func (c *Config) Placeholder() platform.Rect {
	return platform.Rect{
		Width:  c.Enumeration.PlaceholderWidth,
		Height: c.Enumeration.PlaceholderHeight,
	}
}

func (c *Config) ConfigPath() string {
	return c.configPath
}

func (c *Config) Save(path string) error {
	if path == "" {
		path = c.configPath
	}
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.toml")
	}

	path = expandPath(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}
