// Package config resolves runtime settings from built-in defaults, an
// optional TOML file and STUDYD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/sandeepkv93/studyd/internal/model"
)

const appDir = "studyd"

type Config struct {
	DBPath               string `toml:"db_path"`
	LogPath              string `toml:"log_path"`
	LogLevel             string `toml:"log_level"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	SoundEnabled         bool   `toml:"sound_enabled"`
	SoundDir             string `toml:"sound_dir"`
	SeedWelcome          bool   `toml:"seed_welcome"`
	TimerLength          int    `toml:"timer_length"`
}

func Default() Config {
	data := dataDir()
	return Config{
		DBPath:               filepath.Join(data, "studyd.db"),
		LogPath:              filepath.Join(data, "studyd.log"),
		LogLevel:             "info",
		DesktopNotifications: false,
		SoundEnabled:         true,
		SoundDir:             filepath.Join(data, "sounds"),
		SeedWelcome:          true,
		TimerLength:          model.DefaultTimerLength,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/studyd/config.toml, falling back to
// ~/.config. STUDYD_CONFIG overrides it.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv("STUDYD_CONFIG")); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appDir, "config.toml")
}

func dataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDir)
}

// Load applies the file at path (a missing file is fine) and then the
// environment on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if c.TimerLength <= 0 {
		return fmt.Errorf("config: timer_length must be positive, got %d", c.TimerLength)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Encode renders c as TOML, as written by `studyd config init`.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("STUDYD_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("STUDYD_LOG_FILE"); ok {
		cfg.LogPath = strings.TrimSpace(v)
	}
	if v, ok := getEnvString("STUDYD_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvBool("STUDYD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("STUDYD_SOUND"); ok {
		cfg.SoundEnabled = v
	}
	if v, ok := getEnvString("STUDYD_SOUND_DIR"); ok {
		cfg.SoundDir = v
	}
	if v, ok := getEnvBool("STUDYD_SEED_WELCOME"); ok {
		cfg.SeedWelcome = v
	}
	if v, ok := getEnvInt("STUDYD_TIMER_LENGTH"); ok && v > 0 {
		cfg.TimerLength = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
