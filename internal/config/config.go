package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database      DatabaseConfig      `toml:"database"`
	Session       SessionConfig       `toml:"session"`
	Notifications NotificationsConfig `toml:"notifications"`
	Log           LogConfig           `toml:"log"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type SessionConfig struct {
	Owner       string `toml:"owner"`
	DisplayName string `toml:"display_name"`
}

type NotificationsConfig struct {
	Desktop      bool `toml:"desktop"`
	Buffer       int  `toml:"buffer"`
	ToastSeconds int  `toml:"toast_seconds"`
}

// ToastTTL is how long a toast stays on screen.
func (n NotificationsConfig) ToastTTL() time.Duration {
	return time.Duration(n.ToastSeconds) * time.Second
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "taskkeeper", "taskkeeper.db"),
		},
		Session: SessionConfig{
			Owner: os.Getenv("USER"),
		},
		Notifications: NotificationsConfig{
			Desktop:      false,
			Buffer:       64,
			ToastSeconds: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath is where Load looks for the config file.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskkeeper", "config.toml"), nil
}

// Load reads the config file from the standard location and applies
// environment overrides.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom starts from Default, decodes the TOML file at configPath if it
// exists, then applies environment overrides.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg = FromEnv(cfg)
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	return cfg, nil
}

// FromEnv overrides cfg with any TASKKEEPER_* variables that are set and
// parse cleanly.
func FromEnv(base *Config) *Config {
	cfg := *base
	if v, ok := getEnvString("TASKKEEPER_DB"); ok {
		cfg.Database.Path = v
	}
	if v, ok := getEnvString("TASKKEEPER_OWNER"); ok {
		cfg.Session.Owner = v
	}
	if v, ok := getEnvString("TASKKEEPER_DISPLAY_NAME"); ok {
		cfg.Session.DisplayName = v
	}
	if v, ok := getEnvBool("TASKKEEPER_DESKTOP_NOTIFICATIONS"); ok {
		cfg.Notifications.Desktop = v
	}
	if v, ok := getEnvInt("TASKKEEPER_TOAST_BUFFER"); ok && v > 0 {
		cfg.Notifications.Buffer = v
	}
	if v, ok := getEnvInt("TASKKEEPER_TOAST_SECONDS"); ok && v > 0 {
		cfg.Notifications.ToastSeconds = v
	}
	if v, ok := getEnvString("TASKKEEPER_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvString("TASKKEEPER_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	return &cfg
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("config: database path is required")
	}
	if strings.TrimSpace(c.Session.Owner) == "" {
		return errors.New("config: session owner is required (set TASKKEEPER_OWNER or -owner)")
	}
	if c.Notifications.Buffer <= 0 {
		return fmt.Errorf("config: notification buffer must be positive, got %d", c.Notifications.Buffer)
	}
	if c.Notifications.ToastSeconds < 0 {
		return fmt.Errorf("config: toast seconds must not be negative, got %d", c.Notifications.ToastSeconds)
	}
	return nil
}

// SaveTo writes the configuration as TOML, creating parent directories.
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
