package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pantry/api"
)

// Config holds the Grocy connection and pantry's own logging settings.
type Config struct {
	URL         string
	Port        int
	Path        string
	APIKey      string
	VerifySSL   bool
	Timeout     time.Duration
	DueSoonDays int
	LogLevel    string
	LogFile     string
}

const (
	defaultConfigPath  = "~/.config/pantry/config.toml"
	defaultLogFile     = "~/.local/state/pantry/pantry.log"
	defaultLogLevel    = "info"
	defaultTimeout     = 10 * time.Second
	defaultDueSoonDays = 5
)

// Environment variables that override the file.
const (
	EnvURL       = "GROCY_URL"
	EnvPort      = "GROCY_PORT"
	EnvPath      = "GROCY_PATH"
	EnvAPIKey    = "GROCY_API_KEY"
	EnvVerifySSL = "GROCY_VERIFY_SSL"
	EnvTimeout   = "GROCY_TIMEOUT"
	EnvLogLevel  = "PANTRY_LOG_LEVEL"
	EnvLogFile   = "PANTRY_LOG_FILE"
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:        api.DefaultPort,
		VerifySSL:   true,
		Timeout:     defaultTimeout,
		DueSoonDays: defaultDueSoonDays,
		LogLevel:    defaultLogLevel,
		LogFile:     mustExpand(defaultLogFile),
	}
}

// LoadDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set win. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads the TOML file at path (or the default location), then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		URL         string `toml:"url"`
		Port        int    `toml:"port"`
		Path        string `toml:"path"`
		APIKey      string `toml:"api_key"`
		VerifySSL   *bool  `toml:"verify_ssl"`
		Timeout     string `toml:"timeout"`
		DueSoonDays *int   `toml:"due_soon_days"`
		LogLevel    string `toml:"log_level"`
		LogFile     string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	c.URL = strings.TrimSpace(raw.URL)
	if raw.Port != 0 {
		c.Port = raw.Port
	}
	c.Path = strings.Trim(strings.TrimSpace(raw.Path), "/")
	c.APIKey = strings.TrimSpace(raw.APIKey)
	if raw.VerifySSL != nil {
		c.VerifySSL = *raw.VerifySSL
	}
	if s := strings.TrimSpace(raw.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse config: timeout: %w", err)
		}
		c.Timeout = d
	}
	if raw.DueSoonDays != nil {
		c.DueSoonDays = *raw.DueSoonDays
	}
	if s := strings.TrimSpace(raw.LogLevel); s != "" {
		c.LogLevel = s
	}
	if s := strings.TrimSpace(raw.LogFile); s != "" {
		c.LogFile = mustExpand(s)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvURL); ok {
		c.URL = v
	}
	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v, ok := get(EnvPath); ok {
		c.Path = strings.Trim(v, "/")
	}
	if v, ok := get(EnvAPIKey); ok {
		c.APIKey = v
	}
	if v, ok := get(EnvVerifySSL); ok {
		verify, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerifySSL, err)
		}
		c.VerifySSL = verify
	}
	if v, ok := get(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvLogFile); ok {
		c.LogFile = mustExpand(v)
	}
	return nil
}

// Validate reports settings a client cannot work with.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("grocy url is not set (url in config or %s)", EnvURL)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// APIConfig maps the connection settings onto an api.Config.
func (c Config) APIConfig() api.Config {
	return api.Config{
		URL:                c.URL,
		Port:               c.Port,
		Path:               c.Path,
		APIKey:             c.APIKey,
		InsecureSkipVerify: !c.VerifySSL,
		Timeout:            c.Timeout,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
