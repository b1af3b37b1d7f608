package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/search"
)

const (
	DefaultCards        = "2, 3, 5, 8, 13, 15, 18, 20, 23, 25"
	DefaultTarget       = 8
	DefaultPolicy       = "lenient"
	DefaultNumbering    = "legacy"
	DefaultAddr         = ":8080"
	DefaultPreviewLimit = 80
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"

	EnvPrefix = "CARDSEARCH_"
)

type Config struct {
	Cards     string       `yaml:"cards"`
	Target    int          `yaml:"target"`
	Policy    string       `yaml:"policy"`
	Numbering string       `yaml:"numbering"`
	Server    ServerConfig `yaml:"server"`
	Log       LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	PreviewLimit int    `yaml:"preview_limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Cards:     DefaultCards,
		Target:    DefaultTarget,
		Policy:    DefaultPolicy,
		Numbering: DefaultNumbering,
		Server: ServerConfig{
			Addr:         DefaultAddr,
			PreviewLimit: DefaultPreviewLimit,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads a .env file if one is present. A missing file is not an error.
func LoadEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// ApplyEnv overrides fields from CARDSEARCH_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := getenv("CARDS"); v != "" {
		c.Cards = v
	}
	if v := getenv("TARGET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTARGET: %w", EnvPrefix, err)
		}
		c.Target = n
	}
	if v := getenv("POLICY"); v != "" {
		c.Policy = v
	}
	if v := getenv("NUMBERING"); v != "" {
		c.Numbering = v
	}
	if v := getenv("ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("PREVIEW_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPREVIEW_LIMIT: %w", EnvPrefix, err)
		}
		c.Server.PreviewLimit = n
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return c.Validate()
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func (c *Config) Validate() error {
	if _, err := c.GetPolicy(); err != nil {
		return err
	}
	if _, err := c.GetNumbering(); err != nil {
		return err
	}
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	if _, err := c.Log.JSON(); err != nil {
		return err
	}
	if c.Server.PreviewLimit < 0 {
		return fmt.Errorf("preview_limit must not be negative, got %d", c.Server.PreviewLimit)
	}
	return nil
}

func (c *Config) GetPolicy() (deck.Policy, error) {
	return deck.ParsePolicy(c.Policy)
}

func (c *Config) GetNumbering() (search.Numbering, error) {
	return search.ParseNumbering(c.Numbering)
}

func (c *Config) GetLogLevel() (slog.Level, error) {
	return c.Log.SlogLevel()
}

// SlogLevel parses Level the way slog spells levels ("debug", "WARN", "info+2").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return level, nil
}

// JSON reports whether records are written as JSON rather than logfmt text.
func (l LogConfig) JSON() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("log format %q: want text or json", l.Format)
	}
}

// GetDeck parses Cards with the configured policy.
func (c *Config) GetDeck() (deck.Deck, error) {
	p, err := c.GetPolicy()
	if err != nil {
		return nil, err
	}
	return deck.ParseWith(c.Cards, p)
}

// NewSimulator returns a simulator using the configured numbering scheme.
func (c *Config) NewSimulator() (*search.Simulator, error) {
	n, err := c.GetNumbering()
	if err != nil {
		return nil, err
	}
	return search.New(search.WithNumbering(n)), nil
}
