package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/meltforce/fitlog/internal/store"
)

type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

type StoreConfig struct {
	InitialCapacity int `yaml:"initial_capacity" validate:"gte=0"`
	MinCapacity     int `yaml:"min_capacity" validate:"gte=4"`
	MaxCapacity     int `yaml:"max_capacity" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Options converts the store section into store.Options.
func (s StoreConfig) Options() store.Options {
	return store.Options{
		InitialCapacity: s.InitialCapacity,
		MinCapacity:     s.MinCapacity,
		MaxCapacity:     s.MaxCapacity,
	}
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			InitialCapacity: store.DefaultInitialCapacity,
			MinCapacity:     store.DefaultMinCapacity,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// EnvFile is the dotenv file read before environment overrides are applied.
var EnvFile = ".env"

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. Env vars use the prefix FITLOG_:
//
//	FITLOG_STORE_INITIAL_CAPACITY, FITLOG_STORE_MIN_CAPACITY,
//	FITLOG_STORE_MAX_CAPACITY, FITLOG_LOG_LEVEL, FITLOG_LOG_FORMAT
//
// Values from a .env file in the working directory count as environment
// variables but never replace ones already set.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadDefault is Load without a config file.
func LoadDefault() (*Config, error) {
	return finish(Default())
}

func finish(cfg *Config) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadEnvFile() error {
	err := godotenv.Load(EnvFile)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("reading env file %s: %w", EnvFile, err)
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt("FITLOG_STORE_INITIAL_CAPACITY"); ok {
		cfg.Store.InitialCapacity = v
	}
	if v, ok := envInt("FITLOG_STORE_MIN_CAPACITY"); ok {
		cfg.Store.MinCapacity = v
	}
	if v, ok := envInt("FITLOG_STORE_MAX_CAPACITY"); ok {
		cfg.Store.MaxCapacity = v
	}
	if v := os.Getenv("FITLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("FITLOG_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Store.MaxCapacity != 0 && c.Store.MaxCapacity < c.Store.InitialCapacity {
		return fmt.Errorf("store.max_capacity (%d) is below store.initial_capacity (%d)",
			c.Store.MaxCapacity, c.Store.InitialCapacity)
	}
	return nil
}
