package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
	"github.com/YutaGoto/imasparql-mcp-server/internal/sparql"
)

const DefaultPath = "imasparql.yaml"

type Config struct {
	Version            int           `yaml:"version"`
	Endpoint           string        `yaml:"endpoint"`
	Timeout            time.Duration `yaml:"timeout"`
	AllowedIRIPrefixes []string      `yaml:"allowed_iri_prefixes"`
	HTTP               HTTPConfig    `yaml:"http"`
	Log                LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Version:            1,
		Endpoint:           graph.DefaultEndpoint,
		AllowedIRIPrefixes: []string{sparql.DetailNamespace},
		HTTP:               HTTPConfig{Addr: ":3000"},
		Log:                LogConfig{Level: "info"},
	}
}

// Load reads path when it exists and otherwise starts from Default. Env
// overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := applyEnv(cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	return cfg, err
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("IMASPARQL_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("IMASPARQL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("IMASPARQL_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("IMASPARQL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("IMASPARQL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http or https url: %s", cfg.Endpoint)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if len(cfg.AllowedIRIPrefixes) == 0 {
		return fmt.Errorf("at least one allowed iri prefix is required")
	}
	for i, p := range cfg.AllowedIRIPrefixes {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("allowed iri prefix %d is empty", i)
		}
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel accepts debug, info, warn or error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
	return level, nil
}

// Template is written by the init command.
const Template = `version: 1
endpoint: ` + graph.DefaultEndpoint + `
timeout: 0s
allowed_iri_prefixes:
  - ` + sparql.DetailNamespace + `
http:
  addr: ":3000"
log:
  file: ""
  level: info
`
