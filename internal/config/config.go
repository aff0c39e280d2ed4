package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "financellm.yaml"

// Config represents the top-level financellm.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Import   ImportConfig   `yaml:"import"`
	Rules    RulesConfig    `yaml:"rules"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port           int   `yaml:"port"`
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// LLMConfig points at the Ollama server used by /ask.
type LLMConfig struct {
	Host           string `yaml:"host"`
	Model          string `yaml:"model"`
	System         string `yaml:"system"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ImportConfig controls the drop-folder importer.
type ImportConfig struct {
	Dir         string `yaml:"dir"`
	AccountHint string `yaml:"account_hint,omitempty"`
}

// RulesConfig locates the YAML rule file.
type RulesConfig struct {
	File string `yaml:"file"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// Timeout returns the LLM request timeout.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Load reads a financellm.yaml file from disk. Unset fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Resolve loads path if it exists, falls back to defaults otherwise, and
// applies environment overrides.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getenv("OLLAMA_HOST"); v != "" {
		c.LLM.Host = v
	}
	if v := getenv("DEFAULT_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := getenv("IMPORT_DIR"); v != "" {
		c.Import.Dir = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "data/finance.db",
		},
		Server: ServerConfig{
			Port:           8000,
			MaxUploadBytes: 32 << 20,
		},
		LLM: LLMConfig{
			Host:           "http://localhost:11434",
			Model:          "phi3:mini",
			System:         "You are a helpful finance analyst.",
			TimeoutSeconds: 120,
		},
		Import: ImportConfig{
			Dir: "import",
		},
		Rules: RulesConfig{
			File: "rules/budget-rules.yaml",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
