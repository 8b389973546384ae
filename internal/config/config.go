// Package config loads service configuration from a TOML base file, an
// environment-specific overlay, and environment variable overrides, in that
// order. Every subsystem config finalizes through the same three phases:
// defaults, environment, validation.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/database"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvDvaiEnv     = "DVAI_ENV"
	EnvDvaiVersion = "DVAI_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "DVAI_DB_HOST",
	Port:            "DVAI_DB_PORT",
	Name:            "DVAI_DB_NAME",
	User:            "DVAI_DB_USER",
	Password:        "DVAI_DB_PASSWORD",
	SSLMode:         "DVAI_DB_SSL_MODE",
	MaxOpenConns:    "DVAI_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "DVAI_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DVAI_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "DVAI_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "DVAI_STORAGE_CONTAINER_NAME",
	ConnectionString: "DVAI_STORAGE_CONNECTION_STRING",
}

var llmEnv = &llm.Env{
	Provider:   "DVAI_LLM_PROVIDER",
	Model:      "DVAI_LLM_MODEL",
	APIKey:     "DVAI_LLM_API_KEY",
	BaseURL:    "DVAI_LLM_BASE_URL",
	Timeout:    "DVAI_LLM_TIMEOUT",
	MaxRetries: "DVAI_LLM_MAX_RETRIES",
}

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig    `toml:"server"`
	Database database.Config `toml:"database"`
	Storage  storage.Config  `toml:"storage"`
	LLM      llm.Config      `toml:"llm"`
	Privacy  PrivacyConfig   `toml:"privacy"`
	Pipeline PipelineConfig  `toml:"pipeline"`
	API      APIConfig       `toml:"api"`
	Version  string          `toml:"version"`
}

// Env returns the DVAI_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvDvaiEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.LLM.Merge(&overlay.LLM)
	c.Privacy.Merge(&overlay.Privacy)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvDvaiVersion); v != "" {
		c.Version = v
	}

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.LLM.Finalize(llmEnv); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Privacy.Finalize(); err != nil {
		return fmt.Errorf("privacy: %w", err)
	}
	if err := c.Pipeline.Finalize(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvDvaiEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
