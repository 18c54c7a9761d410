package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Environment variables read by ApplyEnv
const (
	EnvHost      = "SIMPLEBAYES_HOST"
	EnvPort      = "SIMPLEBAYES_PORT"
	EnvAuthToken = "SIMPLEBAYES_AUTH_TOKEN"
	EnvModelPath = "SIMPLEBAYES_MODEL_PATH"
	EnvLogLevel  = "SIMPLEBAYES_LOG_LEVEL"
	EnvTokenizer = "SIMPLEBAYES_TOKENIZER"
)

type Config struct {
	App         AppConfig         `yaml:"app"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Persistence PersistenceConfig `yaml:"persistence"`
	MCP         MCPConfig         `yaml:"mcp"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type AppConfig struct {
	Host            string        `yaml:"host" validate:"required"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	AuthToken       string        `yaml:"auth_token"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" validate:"gt=0"`
	RateLimit       float64       `yaml:"rate_limit" validate:"gte=0"` // requests per second per client, 0 disables
	RateBurst       int           `yaml:"rate_burst" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type ClassifierConfig struct {
	Tokenizer string `yaml:"tokenizer" validate:"oneof=stemmed plain go java javascript typescript python"`
}

type PersistenceConfig struct {
	Path           string `yaml:"path" validate:"required"`
	LoadOnStart    bool   `yaml:"load_on_start"`
	SaveOnShutdown bool   `yaml:"save_on_shutdown"`
	Watch          bool   `yaml:"watch"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Level       string   `yaml:"level" validate:"oneof=debug info warn error"`
	OutputPaths []string `yaml:"output_paths" validate:"min=1"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		App: AppConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Classifier: ClassifierConfig{
			Tokenizer: "stemmed",
		},
		Persistence: PersistenceConfig{
			Path: "/tmp/simplebayes-model.json",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:       "info",
			OutputPaths: []string{"stdout"},
		},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file at
// path and SIMPLEBAYES_* environment variables, in that order, then validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHost); ok && strings.TrimSpace(v) != "" {
		c.App.Host = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPort); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.App.Port = port
	}
	if v, ok := lookup(EnvAuthToken); ok {
		c.App.AuthToken = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvModelPath); ok && strings.TrimSpace(v) != "" {
		c.Persistence.Path = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvTokenizer); ok && strings.TrimSpace(v) != "" {
		c.Classifier.Tokenizer = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}
