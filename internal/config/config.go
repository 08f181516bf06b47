package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2330
	defaultEnv        = "development"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int      `yaml:"port"`
	DSN            string   `yaml:"dsn"` // MySQL DSN
	RedisURL       string   `yaml:"redis_url"`
	Env            string   `yaml:"env"` // "development" | "production"
	AllowedOrigins []string `yaml:"allowed_origins"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AI             AIConfig `yaml:"ai"`
}

// AIConfig configures the judge providers used for transcript evaluation.
type AIConfig struct {
	Providers       []AIProvider       `yaml:"providers"`
	EvaluationModel *AIModelAssignment `yaml:"evaluation_model,omitempty"`
}

// AIModelAssignment pins evaluation to a specific provider/model pair.
type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

// AIProvider is one configured LLM endpoint.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// Load reads the YAML config file and applies env-var overrides and defaults.
func Load(configPath string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required (config %q)", configPath)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("SUPERVISOR_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("SUPERVISOR_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SUPERVISOR_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SUPERVISOR_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		for i := range cfg.AI.Providers {
			if cfg.AI.Providers[i].APIKey == "" && isOpenAIType(cfg.AI.Providers[i].Type) {
				cfg.AI.Providers[i].APIKey = v
			}
		}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		for i := range cfg.AI.Providers {
			if cfg.AI.Providers[i].APIKey == "" && isAnthropicType(cfg.AI.Providers[i].Type) {
				cfg.AI.Providers[i].APIKey = v
			}
		}
	}
}

func isOpenAIType(t string) bool {
	n := normalizeProviderType(t)
	return n == "openai" || n == "openai-compatible" || n == "openaicompatible"
}

func isAnthropicType(t string) bool {
	return normalizeProviderType(t) == "anthropic"
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return "production"
	default:
		return "development"
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}
