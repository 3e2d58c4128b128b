package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for homescribe-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"3000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Whisper speech-to-text service
	Whisper WhisperConfig `yaml:"whisper"`

	// OpenAI-compatible chat-completion endpoint
	LLM LLMConfig `yaml:"llm"`

	// Audio upload handling
	Upload UploadConfig `yaml:"upload"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"homescribe"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"homescribe_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// WhisperConfig holds the transcription service configuration.
type WhisperConfig struct {
	BaseURL        string        `yaml:"base_url" env:"WHISPER_BASE_URL" env-default:"http://localhost:9010"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"WHISPER_REQUEST_TIMEOUT" env-default:"120s"`
}

// LLMConfig holds the chat-completion endpoint configuration.
// The endpoint must be OpenAI API compatible (Ollama, vLLM, OpenAI itself).
type LLMConfig struct {
	Endpoint       string        `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"http://localhost:11434/v1"`
	Model          string        `yaml:"model" env:"LLM_MODEL" env-default:"llama3.1"`
	APIKey         string        `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML, optional for local endpoints
	RequestTimeout time.Duration `yaml:"request_timeout" env:"LLM_REQUEST_TIMEOUT" env-default:"60s"`

	// Sampling parameters. Summaries favor determinism; extraction is
	// near-deterministic because the output must be machine-parseable JSON.
	SummaryTemperature    float64 `yaml:"summary_temperature" env:"LLM_SUMMARY_TEMPERATURE" env-default:"0.3"`
	SummaryMaxTokens      int     `yaml:"summary_max_tokens" env:"LLM_SUMMARY_MAX_TOKENS" env-default:"500"`
	ExtractionTemperature float64 `yaml:"extraction_temperature" env:"LLM_EXTRACTION_TEMPERATURE" env-default:"0.1"`
	ExtractionMaxTokens   int     `yaml:"extraction_max_tokens" env:"LLM_EXTRACTION_MAX_TOKENS" env-default:"1000"`
}

// UploadConfig holds audio upload settings.
// MaxBytes is the single authoritative upload limit; it is enforced
// server-side and reported to clients in rejection messages.
type UploadConfig struct {
	Dir      string `yaml:"dir" env:"UPLOAD_DIR" env-default:"uploads"`
	MaxBytes int64  `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"26214400"` // 25MB
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Whisper.BaseURL == "" {
		return fmt.Errorf("whisper base_url is required")
	}
	if c.LLM.Endpoint == "" {
		return fmt.Errorf("llm endpoint is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max_bytes must be positive")
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
