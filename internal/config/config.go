package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	DocstudyAPIKey string `yaml:"-"`

	// Model
	AnthropicAPIKey  string `yaml:"-"`
	AnthropicModel   string `yaml:"anthropic_model"`
	AnthropicBaseURL string `yaml:"anthropic_base_url"`

	// Worker pool
	WorkerCount            int `yaml:"worker_count"`
	MaxQueueSize           int `yaml:"max_queue_size"`
	MaxConcurrentProposals int `yaml:"max_concurrent_proposals"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Topic detection
	TopicChunkSize int `yaml:"topic_chunk_size"`
	TopicMinWords  int `yaml:"topic_min_words"`

	// Job and document state
	JobTTL time.Duration `yaml:"job_ttl"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`
}

func defaults() Config {
	return Config{
		Port:                   "8090",
		AnthropicModel:         "claude-3-5-haiku-latest",
		WorkerCount:            4,
		MaxQueueSize:           100,
		MaxConcurrentProposals: 4,
		MaxUploadBytes:         52428800, // 50MB
		TopicChunkSize:         40000,
		TopicMinWords:          300,
		JobTTL:                 1 * time.Hour,
		PDFFallbackPdftotext:   true,
	}
}

// Load builds the configuration from defaults, then the optional YAML file
// at path, then environment variables. Secrets only come from the
// environment.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.DocstudyAPIKey = os.Getenv("DOCSTUDY_API_KEY")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.AnthropicModel = envOr("ANTHROPIC_MODEL", cfg.AnthropicModel)
	cfg.AnthropicBaseURL = envOr("ANTHROPIC_BASE_URL", cfg.AnthropicBaseURL)

	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxConcurrentProposals = envInt("MAX_CONCURRENT_PROPOSALS", cfg.MaxConcurrentProposals)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.TopicChunkSize = envInt("TOPIC_CHUNK_SIZE", cfg.TopicChunkSize)
	cfg.TopicMinWords = envInt("TOPIC_MIN_WORDS", cfg.TopicMinWords)
	cfg.JobTTL = envDuration("JOB_TTL", cfg.JobTTL)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)

	d := defaults()
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = d.WorkerCount
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = d.MaxQueueSize
	}
	if cfg.MaxConcurrentProposals <= 0 {
		cfg.MaxConcurrentProposals = d.MaxConcurrentProposals
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = d.MaxUploadBytes
	}
	if cfg.TopicChunkSize <= 0 {
		cfg.TopicChunkSize = d.TopicChunkSize
	}
	if cfg.TopicMinWords <= 0 {
		cfg.TopicMinWords = d.TopicMinWords
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = d.JobTTL
	}

	return cfg, nil
}

// Validate checks what the HTTP server needs. The CLI only needs the model
// key, see ValidateModel.
func (c Config) Validate() error {
	if c.DocstudyAPIKey == "" {
		return fmt.Errorf("DOCSTUDY_API_KEY is required")
	}
	return c.ValidateModel()
}

func (c Config) ValidateModel() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
