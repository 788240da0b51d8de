// Package config loads and validates the run configuration.
// Configuration comes from a YAML or JSON file (YAML is a superset of
// JSON, so the historical config.json format keeps working), with
// environment variables taking precedence over file values.
// Validation is fail-closed: an invalid configuration aborts the run
// before any provider dispatch begins.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"deckbrief/internal/domain/entity"
	pkgconfig "deckbrief/pkg/config"
)

// Provider identifiers accepted on the command line.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderWatson = "watson"
)

// Config holds every setting a summarization run needs.
// It is loaded once and treated as read-only for the run duration.
type Config struct {
	// Watson NLU credentials
	WatsonAPIKey     string `yaml:"watson_api_key" json:"watson_api_key"`
	WatsonServiceURL string `yaml:"watson_service_url" json:"watson_service_url"`

	// OpenAI settings
	OpenAIAPIKey      string  `yaml:"openai_api_key" json:"openai_api_key"`
	OpenAIModel       string  `yaml:"openai_model" json:"openai_model"`
	OpenAIMaxTokens   int     `yaml:"openai_max_tokens" json:"openai_max_tokens"`
	OpenAITemperature float64 `yaml:"openai_temperature" json:"openai_temperature"`

	// Anthropic settings
	AnthropicAPIKey    string `yaml:"anthropic_api_key" json:"anthropic_api_key"`
	AnthropicModel     string `yaml:"anthropic_model" json:"anthropic_model"`
	AnthropicMaxTokens int    `yaml:"anthropic_max_tokens" json:"anthropic_max_tokens"`

	// DefaultSummarizationLevel is the bullet-point count used when the
	// CLI flag is absent. Practical range 3-10.
	DefaultSummarizationLevel int `yaml:"default_summarization_level" json:"default_summarization_level"`

	// MinCharacters is the eligibility threshold: notes shorter than
	// this are passed through without a provider call.
	MinCharacters int `yaml:"min_characters" json:"min_characters"`

	// RateLimit is the global provider call-start rate in calls per second.
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`

	// MaxRetries is the total attempt count per unit.
	MaxRetries int `yaml:"max_retries" json:"max_retries"`

	// RequestTimeout bounds a single provider API call.
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`

	// PerplexityAPIKey is accepted for config-file compatibility.
	// No Perplexity provider is implemented.
	PerplexityAPIKey string `yaml:"perplexity_api_key" json:"perplexity_api_key"`
}

// Default values applied before file and environment overrides.
const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
	defaultMaxTokens      = 1024
	defaultTemperature    = 0.3
	defaultLevel          = 5
	defaultMinCharacters  = 100
	defaultRateLimit      = 1.0
	defaultMaxRetries     = 3
	defaultRequestTimeout = 60 * time.Second
)

func defaults() Config {
	return Config{
		OpenAIModel:               defaultOpenAIModel,
		OpenAIMaxTokens:           defaultMaxTokens,
		OpenAITemperature:         defaultTemperature,
		AnthropicModel:            defaultAnthropicModel,
		AnthropicMaxTokens:        defaultMaxTokens,
		DefaultSummarizationLevel: defaultLevel,
		MinCharacters:             defaultMinCharacters,
		RateLimit:                 defaultRateLimit,
		MaxRetries:                defaultMaxRetries,
		RequestTimeout:            defaultRequestTimeout,
	}
}

// Load reads the configuration file at path, applies environment
// overrides, and returns the result without validating it. Call
// Validate with the selected provider before dispatching.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration file %s: %w", path, err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// applyEnv lets environment variables override file values, matching the
// credential-handling convention of the provider SDKs.
func (c *Config) applyEnv() {
	c.OpenAIAPIKey = pkgconfig.GetEnvString("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.AnthropicAPIKey = pkgconfig.GetEnvString("ANTHROPIC_API_KEY", c.AnthropicAPIKey)
	c.WatsonAPIKey = pkgconfig.GetEnvString("WATSON_API_KEY", c.WatsonAPIKey)
	c.WatsonServiceURL = pkgconfig.GetEnvString("WATSON_SERVICE_URL", c.WatsonServiceURL)
	c.MinCharacters = pkgconfig.GetEnvInt("DECKBRIEF_MIN_CHARACTERS", c.MinCharacters)
	c.MaxRetries = pkgconfig.GetEnvInt("DECKBRIEF_MAX_RETRIES", c.MaxRetries)
	c.RateLimit = pkgconfig.GetEnvFloat("DECKBRIEF_RATE_LIMIT", c.RateLimit)
	c.RequestTimeout = pkgconfig.GetEnvDuration("DECKBRIEF_REQUEST_TIMEOUT", c.RequestTimeout)
}

// Validate checks the thresholds and the credentials of the selected
// provider. Any error here is fatal before dispatch starts.
func (c *Config) Validate(provider string) error {
	if c.MinCharacters < 0 {
		return fmt.Errorf("%w: min_characters must be non-negative, got %d",
			entity.ErrInvalidConfig, c.MinCharacters)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: rate_limit must be positive, got %v",
			entity.ErrInvalidConfig, c.RateLimit)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max_retries must be non-negative, got %d",
			entity.ErrInvalidConfig, c.MaxRetries)
	}
	if c.DefaultSummarizationLevel < 3 || c.DefaultSummarizationLevel > 10 {
		return fmt.Errorf("%w: default_summarization_level must be between 3 and 10, got %d",
			entity.ErrInvalidConfig, c.DefaultSummarizationLevel)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("%w: request_timeout: %v", entity.ErrInvalidConfig, err)
	}

	switch provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: openai_api_key is required for provider %q",
				entity.ErrInvalidConfig, provider)
		}
		if c.OpenAIModel == "" {
			return fmt.Errorf("%w: openai_model is required", entity.ErrInvalidConfig)
		}
	case ProviderClaude:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("%w: anthropic_api_key is required for provider %q",
				entity.ErrInvalidConfig, provider)
		}
		if c.AnthropicModel == "" {
			return fmt.Errorf("%w: anthropic_model is required", entity.ErrInvalidConfig)
		}
	case ProviderWatson:
		if c.WatsonAPIKey == "" {
			return fmt.Errorf("%w: watson_api_key is required for provider %q",
				entity.ErrInvalidConfig, provider)
		}
		if c.WatsonServiceURL == "" {
			return fmt.Errorf("%w: watson_service_url is required for provider %q",
				entity.ErrInvalidConfig, provider)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", entity.ErrInvalidConfig, provider)
	}

	return nil
}
