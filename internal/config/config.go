package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains credentials and per-vendor settings for the LLM
// providers. Each vendor's key list is a comma-separated, ordered set of
// API keys; an empty list simply leaves that vendor out of the registry.
// At least one vendor must end up configured, which is checked when the
// provider registry is built, not here.
type LLMConfig struct {
	OpenAIAPIKeys    string `mapstructure:"openai_api_keys"`
	OpenAIModel      string `mapstructure:"openai_model"      validate:"required"`
	AnthropicAPIKeys string `mapstructure:"anthropic_api_keys"`
	AnthropicModel   string `mapstructure:"anthropic_model"   validate:"required"`
	GeminiAPIKeys    string `mapstructure:"gemini_api_keys"`
	GeminiModel      string `mapstructure:"gemini_model"      validate:"required"`

	// TimeoutSeconds bounds one whole generation call across all provider
	// attempts combined, not each attempt individually.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}
