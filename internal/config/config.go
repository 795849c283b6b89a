package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Classifier ClassifierConfig `mapstructure:"classifier" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Insights   InsightsConfig   `mapstructure:"insights"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"omitempty,gte=4,lte=31"`
}

// ClassifierConfig contains settings for the cognitive-distortion
// classification service.
type ClassifierConfig struct {
	APIKey  string `mapstructure:"api_key" validate:"required"`
	ModelID string `mapstructure:"model_id" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	// TimeoutSeconds bounds a single classify call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
}

// LLMConfig contains all reframe-generation (Gemini) settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name"     validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"        validate:"omitempty,gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"omitempty,gt=0"`
}

// InsightsConfig contains settings for the insight-aggregation read path.
type InsightsConfig struct {
	// CacheTTLSeconds is how long a computed dashboard snapshot stays
	// valid. Zero falls back to the default of 60 seconds.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" validate:"omitempty,gte=0"`
}
