// Package config loads and validates application configuration from the
// environment using Viper. All settings have development-friendly defaults
// and can be overridden with environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/spf13/viper"
)

// Environment identifies the deployment environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely (safe default).
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST"`
	Port         int    `mapstructure:"PORT"`
	User         string `mapstructure:"USER"`
	Password     string `mapstructure:"PASSWORD"`
	Name         string `mapstructure:"NAME"`
	SSLMode      string `mapstructure:"SSL_MODE"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"MAX_IDLE_CONNS"`
	ConnMaxLife  string `mapstructure:"CONN_MAX_LIFE"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and
// other URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// ConnectionString returns a key/value connection string for pgxpool.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.MaxOpenConns,
	)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS"`
	Password     string `mapstructure:"PASSWORD"`
	DB           int    `mapstructure:"DB"`
	UseTLS       bool   `mapstructure:"USE_TLS"`
	PoolSize     int    `mapstructure:"POOL_SIZE"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS"`
}

// ExternalServices holds API keys and URLs for external services.
type ExternalServices struct {
	SupabaseURL       string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey   string `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseJWTSecret string `mapstructure:"SUPABASE_JWT_SECRET"`
	OpenAIAPIKey      string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel       string `mapstructure:"OPENAI_MODEL"`
}

// StorageConfig holds Cloudflare R2 (S3-compatible) credentials for photo storage.
type StorageConfig struct {
	AccountID       string `mapstructure:"ACCOUNT_ID"`
	Bucket          string `mapstructure:"BUCKET"`
	AccessKeyID     string `mapstructure:"ACCESS_KEY_ID"`
	SecretAccessKey string `mapstructure:"SECRET_ACCESS_KEY"`
}

// Enabled reports whether photo storage is configured.
func (c *StorageConfig) Enabled() bool {
	return c.AccountID != "" && c.Bucket != "" && c.AccessKeyID != ""
}

// ExtractionConfig holds limits for the vision extraction endpoint.
type ExtractionConfig struct {
	// Maximum extraction requests per user per window.
	RequestsPerHour int `mapstructure:"REQUESTS_PER_HOUR"`
	// Timeout for a single vision API call (in seconds).
	TimeoutSeconds int `mapstructure:"TIMEOUT_SECONDS"`
}

// Config is the root application configuration.
type Config struct {
	Server           ServerConfig     `mapstructure:"SERVER"`
	Database         DatabaseConfig   `mapstructure:"DATABASE"`
	Redis            RedisConfig      `mapstructure:"REDIS"`
	ExternalServices ExternalServices `mapstructure:"EXTERNAL_SERVICES"`
	Storage          StorageConfig    `mapstructure:"STORAGE"`
	Extraction       ExtractionConfig `mapstructure:"EXTRACTION"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{}) // Empty = trust no one (safe default)
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "garagelog_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("DATABASE.MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("EXTERNAL_SERVICES.OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("EXTRACTION.REQUESTS_PER_HOUR", 10)
	v.SetDefault("EXTRACTION.TIMEOUT_SECONDS", 30)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		// Database config
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// External services
		{"EXTERNAL_SERVICES.SUPABASE_URL", "SUPABASE_URL"},
		{"EXTERNAL_SERVICES.SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY"},
		{"EXTERNAL_SERVICES.SUPABASE_JWT_SECRET", "SUPABASE_JWT_SECRET"},
		{"EXTERNAL_SERVICES.OPENAI_API_KEY", "OPENAI_API_KEY"},
		{"EXTERNAL_SERVICES.OPENAI_MODEL", "OPENAI_MODEL"},
		// Photo storage
		{"STORAGE.ACCOUNT_ID", "R2_ACCOUNT_ID"},
		{"STORAGE.BUCKET", "R2_BUCKET"},
		{"STORAGE.ACCESS_KEY_ID", "R2_ACCESS_KEY_ID"},
		{"STORAGE.SECRET_ACCESS_KEY", "R2_SECRET_ACCESS_KEY"},
		// Extraction limits
		{"EXTRACTION.REQUESTS_PER_HOUR", "EXTRACTION_REQUESTS_PER_HOUR"},
		{"EXTRACTION.TIMEOUT_SECONDS", "EXTRACTION_TIMEOUT_SECONDS"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"dbHost", cfg.Database.Host,
		"supabaseURL", cfg.ExternalServices.SupabaseURL,
		"openAIKey", logger.MaskSensitiveString(cfg.ExternalServices.OpenAIAPIKey, 3, 2),
	)
	return &cfg, nil
}

// validate enforces settings that must be present outside development.
func (c *Config) validate() error {
	if c.IsDevelopment() {
		return nil
	}
	if c.ExternalServices.SupabaseJWTSecret == "" && c.ExternalServices.SupabaseURL == "" {
		return fmt.Errorf("config validation: Supabase JWT secret or URL must be set outside development")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("config validation: database password must be set outside development")
	}
	return nil
}
