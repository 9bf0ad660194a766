package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	ApiKey    ApiKeyConfig
	Admin     AdminConfig
	Email     EmailConfig
	Analytics AnalyticsConfig
	Jobs      JobsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	// AutoMigrate runs gorm schema migration on startup; development convenience,
	// production uses goose migrations via cmd/migrate
	AutoMigrate bool
}

// AuthConfig holds JWT signing configuration for the admin panel login
type AuthConfig struct {
	// JWTSecret signs HS256 session tokens; required outside development
	JWTSecret string
	// TokenTTLMinutes is the session token lifetime
	TokenTTLMinutes int
}

// ApiKeyConfig guards system endpoints such as admin provisioning
type ApiKeyConfig struct {
	Value string
}

// AdminConfig describes the provisioned admin account.
// Provisioning is idempotent: the account is created if absent,
// otherwise its password is reset to the configured value.
type AdminConfig struct {
	Email    string
	Password string
}

// EmailConfig holds the transactional email provider settings
type EmailConfig struct {
	// BaseURL of the provider's REST API
	BaseURL string
	// APIKey is the provider bearer token
	APIKey string
	// DefaultFrom is used when a send request carries no from address
	DefaultFrom string
	// TimeoutSeconds bounds a single provider call
	TimeoutSeconds int
}

// AnalyticsConfig carries the business constants behind the reporting
// endpoints. These were inline literals in the firm's first admin panel;
// they are configurable here with the same defaults.
type AnalyticsConfig struct {
	// DefaultHourlyRate (kr/hour) backs estimated hours when a project has no rate
	DefaultHourlyRate float64
	// CostRatio is the assumed cost share of billed hours
	CostRatio float64
	// CapacityCaps limits concurrently ongoing projects per service type
	CapacityCaps map[string]int
}

// JobsConfig controls background jobs
type JobsConfig struct {
	// EngagementRecomputeEnabled toggles the nightly score refresh
	EngagementRecomputeEnabled bool
	// EngagementRecomputeCron is the schedule in cron format
	EngagementRecomputeCron string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	XSSProtection         string
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled               bool
	RequestsPerMinute     int
	RequestsPerMinuteAuth int
	BurstSize             int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// TokenTTL returns the session token lifetime as duration
func (a *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Timeout returns the provider call timeout as duration
func (e *EmailConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	// Read from config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from the environment, never the config file
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.ApiKey.Value == "" {
		cfg.ApiKey.Value = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = v.GetString("ADMIN_EMAIL")
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = v.GetString("ADMIN_PASSWORD")
	}
	if cfg.Email.APIKey == "" {
		cfg.Email.APIKey = v.GetString("EMAIL_API_KEY")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.App.Environment != "development" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in %s", c.App.Environment)
	}
	if c.Analytics.CostRatio <= 0 || c.Analytics.CostRatio > 1 {
		return fmt.Errorf("analytics.costRatio must be in (0, 1], got %v", c.Analytics.CostRatio)
	}
	if c.Analytics.DefaultHourlyRate <= 0 {
		return fmt.Errorf("analytics.defaultHourlyRate must be positive, got %v", c.Analytics.DefaultHourlyRate)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Consulting CRM API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "crm")
	v.SetDefault("database.user", "crm_user")
	v.SetDefault("database.password", "crm_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.autoMigrate", false)

	// Auth defaults
	v.SetDefault("auth.tokenTTLMinutes", 720) // 12 hours
	v.SetDefault("auth.jwtSecret", "")

	// Admin provisioning defaults (override in every environment)
	v.SetDefault("admin.email", "admin@example.com")

	// Email provider defaults
	v.SetDefault("email.baseURL", "https://api.resend.com")
	v.SetDefault("email.defaultFrom", "noreply@example.com")
	v.SetDefault("email.timeoutSeconds", 10)

	// Analytics defaults mirror the firm's standing assumptions
	v.SetDefault("analytics.defaultHourlyRate", 1500.0)
	v.SetDefault("analytics.costRatio", 0.7)
	v.SetDefault("analytics.capacityCaps", map[string]int{
		"Assessment": 2,
		"Pilot":      4,
	})

	// Jobs defaults
	v.SetDefault("jobs.engagementRecomputeEnabled", true)
	v.SetDefault("jobs.engagementRecomputeCron", "0 0 3 * * *") // 03:00 daily

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults - secure by default
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.burstSize", 10)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})
}
