package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
	Mail      MailConfig
	Calendar  CalendarConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for different operations
	CatalogCacheTTL    time.Duration
	ProfileCacheTTL    time.Duration
	SubmissionGuardTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	Issuer           string
	JWTExpiresIn     time.Duration
	RefreshExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled                     bool          `json:"enabled"`
	WindowDuration              time.Duration `json:"window_duration"`
	DefaultRequests             int           `json:"default_requests"`
	PublicRequests              int           `json:"public_requests"`
	AuthRequests                int           `json:"auth_requests"`
	ReservationRequests         int           `json:"reservation_requests"`
	ReservationCriticalRequests int           `json:"reservation_critical_requests"`
	GuideRequests               int           `json:"guide_requests"`
	HealthRequests              int           `json:"health_requests"`
	WhitelistedIPs              []string      `json:"whitelisted_ips"`
}

// KafkaConfig holds the reservation event producer configuration
type KafkaConfig struct {
	Enabled          bool
	Brokers          []string
	ReservationTopic string
	RetryMax         int
	Timeout          time.Duration

	// guide notifier worker
	NotifierGroupID string
	MaxRetries      int
	RetryBackoff    time.Duration
}

// MailConfig holds the SMTP settings of the guide notifier. An empty Host
// disables delivery.
type MailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// CalendarConfig anchors the month grids offered by the booking calendar.
// The Hijri month cannot be derived without a lunar table, so its first
// civil day and length are configured.
type CalendarConfig struct {
	GregorianYear  int
	GregorianMonth time.Month
	HijriLabel     string
	HijriFirstDay  time.Time
	HijriLength    int
	RequireTime    bool
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "guideomra_db"),
			User:     getEnv("DB_USER", "guideomra_user"),
			Password: getEnv("DB_PASSWORD", "guideomra_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			CatalogCacheTTL:    getDurationEnv("REDIS_CATALOG_CACHE_TTL", 15*time.Minute),
			ProfileCacheTTL:    getDurationEnv("REDIS_PROFILE_CACHE_TTL", time.Hour),
			SubmissionGuardTTL: getDurationEnv("REDIS_SUBMISSION_GUARD_TTL", 24*time.Hour),
		},

		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			Issuer:           getEnv("JWT_ISSUER", "guideomra"),
			JWTExpiresIn:     getDurationEnvSeconds("JWT_EXPIRES_IN", 15*time.Minute),
			RefreshExpiresIn: getDurationEnvSeconds("JWT_REFRESH_EXPIRES_IN", 24*time.Hour),
		},

		RateLimit: RateLimitConfig{
			Enabled:                     getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:              getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:             getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:              getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			AuthRequests:                getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			ReservationRequests:         getIntEnv("RATE_LIMIT_RESERVATION_REQUESTS", 30),
			ReservationCriticalRequests: getIntEnv("RATE_LIMIT_RESERVATION_CRITICAL_REQUESTS", 5),
			GuideRequests:               getIntEnv("RATE_LIMIT_GUIDE_REQUESTS", 30),
			HealthRequests:              getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:              getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Kafka: KafkaConfig{
			Enabled:          getBoolEnv("KAFKA_ENABLED", false),
			Brokers:          getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			ReservationTopic: getEnv("KAFKA_RESERVATION_TOPIC", "reservations"),
			RetryMax:         getIntEnv("KAFKA_RETRY_MAX", 3),
			Timeout:          getDurationEnv("KAFKA_TIMEOUT", 10*time.Second),
			NotifierGroupID:  getEnv("KAFKA_NOTIFIER_GROUP_ID", "guideomra-guide-notifier"),
			MaxRetries:       getIntEnv("KAFKA_NOTIFIER_MAX_RETRIES", 3),
			RetryBackoff:     getDurationEnv("KAFKA_NOTIFIER_RETRY_BACKOFF", time.Second),
		},

		Mail: MailConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getIntEnv("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("FROM_EMAIL", "no-reply@guideomra.app"),
			FromName:  getEnv("FROM_NAME", "Guide Omra"),
			UseTLS:    getBoolEnv("SMTP_USE_TLS", true),
			Timeout:   getDurationEnv("SMTP_TIMEOUT", 30*time.Second),
		},

		Calendar: CalendarConfig{
			GregorianYear:  getIntEnv("CALENDAR_GREGORIAN_YEAR", 2026),
			GregorianMonth: time.Month(getIntEnv("CALENDAR_GREGORIAN_MONTH", int(time.January))),
			HijriLabel:     getEnv("CALENDAR_HIJRI_LABEL", "Rajab 1447"),
			HijriFirstDay:  getDateEnv("CALENDAR_HIJRI_FIRST_DAY", time.Date(2025, time.December, 22, 0, 0, 0, 0, time.UTC)),
			HijriLength:    getIntEnv("CALENDAR_HIJRI_LENGTH", 30),
			RequireTime:    getBoolEnv("BOOKING_REQUIRE_TIME_SLOT", true),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds reads whole seconds
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getDateEnv reads a YYYY-MM-DD date in UTC
func getDateEnv(key string, fallback time.Time) time.Time {
	if value := os.Getenv(key); value != "" {
		if date, err := time.Parse(time.DateOnly, value); err == nil {
			return date
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
