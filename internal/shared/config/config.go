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

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Booking rules
	Booking BookingConfig

	// Reminder sweep
	Reminder ReminderConfig

	// Logging
	LogLevel string

	// External services
	Email EmailConfig
	SMS   SMSConfig
	Kafka KafkaConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig
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

	// TTL for booking idempotency keys
	IdempotencyTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	JWTExpiresIn     time.Duration
	RefreshExpiresIn time.Duration
}

// BookingConfig holds the reservation rules
type BookingConfig struct {
	// Slots users may book, times of day in "HH:mm" form
	TimeSlots []string
	// Duration a slot occupies on the calendar
	SlotDuration time.Duration
	// Minimum lead time between booking and slot start
	MinAdvance time.Duration
	// Check-in accepted from slot start-CheckInBefore to slot start+CheckInAfter
	CheckInBefore time.Duration
	CheckInAfter  time.Duration
	// Bookings older than this are purged
	RetentionPeriod time.Duration
}

// ReminderConfig holds reminder sweep configuration
type ReminderConfig struct {
	SweepInterval  time.Duration
	PurgeInterval  time.Duration
	SendTimeout    time.Duration
	Reminder24hMin int
	Reminder1hMin  int
}

// EmailConfig holds email configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMSConfig holds Twilio SMS configuration
type SMSConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	HTTPTimeout time.Duration
}

// KafkaConfig holds Kafka configuration for the notification bus
type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	NotificationTopic string
	ConsumerGroup     string
}

// RateLimitConfig holds per-route-class request budgets
type RateLimitConfig struct {
	Enabled         bool
	WindowDuration  time.Duration
	DefaultRequests int
	AuthRequests    int
	BookingRequests int
	AdminRequests   int
	HealthRequests  int
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

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "seatly_db"),
			User:     getEnv("DB_USER", "seatly_user"),
			Password: getEnv("DB_PASSWORD", "seatly_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getIntEnv("REDIS_DB", 0),
			IdempotencyTTL: getDurationEnv("REDIS_IDEMPOTENCY_TTL", 24*time.Hour),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			JWTExpiresIn:     getDurationEnvSeconds("JWT_EXPIRES_IN", 15*time.Minute),
			RefreshExpiresIn: getDurationEnvSeconds("JWT_REFRESH_EXPIRES_IN", 24*time.Hour),
		},

		// Booking rules
		Booking: BookingConfig{
			TimeSlots:       getStringSliceEnv("BOOKING_TIME_SLOTS", []string{"09:00", "11:00", "13:00", "15:00", "17:00"}),
			SlotDuration:    getDurationEnv("BOOKING_SLOT_DURATION", time.Hour),
			MinAdvance:      getDurationEnv("BOOKING_MIN_ADVANCE", 60*time.Minute),
			CheckInBefore:   getDurationEnv("BOOKING_CHECKIN_BEFORE", 30*time.Minute),
			CheckInAfter:    getDurationEnv("BOOKING_CHECKIN_AFTER", 2*time.Hour),
			RetentionPeriod: getDurationEnv("BOOKING_RETENTION_PERIOD", 180*24*time.Hour),
		},

		// Reminder sweep
		Reminder: ReminderConfig{
			SweepInterval:  getDurationEnv("REMINDER_SWEEP_INTERVAL", 5*time.Minute),
			PurgeInterval:  getDurationEnv("BOOKING_PURGE_INTERVAL", 24*time.Hour),
			SendTimeout:    getDurationEnv("REMINDER_SEND_TIMEOUT", 30*time.Second),
			Reminder24hMin: getIntEnv("REMINDER_24H_MINUTES", 24*60),
			Reminder1hMin:  getIntEnv("REMINDER_1H_MINUTES", 60),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Email configuration
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getIntEnv("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@seatly.io"),
			FromName:     getEnv("FROM_NAME", "Seatly"),
		},

		// SMS configuration
		SMS: SMSConfig{
			AccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber:  getEnv("TWILIO_PHONE_NUMBER", ""),
			HTTPTimeout: getDurationEnv("TWILIO_HTTP_TIMEOUT", 10*time.Second),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", false),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT", 60),
			AuthRequests:    getIntEnv("RATE_LIMIT_AUTH", 10),
			BookingRequests: getIntEnv("RATE_LIMIT_BOOKING", 30),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN", 120),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH", 300),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:           getBoolEnv("KAFKA_ENABLED", false),
			Brokers:           getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "booking-notifications"),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "seatly-notification-workers"),
		},
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

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
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
