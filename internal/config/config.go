package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Brand routing behavior
	AutoRedirect       bool
	GeolocationTimeout time.Duration
	LocationCacheTTL   time.Duration

	// Funnel behavior
	DraftTTL        time.Duration
	WeatherCacheTTL time.Duration
	LeadIntakeURL   string
	SubmitTimeout   time.Duration

	// Requests/sec and burst applied to the lead intake endpoint.
	IntakeRateLimit float64
	IntakeBurst     int

	// Analytics event sink (optional SQS queue)
	AnalyticsQueueURL   string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Lead notification email
	SendGridAPIKey     string
	SendGridFromEmail  string
	SendGridFromName   string
	LeadNotifyEmail    string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AutoRedirect:       getEnvAsBool("AUTO_REDIRECT", false),
		GeolocationTimeout: getEnvAsDuration("GEOLOCATION_TIMEOUT", 10*time.Second),
		LocationCacheTTL:   getEnvAsDuration("LOCATION_CACHE_TTL", 24*time.Hour),

		DraftTTL:        getEnvAsDuration("DRAFT_TTL", 0),
		WeatherCacheTTL: getEnvAsDuration("WEATHER_CACHE_TTL", 30*time.Minute),
		LeadIntakeURL:   getEnv("LEAD_INTAKE_URL", ""),
		SubmitTimeout:   getEnvAsDuration("SUBMIT_TIMEOUT", 15*time.Second),

		IntakeRateLimit: getEnvAsFloat("INTAKE_RATE_LIMIT", 5),
		IntakeBurst:     getEnvAsInt("INTAKE_BURST", 10),

		AnalyticsQueueURL:   getEnv("ANALYTICS_QUEUE_URL", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "SafeHaven Security"),
		LeadNotifyEmail:   getEnv("LEAD_NOTIFY_EMAIL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
