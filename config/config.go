package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Email provider names accepted in EMAIL_PROVIDER.
const (
	ProviderSES  = "ses"
	ProviderSMTP = "smtp"
	ProviderLog  = "log"
)

// Config is loaded once per process and never mutated afterwards.
type Config struct {
	Port string
	Env  string
	// CORS
	AllowedOrigins []string
	CORSAllowAll   bool // debug override, echoes "*"
	CORSMaxAge     int  // seconds a preflight result may be cached
	// Addressing
	FromEmail string // verified sending identity
	ToEmail   string
	// Email provider
	EmailProvider string
	AWSRegion     string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	// Composition
	SubjectPrefix string
	PhoneRegion   string
	// Security log
	SecurityServiceName string
}

func LoadConfig() (*Config, error) {
	// .env is optional; Lambda and containers provide real env vars
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "production"),
		AllowedOrigins: ParseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		CORSAllowAll:   getEnvBool("CORS_ALLOW_ALL", false),
		CORSMaxAge:     getEnvInt("CORS_MAX_AGE_SECONDS", 86400),
		FromEmail:      strings.TrimSpace(getEnv("FROM_EMAIL", "")),
		ToEmail:        strings.TrimSpace(getEnv("TO_EMAIL", "")),
		EmailProvider:  strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderSES)),
		// Lambda injects AWS_REGION; the fallback is for local runs
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnvInt("SMTP_PORT", 587),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SubjectPrefix:       getEnv("SUBJECT_PREFIX", "Website"),
		PhoneRegion:         strings.ToUpper(getEnv("PHONE_REGION", "US")),
		SecurityServiceName: getEnv("SECURITY_SERVICE_NAME", "contact-relay"),
	}

	if len(cfg.AllowedOrigins) == 0 && !cfg.CORSAllowAll {
		log.Println("WARNING: ALLOWED_ORIGINS is empty. Every cross-origin request will be rejected.")
	}
	if cfg.CORSAllowAll {
		log.Println("WARNING: CORS_ALLOW_ALL is set. Any origin is accepted; do not use in production.")
	}

	return cfg, nil
}

// HasAddressing reports whether both sender and recipient are configured.
func (c *Config) HasAddressing() bool {
	return c.FromEmail != "" && c.ToEmail != ""
}

// ParseOrigins splits a comma-separated origin list, trimming entries and
// dropping empty ones.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if o := strings.TrimSpace(part); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
