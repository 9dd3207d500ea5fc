package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment at boot.
type Config struct {
	// Research inputs and outputs.
	SearchFile string
	ResultsDir string

	// Target sites.
	GoogleShoppingURL string
	MercadoLivreURL   string
	AmazonURL         string

	// Browser behavior.
	ChromiumBin string
	ScrollPause time.Duration
	ElementWait time.Duration
	NavTimeout  time.Duration

	// Scheduling.
	ResearchCron string
	RunOnStart   bool

	// Email delivery.
	Mail MailConfig

	// HTTP server.
	Host           string
	Port           string
	AllowedOrigins string
	RateLimitRPS   float64
	AdminAPIKey    string

	// Logging.
	LogDir    string
	LogFormat string
	LogLevel  string
}

// MailConfig holds the SMTP settings for the results email.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	To       string
}

// IsConfigured returns true when enough is set to attempt delivery.
func (m MailConfig) IsConfigured() bool {
	return m.Host != "" && m.From != "" && m.To != ""
}

// Load reads the full configuration from the environment, applying defaults
// for everything that is optional.
func Load() *Config {
	return &Config{
		SearchFile: getEnvOrDefault("SEARCH_FILE", "data_base/search.xlsx"),
		ResultsDir: getEnvOrDefault("RESULTS_DIR", "results"),

		GoogleShoppingURL: getEnvOrDefault("GOOGLE_SHOPPING_URL", "https://www.google.com"),
		MercadoLivreURL:   getEnvOrDefault("MERCADO_LIVRE_URL", "https://www.mercadolivre.com.br"),
		AmazonURL:         getEnvOrDefault("AMAZON_URL", "https://www.amazon.com.br"),

		ChromiumBin: getEnvOrDefault("CHROMIUM_BIN", ""),
		ScrollPause: time.Duration(getEnvInt("SCROLL_PAUSE_MS", 100)) * time.Millisecond,
		ElementWait: time.Duration(getEnvInt("ELEMENT_WAIT_SECONDS", 10)) * time.Second,
		NavTimeout:  time.Duration(getEnvInt("NAV_TIMEOUT_SECONDS", 30)) * time.Second,

		ResearchCron: getEnvOrDefault("RESEARCH_CRON", "0 0 */12 * * *"),
		RunOnStart:   getEnvBool("RUN_ON_START", false),

		Mail: MailConfig{
			Host:     getEnvOrDefault("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnvOrDefault("SMTP_USER", ""),
			Password: getEnvOrDefault("SMTP_PASSWORD", ""),
			From:     getEnvOrDefault("EMAIL_FROM", ""),
			FromName: getEnvOrDefault("EMAIL_FROM_NAME", "Price Research"),
			To:       getEnvOrDefault("EMAIL_TO", ""),
		},

		Host:           getEnvOrDefault("HOST", "0.0.0.0"),
		Port:           getEnvOrDefault("PORT", "8080"),
		AllowedOrigins: getEnvOrDefault("ALLOWED_ORIGINS", "*"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		AdminAPIKey:    getEnvOrDefault("ADMIN_API_KEY", ""),

		LogDir:    getEnvOrDefault("LOG_DIR", "logs"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
