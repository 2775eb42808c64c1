package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"chatbot-backend/internal/logger"

	"github.com/sirupsen/logrus"
)

// AppConfig holds all application configuration
type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Auth     AuthConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// URL takes precedence over the discrete fields when set
	// (hosted Postgres services hand out a single connection string).
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider            string // "groq" or "huggingface"
	GroqAPIKey          string
	GroqModel           string
	GroqBaseURL         string
	HFToken             string
	HFModel             string
	HFBaseURL           string
	DefaultSystemPrompt string
	DefaultTemperature  float64
	DefaultMaxTokens    int
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// Provider is "hosted" (GoTrue-style auth service) or "local"
	Provider        string
	URL             string // hosted auth service base URL
	AnonKey         string // public key tier
	ServiceRoleKey  string // privileged key tier
	JWTSecret       []byte
	TokenExpiration time.Duration
}

// Configured reports whether the auth subsystem has enough configuration
// to serve requests at all.
func (a *AuthConfig) Configured() bool {
	if a.Provider == "hosted" {
		return a.URL != "" && a.AnonKey != ""
	}
	return len(a.JWTSecret) > 0
}

// Configured reports whether a database connection can be attempted.
func (d *DatabaseConfig) Configured() bool {
	return d.URL != "" || d.Host != ""
}

// LoadConfig loads application configuration from environment. Missing
// settings leave the owning subsystem unconfigured; they never abort startup.
func LoadConfig() *AppConfig {
	config := &AppConfig{}

	config.Server = ServerConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8080"),
	}

	config.Database = DatabaseConfig{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     os.Getenv("DB_HOST"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		Name:     getEnvOrDefault("DB_NAME", "chatbot"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}

	config.LLM = LLMConfig{
		Provider:            getEnvOrDefault("LLM_PROVIDER", "groq"),
		GroqAPIKey:          os.Getenv("GROQ_API_KEY"),
		GroqModel:           getEnvOrDefault("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqBaseURL:         getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		HFToken:             os.Getenv("HF_TOKEN"),
		HFModel:             getEnvOrDefault("HF_MODEL", "gpt2"),
		HFBaseURL:           getEnvOrDefault("HF_BASE_URL", "https://api-inference.huggingface.co"),
		DefaultSystemPrompt: getEnvOrDefault("SYSTEM_PROMPT", "You are a helpful, friendly AI assistant."),
		DefaultTemperature:  getEnvAsFloat("DEFAULT_TEMPERATURE", 0.7),
		DefaultMaxTokens:    getEnvAsInt("DEFAULT_MAX_TOKENS", 1000),
	}

	if config.LLM.GroqAPIKey == "" && config.LLM.HFToken == "" {
		logger.Log.Warn("No LLM provider key set (GROQ_API_KEY / HF_TOKEN); chat will answer in fallback mode")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret != "" && len(jwtSecret) < 32 {
		logger.Log.WithField("length", len(jwtSecret)).Warn("JWT_SECRET shorter than 32 characters, ignoring")
		jwtSecret = ""
	}

	config.Auth = AuthConfig{
		Provider:        getEnvOrDefault("AUTH_PROVIDER", "local"),
		URL:             getEnvOrDefault("AUTH_URL", os.Getenv("SUPABASE_URL")),
		AnonKey:         getEnvOrDefault("AUTH_ANON_KEY", os.Getenv("SUPABASE_ANON_KEY")),
		ServiceRoleKey:  getEnvOrDefault("AUTH_SERVICE_ROLE_KEY", os.Getenv("SUPABASE_SERVICE_ROLE_KEY")),
		JWTSecret:       []byte(jwtSecret),
		TokenExpiration: getEnvAsDuration("JWT_TOKEN_EXPIRATION", 24*time.Hour),
	}

	if !config.Auth.Configured() {
		logger.Log.Warn("Auth not configured; /api/auth will report it explicitly")
	}

	return config
}

// GetDSN returns the database connection string
func (d *DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid integer value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid float value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid duration value, using default")
		return defaultValue
	}
	return value
}
