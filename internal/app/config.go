package app

import (
	"chatbot-backend/internal/auth"
	"chatbot-backend/internal/config"
	"chatbot-backend/internal/llm"
	"chatbot-backend/internal/repository/db"
)

// Config holds all application dependencies, constructed once at process
// start and passed by reference to the request handlers.
type Config struct {
	// Database interface for data persistence; nil when the store is not
	// configured, in which case routes answer with an explicit error.
	DB db.Database
	// LLM client picked by the provider factory
	LLM llm.Client
	// Auth bridge
	Auth *auth.Service
	// Centralized application configuration
	AppConfig *config.AppConfig
}

// NewConfig creates a new application configuration
func NewConfig(database db.Database, llmClient llm.Client, authService *auth.Service, appConfig *config.AppConfig) *Config {
	return &Config{
		DB:        database,
		LLM:       llmClient,
		Auth:      authService,
		AppConfig: appConfig,
	}
}
