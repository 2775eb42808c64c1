package main

import (
	"net/http"

	"chatbot-backend/internal/app"
	"chatbot-backend/internal/auth"
	"chatbot-backend/internal/config"
	"chatbot-backend/internal/handlers"
	"chatbot-backend/internal/llm"
	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"
	"chatbot-backend/internal/repository/postgres"

	"github.com/joho/godotenv"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func main() {
	// Load .env file if present (production sets real environment variables)
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, using environment variables")
	}

	appConfig := config.LoadConfig()

	// The database is optional: without it chat still answers, it just
	// skips persistence and answers stats with zeroes.
	var database db.Database
	if appConfig.Database.Configured() {
		pg, err := postgres.NewPostgresDB(appConfig.Database)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to connect to database")
		}
		defer pg.Close()
		database = pg
		logger.Log.Info("Database connected")
	} else {
		logger.Log.Warn("Database not configured, running without persistence")
	}

	llmClient, err := llm.NewClient(appConfig.LLM)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create LLM client")
	}

	authService := auth.NewService(database, appConfig.Auth)

	cfg := app.NewConfig(database, llmClient, authService, appConfig)
	h := handlers.NewHandlers(cfg)

	// Go 1.22+ method and path-parameter routing
	mux := http.NewServeMux()

	// CORS preflight handler for OPTIONS requests
	corsHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.WriteHeader(http.StatusOK)
	}

	mux.HandleFunc("POST /api/chat", enableCORS(h.ChatHandler))
	mux.HandleFunc("OPTIONS /api/chat", corsHandler)

	mux.HandleFunc("POST /api/auth", enableCORS(h.AuthHandler))
	mux.HandleFunc("OPTIONS /api/auth", corsHandler)

	mux.HandleFunc("GET /api/conversations", enableCORS(h.ListConversationsHandler))
	mux.HandleFunc("POST /api/conversations", enableCORS(h.CreateConversationHandler))
	mux.HandleFunc("OPTIONS /api/conversations", corsHandler)

	mux.HandleFunc("GET /api/conversations/{id}", enableCORS(h.GetConversationHandler))
	mux.HandleFunc("DELETE /api/conversations/{id}", enableCORS(h.DeleteConversationHandler))
	mux.HandleFunc("OPTIONS /api/conversations/{id}", corsHandler)

	mux.HandleFunc("GET /api/stats", enableCORS(h.StatsHandler))
	mux.HandleFunc("OPTIONS /api/stats", corsHandler)

	mux.HandleFunc("GET /api/test/llm", enableCORS(h.TestLLMHandler))
	mux.HandleFunc("OPTIONS /api/test/llm", corsHandler)

	mux.HandleFunc("GET /api/env-check", enableCORS(h.EnvCheckHandler))
	mux.HandleFunc("OPTIONS /api/env-check", corsHandler)

	mux.HandleFunc("GET /api/health", enableCORS(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))
	mux.HandleFunc("OPTIONS /api/health", corsHandler)

	port := appConfig.Server.Port
	logger.Log.WithField("port", port).Info("Server starting")
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Log.WithError(err).Fatal("Server failed to start")
	}
}
