package handlers

import (
	"encoding/json"
	"net/http"

	"chatbot-backend/internal/app"
	"chatbot-backend/internal/service/chat"
	"chatbot-backend/internal/service/conversation"
	"chatbot-backend/internal/service/stats"
)

// ErrorResponse is the standardized error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handlers bundles the route handlers with their injected services
type Handlers struct {
	config        *app.Config
	chat          *chat.ChatService
	conversations *conversation.ConversationService
	stats         *stats.StatsService
}

// NewHandlers creates the handler set from the application config
func NewHandlers(config *app.Config) *Handlers {
	var chatService *chat.ChatService
	var conversationService *conversation.ConversationService
	var statsService *stats.StatsService

	chatService = chat.NewChatService(config.DB, config.LLM, config.AppConfig.LLM)
	if config.DB != nil {
		conversationService = conversation.NewConversationService(config.DB)
		statsService = stats.NewStatsService(config.DB, config.LLM.DefaultModel())
	}

	return &Handlers{
		config:        config,
		chat:          chatService,
		conversations: conversationService,
		stats:         statsService,
	}
}

// sendError sends a standardized JSON error response
func (h *Handlers) sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{
		Code:    status,
		Message: message,
	}
	if err != nil {
		errResp.Error = err.Error()
	} else {
		errResp.Error = message
	}
	json.NewEncoder(w).Encode(errResp)
}

// sendJSON sends a JSON response with the given status
func (h *Handlers) sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// requireDB answers with an explicit configuration error when no database
// is wired; returns true when the store is available.
func (h *Handlers) requireDB(w http.ResponseWriter) bool {
	if h.config.DB == nil {
		h.sendError(w, http.StatusInternalServerError,
			"Database not configured. Set DATABASE_URL or the DB_* variables.", nil)
		return false
	}
	return true
}
