package handlers

import (
	"encoding/json"
	"net/http"

	"chatbot-backend/internal/llm"
	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/service/chat"
	"chatbot-backend/pkg/validation"
)

// ChatRequest is the POST /api/chat body
type ChatRequest struct {
	Messages       []llm.Message `json:"messages"`
	ConversationID string        `json:"conversationId,omitempty"`
	UserID         string        `json:"userId,omitempty"`
}

// ChatResponse is the POST /api/chat reply
type ChatResponse struct {
	Reply string     `json:"reply"`
	Usage *llm.Usage `json:"usage,omitempty"`
	Model string     `json:"model,omitempty"`
}

// ChatHandler orchestrates one chat turn. A malformed body is the only
// user-visible failure; provider and persistence problems degrade to a
// fallback reply with status 200.
func (h *Handlers) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validation.ValidateMessages(req.Messages); err != nil {
		h.sendError(w, http.StatusBadRequest, "Messages array is required", err)
		return
	}

	logger.Log.WithField("message_count", len(req.Messages)).Debug("Chat request")

	response, err := h.chat.SendMessage(chat.SendMessageRequest{
		Messages:       req.Messages,
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
	})
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid chat request", err)
		return
	}

	h.sendJSON(w, http.StatusOK, ChatResponse{
		Reply: response.Reply,
		Usage: response.Usage,
		Model: response.Model,
	})
}
