package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"
)

// ConversationsResponse lists a user's conversations with embedded messages
type ConversationsResponse struct {
	Conversations []db.ConversationWithMessages `json:"conversations"`
}

// CreateConversationRequest is the POST /api/conversations body
type CreateConversationRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title,omitempty"`
}

// ConversationResponse wraps a single conversation
type ConversationResponse struct {
	Conversation interface{} `json:"conversation"`
}

// DeleteResponse acknowledges a deletion
type DeleteResponse struct {
	Success bool `json:"success"`
}

// ListConversationsHandler returns all conversations for a user
func (h *Handlers) ListConversationsHandler(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.sendError(w, http.StatusBadRequest, "userId is required", nil)
		return
	}

	conversations, err := h.conversations.List(userID)
	if err != nil {
		logger.Log.WithError(err).Error("Error listing conversations")
		h.sendError(w, http.StatusInternalServerError, "Failed to fetch conversations", err)
		return
	}

	h.sendJSON(w, http.StatusOK, ConversationsResponse{Conversations: conversations})
}

// CreateConversationHandler starts a new conversation
func (h *Handlers) CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.UserID == "" {
		h.sendError(w, http.StatusBadRequest, "userId is required", nil)
		return
	}

	conversation, err := h.conversations.Create(req.UserID, req.Title)
	if err != nil {
		logger.Log.WithError(err).Error("Error creating conversation")
		h.sendError(w, http.StatusInternalServerError, "Failed to create conversation", err)
		return
	}

	h.sendJSON(w, http.StatusOK, ConversationResponse{Conversation: conversation})
}

// GetConversationHandler fetches one conversation with its messages
func (h *Handlers) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	convID := r.PathValue("id")

	conversation, err := h.conversations.Get(convID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.sendError(w, http.StatusNotFound, "Conversation not found", err)
			return
		}
		logger.Log.WithError(err).Error("Error retrieving conversation")
		h.sendError(w, http.StatusInternalServerError, "Error retrieving conversation", err)
		return
	}

	h.sendJSON(w, http.StatusOK, ConversationResponse{Conversation: conversation})
}

// DeleteConversationHandler deletes a conversation; messages cascade
func (h *Handlers) DeleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	convID := r.PathValue("id")

	if err := h.conversations.Delete(convID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.sendError(w, http.StatusNotFound, "Conversation not found", err)
			return
		}
		logger.Log.WithError(err).Error("Error deleting conversation")
		h.sendError(w, http.StatusInternalServerError, "Failed to delete conversation", err)
		return
	}

	h.sendJSON(w, http.StatusOK, DeleteResponse{Success: true})
}
