package chat

import (
	"fmt"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/llm"
	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"
	"chatbot-backend/pkg/validation"

	"github.com/sirupsen/logrus"
)

// SendMessageRequest contains all the parameters needed to process a chat turn
type SendMessageRequest struct {
	Messages       []llm.Message
	ConversationID string
	UserID         string
}

// SendMessageResponse contains the computed reply
type SendMessageResponse struct {
	Reply string
	Usage *llm.Usage
	Model string
}

// ChatService handles the business logic for chat orchestration: settings
// resolution, the provider call, fallback substitution, and best-effort
// persistence.
type ChatService struct {
	db        db.Database
	llmClient llm.Client
	config    config.LLMConfig
}

// NewChatService creates a new ChatService
func NewChatService(database db.Database, llmClient llm.Client, llmConfig config.LLMConfig) *ChatService {
	return &ChatService{
		db:        database,
		llmClient: llmClient,
		config:    llmConfig,
	}
}

// SendMessage processes a chat turn. The only caller-visible error is an
// empty message list; provider and persistence failures degrade to a
// non-empty fallback reply.
func (s *ChatService) SendMessage(req SendMessageRequest) (*SendMessageResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages array is required")
	}

	settings := s.resolveSettings(req.UserID)

	// Prepend the system message to the caller-supplied history
	history := append([]llm.Message{{Role: "system", Content: settings.SystemPrompt}}, req.Messages...)

	completion, err := s.llmClient.Complete(history, llm.Options{
		Model:       settings.Model,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})

	var reply string
	var usage *llm.Usage
	if err != nil || completion == nil || completion.Content == "" {
		if err != nil {
			logger.Log.WithError(err).Warn("LLM call failed, using fallback reply")
		} else {
			logger.Log.Warn("LLM returned empty content, using fallback reply")
		}
		reply = FallbackReply(lastUserMessage(req.Messages))
	} else {
		reply = completion.Content
		usage = completion.Usage
	}

	// Persist the turn only when it can be attributed to a conversation and
	// a user. The reply is already computed, so failures here are logged and
	// swallowed rather than surfaced.
	if req.ConversationID != "" && req.UserID != "" {
		s.persistTurn(req, settings, reply, usage)
	}

	return &SendMessageResponse{
		Reply: reply,
		Usage: usage,
		Model: settings.Model,
	}, nil
}

// resolveSettings loads the user's stored preferences, falling back to the
// configured defaults when there is no user or the lookup fails.
func (s *ChatService) resolveSettings(userID string) db.UserSettings {
	defaults := db.UserSettings{
		Model:        s.llmClient.DefaultModel(),
		Temperature:  s.config.DefaultTemperature,
		MaxTokens:    s.config.DefaultMaxTokens,
		SystemPrompt: s.config.DefaultSystemPrompt,
	}

	if userID == "" || s.db == nil {
		return defaults
	}

	settings, err := s.db.GetUserSettings(userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Debug("No user settings, using defaults")
		return defaults
	}

	if settings.Model == "" {
		settings.Model = defaults.Model
	}
	if settings.SystemPrompt == "" {
		settings.SystemPrompt = defaults.SystemPrompt
	}
	// Stored rows predate validation, so out-of-range values still occur
	if err := validation.ValidateTemperature(&settings.Temperature); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Ignoring stored temperature")
		settings.Temperature = defaults.Temperature
	}
	if err := validation.ValidateMaxTokens(settings.MaxTokens); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Ignoring stored max tokens")
		settings.MaxTokens = defaults.MaxTokens
	}
	return *settings
}

// persistTurn writes the user message, the assistant reply with its
// metadata, the conversation timestamp bump, and the analytics aggregate.
func (s *ChatService) persistTurn(req SendMessageRequest, settings db.UserSettings, reply string, usage *llm.Usage) {
	if s.db == nil {
		return
	}

	userContent := lastUserMessage(req.Messages)
	if _, err := s.db.AddMessage(req.ConversationID, "user", userContent, db.MessageMeta{}); err != nil {
		logger.Log.WithError(err).Error("Error saving user message")
	}

	meta := db.MessageMeta{
		Model:       settings.Model,
		Temperature: &settings.Temperature,
	}
	turnTokens := 0
	if usage != nil {
		turnTokens = usage.TotalTokens
		meta.TotalTokens = &usage.TotalTokens
	}
	if _, err := s.db.AddMessage(req.ConversationID, "assistant", reply, meta); err != nil {
		logger.Log.WithError(err).Error("Error saving assistant message")
	}

	if err := s.db.TouchConversation(req.ConversationID); err != nil {
		logger.Log.WithError(err).Warn("Error updating conversation timestamp")
	}

	// TODO: total_tokens here mixes the lifetime counter from user_settings
	// with this turn's usage instead of reading the analytics row back;
	// needs a dedicated read of chat_analytics before the upsert.
	analyticsTotal := settings.TotalTokens + turnTokens
	if err := s.db.UpsertChatAnalytics(req.UserID, req.ConversationID, 2, analyticsTotal); err != nil {
		logger.Log.WithError(err).Warn("Error upserting chat analytics")
	}

	if turnTokens > 0 {
		if err := s.db.AddTokenUsage(req.UserID, turnTokens); err != nil {
			logger.Log.WithError(err).Warn("Error updating token usage")
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": req.ConversationID,
		"user_id":         req.UserID,
		"turn_tokens":     turnTokens,
	}).Debug("Persisted chat turn")
}

// lastUserMessage returns the content of the most recent user-role message,
// or the last message of any role when none is marked "user".
func lastUserMessage(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Content
	}
	return ""
}
