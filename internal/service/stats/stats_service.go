package stats

import (
	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"
)

// PlatformStats are the platform-wide aggregate counters
type PlatformStats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalConversations int `json:"totalConversations"`
	TotalMessages      int `json:"totalMessages"`
}

// UserStats are the per-user counters plus a short recent-activity listing
type UserStats struct {
	ConversationCount   int                         `json:"conversationCount"`
	MessageCount        int                         `json:"messageCount"`
	TotalTokensUsed     int                         `json:"totalTokensUsed"`
	Model               string                      `json:"model"`
	RecentConversations []db.ConversationSummaryRow `json:"recentConversations"`
}

// Stats is the combined response payload
type Stats struct {
	Platform PlatformStats `json:"platform"`
	User     *UserStats    `json:"user"`
}

// StatsService aggregates usage counters from the store
type StatsService struct {
	db           db.Database
	defaultModel string
}

// NewStatsService creates a new StatsService
func NewStatsService(database db.Database, defaultModel string) *StatsService {
	return &StatsService{db: database, defaultModel: defaultModel}
}

// Get returns platform-wide counters, plus per-user counters when userID is
// set. Store errors degrade to zeroed counters rather than failing the call.
func (s *StatsService) Get(userID string) *Stats {
	stats := &Stats{}

	if users, err := s.db.CountUsers(); err == nil {
		stats.Platform.TotalUsers = users
	} else {
		logger.Log.WithError(err).Warn("Error counting users")
	}
	if conversations, err := s.db.CountConversations(); err == nil {
		stats.Platform.TotalConversations = conversations
	} else {
		logger.Log.WithError(err).Warn("Error counting conversations")
	}
	if messages, err := s.db.CountMessages(); err == nil {
		stats.Platform.TotalMessages = messages
	} else {
		logger.Log.WithError(err).Warn("Error counting messages")
	}

	if userID == "" {
		return stats
	}

	user := &UserStats{Model: s.defaultModel}

	if count, err := s.db.CountConversationsByUser(userID); err == nil {
		user.ConversationCount = count
	} else {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Error counting user conversations")
	}
	if count, err := s.db.CountMessagesByUser(userID); err == nil {
		user.MessageCount = count
	} else {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Error counting user messages")
	}
	if settings, err := s.db.GetUserSettings(userID); err == nil {
		user.TotalTokensUsed = settings.TotalTokens
		if settings.Model != "" {
			user.Model = settings.Model
		}
	}
	if recent, err := s.db.RecentConversations(userID, 5); err == nil {
		user.RecentConversations = recent
	} else {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Error listing recent conversations")
	}

	stats.User = user
	return stats
}
