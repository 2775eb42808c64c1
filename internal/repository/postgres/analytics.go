package postgres

import (
	"fmt"

	"chatbot-backend/internal/logger"

	"github.com/sirupsen/logrus"
)

// UpsertChatAnalytics records a completed turn in the per-conversation
// aggregate. messageDelta is added to the stored count; totalTokens replaces
// the stored total outright, matching how the caller computes it.
func (p *PostgresDB) UpsertChatAnalytics(userID, conversationID string, messageDelta, totalTokens int) error {
	query := `
	INSERT INTO chat_analytics (user_id, conversation_id, message_count, total_tokens)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, conversation_id) DO UPDATE
	SET message_count = chat_analytics.message_count + $3,
	    total_tokens = $4
	`

	if _, err := p.conn.Exec(query, userID, conversationID, messageDelta, totalTokens); err != nil {
		return fmt.Errorf("error upserting chat analytics: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":         userID,
		"conversation_id": conversationID,
		"message_delta":   messageDelta,
		"total_tokens":    totalTokens,
	}).Debug("Upserted chat analytics")

	return nil
}
