package postgres

import (
	"database/sql"
	"fmt"

	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateConversation creates a new conversation for a user
func (p *PostgresDB) CreateConversation(userID, title string) (*db.Conversation, error) {
	convID := uuid.New().String()

	// Default title when the caller doesn't provide one
	if title == "" {
		title = "New Conversation"
	}

	var conv db.Conversation
	query := `
	INSERT INTO conversations (id, user_id, title)
	VALUES ($1, $2, $3)
	RETURNING id, user_id, title, created_at, updated_at
	`

	err := p.conn.QueryRow(query, convID, userID, title).Scan(
		&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"conversation_id": conv.ID, "user_id": userID}).Info("Created new conversation")

	return &conv, nil
}

// GetConversation retrieves a specific conversation
func (p *PostgresDB) GetConversation(id string) (*db.Conversation, error) {
	var conv db.Conversation
	query := `SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE id = $1`

	err := p.conn.QueryRow(query, id).Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &conv, nil
}

// GetConversationWithMessages retrieves a conversation with its messages embedded
func (p *PostgresDB) GetConversationWithMessages(id string) (*db.ConversationWithMessages, error) {
	conv, err := p.GetConversation(id)
	if err != nil {
		return nil, err
	}

	messages, err := p.getMessages(id)
	if err != nil {
		return nil, err
	}

	return &db.ConversationWithMessages{Conversation: *conv, Messages: messages}, nil
}

// ListConversations retrieves all conversations for a user, most recently
// updated first, each with its messages embedded
func (p *PostgresDB) ListConversations(userID string) ([]db.ConversationWithMessages, error) {
	query := `
	SELECT id, user_id, title, created_at, updated_at
	FROM conversations
	WHERE user_id = $1
	ORDER BY updated_at DESC
	`

	rows, err := p.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	conversations := []db.ConversationWithMessages{}
	for rows.Next() {
		var conv db.ConversationWithMessages
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}

	for i := range conversations {
		messages, err := p.getMessages(conversations[i].ID)
		if err != nil {
			return nil, err
		}
		conversations[i].Messages = messages
	}

	return conversations, nil
}

// DeleteConversation deletes a conversation; its messages cascade
func (p *PostgresDB) DeleteConversation(id string) error {
	result, err := p.conn.Exec(`DELETE FROM conversations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting conversation: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("conversation not found")
	}

	logger.Log.WithField("conversation_id", id).Info("Deleted conversation")
	return nil
}

// TouchConversation bumps a conversation's updated_at timestamp
func (p *PostgresDB) TouchConversation(id string) error {
	query := `UPDATE conversations SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`

	if _, err := p.conn.Exec(query, id); err != nil {
		return fmt.Errorf("error updating conversation timestamp: %w", err)
	}
	return nil
}

// CountConversations returns the platform-wide conversation count
func (p *PostgresDB) CountConversations() (int, error) {
	var count int
	if err := p.conn.QueryRow(`SELECT COUNT(*) FROM conversations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting conversations: %w", err)
	}
	return count, nil
}

// CountConversationsByUser returns a user's conversation count
func (p *PostgresDB) CountConversationsByUser(userID string) (int, error) {
	var count int
	if err := p.conn.QueryRow(`SELECT COUNT(*) FROM conversations WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting conversations: %w", err)
	}
	return count, nil
}

// RecentConversations returns a user's most recently updated conversations
// with their message counts
func (p *PostgresDB) RecentConversations(userID string, limit int) ([]db.ConversationSummaryRow, error) {
	query := `
	SELECT c.id, c.user_id, c.title, c.created_at, c.updated_at, COUNT(m.id)
	FROM conversations c
	LEFT JOIN messages m ON m.conversation_id = c.id
	WHERE c.user_id = $1
	GROUP BY c.id
	ORDER BY c.updated_at DESC
	LIMIT $2
	`

	rows, err := p.conn.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent conversations: %w", err)
	}
	defer rows.Close()

	recent := []db.ConversationSummaryRow{}
	for rows.Next() {
		var row db.ConversationSummaryRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Title, &row.CreatedAt, &row.UpdatedAt, &row.MessageCount); err != nil {
			return nil, fmt.Errorf("error scanning recent conversation: %w", err)
		}
		recent = append(recent, row)
	}
	return recent, rows.Err()
}

// AddMessage appends a message to a conversation
func (p *PostgresDB) AddMessage(conversationID, role, content string, meta db.MessageMeta) (*db.Message, error) {
	msgID := uuid.New().String()

	var msg db.Message
	query := `
	INSERT INTO messages (id, conversation_id, role, content, model, temperature, total_tokens)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, conversation_id, role, content, created_at
	`

	err := p.conn.QueryRow(query, msgID, conversationID, role, content,
		meta.Model, meta.Temperature, meta.TotalTokens).Scan(
		&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error adding message: %w", err)
	}

	msg.Model = meta.Model
	msg.Temperature = meta.Temperature
	msg.TotalTokens = meta.TotalTokens

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"role":            role,
		"model":           meta.Model,
	}).Debug("Added message")

	return &msg, nil
}

// CountMessages returns the platform-wide message count
func (p *PostgresDB) CountMessages() (int, error) {
	var count int
	if err := p.conn.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting messages: %w", err)
	}
	return count, nil
}

// CountMessagesByUser counts messages across all of a user's conversations
func (p *PostgresDB) CountMessagesByUser(userID string) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM messages m
	JOIN conversations c ON c.id = m.conversation_id
	WHERE c.user_id = $1
	`

	var count int
	if err := p.conn.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting messages: %w", err)
	}
	return count, nil
}

// getMessages retrieves a conversation's messages in insertion order
func (p *PostgresDB) getMessages(conversationID string) ([]db.Message, error) {
	query := `
	SELECT id, conversation_id, role, content, COALESCE(model, ''), temperature, total_tokens, created_at
	FROM messages
	WHERE conversation_id = $1
	ORDER BY created_at ASC
	`

	rows, err := p.conn.Query(query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	messages := []db.Message{}
	for rows.Next() {
		var msg db.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content,
			&msg.Model, &msg.Temperature, &msg.TotalTokens, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
