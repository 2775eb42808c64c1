package db

import "time"

// User represents a user in the database. The row is created by the auth
// bridge on sign-up; conversations reference it but never own it.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSettings holds per-user chat preferences plus the lifetime token counter.
type UserSettings struct {
	UserID       string  `json:"user_id"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens"`
	SystemPrompt string  `json:"system_prompt"`
	TotalTokens  int     `json:"total_tokens"`
}

// Conversation represents a conversation in the database
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a message in a conversation. Rows are append-only.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"` // "user", "assistant" or "system"
	Content        string    `json:"content"`
	Model          string    `json:"model,omitempty"`
	Temperature    *float64  `json:"temperature,omitempty"`
	TotalTokens    *int      `json:"total_tokens,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageMeta carries assistant-side metadata for a stored message.
// User messages are stored with the zero value.
type MessageMeta struct {
	Model       string
	Temperature *float64
	TotalTokens *int
}

// ConversationWithMessages embeds a conversation's messages, ordered by
// created_at ascending.
type ConversationWithMessages struct {
	Conversation
	Messages []Message `json:"messages"`
}

// ConversationSummaryRow is a conversation with its message count, used by
// the stats endpoint's recent-conversations listing.
type ConversationSummaryRow struct {
	Conversation
	MessageCount int `json:"messageCount"`
}

// ChatAnalytics is the per (user, conversation) usage aggregate, upserted
// after each completed turn.
type ChatAnalytics struct {
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id"`
	MessageCount   int    `json:"message_count"`
	TotalTokens    int    `json:"total_tokens"`
}

// Credential is a local auth provider credential row.
type Credential struct {
	Email        string
	UserID       string
	PasswordHash string
}
