package conversation

import (
	"fmt"

	"chatbot-backend/internal/repository/db"
)

// ConversationService handles conversation CRUD on top of the store accessor
type ConversationService struct {
	db db.Database
}

// NewConversationService creates a new ConversationService
func NewConversationService(database db.Database) *ConversationService {
	return &ConversationService{db: database}
}

// List returns a user's conversations, most recently updated first, with
// their messages embedded
func (s *ConversationService) List(userID string) ([]db.ConversationWithMessages, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required")
	}
	return s.db.ListConversations(userID)
}

// Create starts a new conversation. An empty title defaults to
// "New Conversation" in the store.
func (s *ConversationService) Create(userID, title string) (*db.Conversation, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required")
	}
	return s.db.CreateConversation(userID, title)
}

// Get fetches one conversation with its messages
func (s *ConversationService) Get(id string) (*db.ConversationWithMessages, error) {
	return s.db.GetConversationWithMessages(id)
}

// Delete removes a conversation; its messages cascade in the store
func (s *ConversationService) Delete(id string) error {
	return s.db.DeleteConversation(id)
}
