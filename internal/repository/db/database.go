package db

// Database defines the interface for all database operations
// This allows for easier testing through mocking and decouples the services
// from the specific database implementation
type Database interface {
	// Users
	CreateUser(id, email, name string) (*User, error)
	GetUser(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	CountUsers() (int, error)

	// User settings
	CreateUserSettings(settings UserSettings) error
	GetUserSettings(userID string) (*UserSettings, error)
	AddTokenUsage(userID string, tokens int) error

	// Conversations
	CreateConversation(userID, title string) (*Conversation, error)
	GetConversation(id string) (*Conversation, error)
	GetConversationWithMessages(id string) (*ConversationWithMessages, error)
	ListConversations(userID string) ([]ConversationWithMessages, error)
	DeleteConversation(id string) error
	TouchConversation(id string) error
	CountConversations() (int, error)
	CountConversationsByUser(userID string) (int, error)
	RecentConversations(userID string, limit int) ([]ConversationSummaryRow, error)

	// Messages
	AddMessage(conversationID, role, content string, meta MessageMeta) (*Message, error)
	CountMessages() (int, error)
	CountMessagesByUser(userID string) (int, error)

	// Analytics
	UpsertChatAnalytics(userID, conversationID string, messageDelta, totalTokens int) error

	// Local auth credentials
	CreateCredential(email, userID, passwordHash string) error
	GetCredentialByEmail(email string) (*Credential, error)
}
