package testutil

import (
	"errors"

	"chatbot-backend/internal/llm"
	"chatbot-backend/internal/repository/db"
)

// MockDatabase is a mock implementation of db.Database for testing
type MockDatabase struct {
	// User mocks
	CreateUserFunc     func(id, email, name string) (*db.User, error)
	GetUserFunc        func(id string) (*db.User, error)
	GetUserByEmailFunc func(email string) (*db.User, error)
	CountUsersFunc     func() (int, error)

	// User settings mocks
	CreateUserSettingsFunc func(settings db.UserSettings) error
	GetUserSettingsFunc    func(userID string) (*db.UserSettings, error)
	AddTokenUsageFunc      func(userID string, tokens int) error

	// Conversation mocks
	CreateConversationFunc          func(userID, title string) (*db.Conversation, error)
	GetConversationFunc             func(id string) (*db.Conversation, error)
	GetConversationWithMessagesFunc func(id string) (*db.ConversationWithMessages, error)
	ListConversationsFunc           func(userID string) ([]db.ConversationWithMessages, error)
	DeleteConversationFunc          func(id string) error
	TouchConversationFunc           func(id string) error
	CountConversationsFunc          func() (int, error)
	CountConversationsByUserFunc    func(userID string) (int, error)
	RecentConversationsFunc         func(userID string, limit int) ([]db.ConversationSummaryRow, error)

	// Message mocks
	AddMessageFunc          func(conversationID, role, content string, meta db.MessageMeta) (*db.Message, error)
	CountMessagesFunc       func() (int, error)
	CountMessagesByUserFunc func(userID string) (int, error)

	// Analytics mocks
	UpsertChatAnalyticsFunc func(userID, conversationID string, messageDelta, totalTokens int) error

	// Credential mocks
	CreateCredentialFunc     func(email, userID, passwordHash string) error
	GetCredentialByEmailFunc func(email string) (*db.Credential, error)
}

// User methods
func (m *MockDatabase) CreateUser(id, email, name string) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(id, email, name)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetUser(id string) (*db.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) CountUsers() (int, error) {
	if m.CountUsersFunc != nil {
		return m.CountUsersFunc()
	}
	return 0, errors.New("not implemented")
}

// User settings methods
func (m *MockDatabase) CreateUserSettings(settings db.UserSettings) error {
	if m.CreateUserSettingsFunc != nil {
		return m.CreateUserSettingsFunc(settings)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) GetUserSettings(userID string) (*db.UserSettings, error) {
	if m.GetUserSettingsFunc != nil {
		return m.GetUserSettingsFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) AddTokenUsage(userID string, tokens int) error {
	if m.AddTokenUsageFunc != nil {
		return m.AddTokenUsageFunc(userID, tokens)
	}
	return errors.New("not implemented")
}

// Conversation methods
func (m *MockDatabase) CreateConversation(userID, title string) (*db.Conversation, error) {
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(userID, title)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetConversation(id string) (*db.Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetConversationWithMessages(id string) (*db.ConversationWithMessages, error) {
	if m.GetConversationWithMessagesFunc != nil {
		return m.GetConversationWithMessagesFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) ListConversations(userID string) ([]db.ConversationWithMessages, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) DeleteConversation(id string) error {
	if m.DeleteConversationFunc != nil {
		return m.DeleteConversationFunc(id)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) TouchConversation(id string) error {
	if m.TouchConversationFunc != nil {
		return m.TouchConversationFunc(id)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) CountConversations() (int, error) {
	if m.CountConversationsFunc != nil {
		return m.CountConversationsFunc()
	}
	return 0, errors.New("not implemented")
}

func (m *MockDatabase) CountConversationsByUser(userID string) (int, error) {
	if m.CountConversationsByUserFunc != nil {
		return m.CountConversationsByUserFunc(userID)
	}
	return 0, errors.New("not implemented")
}

func (m *MockDatabase) RecentConversations(userID string, limit int) ([]db.ConversationSummaryRow, error) {
	if m.RecentConversationsFunc != nil {
		return m.RecentConversationsFunc(userID, limit)
	}
	return nil, errors.New("not implemented")
}

// Message methods
func (m *MockDatabase) AddMessage(conversationID, role, content string, meta db.MessageMeta) (*db.Message, error) {
	if m.AddMessageFunc != nil {
		return m.AddMessageFunc(conversationID, role, content, meta)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) CountMessages() (int, error) {
	if m.CountMessagesFunc != nil {
		return m.CountMessagesFunc()
	}
	return 0, errors.New("not implemented")
}

func (m *MockDatabase) CountMessagesByUser(userID string) (int, error) {
	if m.CountMessagesByUserFunc != nil {
		return m.CountMessagesByUserFunc(userID)
	}
	return 0, errors.New("not implemented")
}

// Analytics methods
func (m *MockDatabase) UpsertChatAnalytics(userID, conversationID string, messageDelta, totalTokens int) error {
	if m.UpsertChatAnalyticsFunc != nil {
		return m.UpsertChatAnalyticsFunc(userID, conversationID, messageDelta, totalTokens)
	}
	return errors.New("not implemented")
}

// Credential methods
func (m *MockDatabase) CreateCredential(email, userID, passwordHash string) error {
	if m.CreateCredentialFunc != nil {
		return m.CreateCredentialFunc(email, userID, passwordHash)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) GetCredentialByEmail(email string) (*db.Credential, error) {
	if m.GetCredentialByEmailFunc != nil {
		return m.GetCredentialByEmailFunc(email)
	}
	return nil, errors.New("not implemented")
}

// MockLLMClient is a mock implementation of llm.Client for testing
type MockLLMClient struct {
	CompleteFunc     func(messages []llm.Message, opts llm.Options) (*llm.Completion, error)
	DefaultModelFunc func() string
}

func (m *MockLLMClient) Complete(messages []llm.Message, opts llm.Options) (*llm.Completion, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(messages, opts)
	}
	return nil, errors.New("not implemented")
}

func (m *MockLLMClient) DefaultModel() string {
	if m.DefaultModelFunc != nil {
		return m.DefaultModelFunc()
	}
	return "test-model"
}
