package auth

import (
	"fmt"
	"strings"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"
)

// Default settings created alongside a new account
const (
	defaultModel        = "llama-3.1-8b-instant"
	defaultTemperature  = 0.7
	defaultMaxTokens    = 1000
	defaultSystemPrompt = "You are a helpful, friendly AI assistant."
)

// Service bridges sign-up, sign-in and sign-out to the configured account
// provider and keeps the local user records in sync.
type Service struct {
	provider Provider
	db       db.Database
}

// NewService creates the auth bridge. The hosted provider is used when the
// auth service URL and key are configured; otherwise accounts live in the
// local credential store.
func NewService(database db.Database, authConfig config.AuthConfig) *Service {
	var provider Provider
	if authConfig.Provider == "hosted" {
		logger.Log.Info("Using hosted auth provider")
		provider = NewGoTrueProvider(authConfig)
	} else {
		logger.Log.Info("Using local auth provider")
		provider = NewLocalProvider(database, authConfig)
	}

	return &Service{provider: provider, db: database}
}

// SignUp registers the account, then makes sure the user row exists and
// creates the default settings. The account exists in the provider
// regardless, so record-keeping failures are logged but never fail the
// registration.
func (s *Service) SignUp(email, password, name string) (*AuthUser, *Session, error) {
	if name == "" {
		name = nameFromEmail(email)
	}

	user, session, err := s.provider.SignUp(email, password, name)
	if err != nil {
		return nil, nil, friendlyError(err)
	}

	if s.db != nil {
		// The local provider inserts the users row itself; the hosted
		// provider owns the account and the row is created here.
		if _, err := s.db.GetUser(user.ID); err != nil {
			if _, err := s.db.CreateUser(user.ID, user.Email, name); err != nil {
				logger.Log.WithError(err).Error("Database error during signup: user row")
			}
		}
		settings := db.UserSettings{
			UserID:       user.ID,
			Model:        defaultModel,
			Temperature:  defaultTemperature,
			MaxTokens:    defaultMaxTokens,
			SystemPrompt: defaultSystemPrompt,
		}
		if err := s.db.CreateUserSettings(settings); err != nil {
			logger.Log.WithError(err).Error("Database error during signup: default settings")
		}
	}

	return user, session, nil
}

// SignIn authenticates against the provider
func (s *Service) SignIn(email, password string) (*AuthUser, *Session, error) {
	user, session, err := s.provider.SignIn(email, password)
	if err != nil {
		return nil, nil, friendlyError(err)
	}
	return user, session, nil
}

// SignOut ends the session with the provider
func (s *Service) SignOut(accessToken string) error {
	if err := s.provider.SignOut(accessToken); err != nil {
		return friendlyError(err)
	}
	return nil
}

// friendlyError remaps known provider error messages to friendlier text;
// everything else passes through unchanged.
func friendlyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid login credentials"):
		return fmt.Errorf("incorrect email or password")
	case strings.Contains(msg, "email not confirmed"):
		return fmt.Errorf("please confirm your email address before signing in")
	case strings.Contains(msg, "user not found"):
		return fmt.Errorf("no account found for that email")
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "already exists"):
		return fmt.Errorf("an account with that email already exists")
	default:
		return err
	}
}

// nameFromEmail derives a display name from the address local part
func nameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
