package postgres

import (
	"database/sql"
	"fmt"

	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"

	"github.com/sirupsen/logrus"
)

// CreateUser inserts a user row. The id comes from the auth provider so
// that both providers agree on the identifier.
func (p *PostgresDB) CreateUser(id, email, name string) (*db.User, error) {
	var user db.User

	query := `
	INSERT INTO users (id, email, name)
	VALUES ($1, $2, $3)
	RETURNING id, email, name, created_at
	`

	err := p.conn.QueryRow(query, id, email, name).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"user_id": user.ID, "email": email}).Info("Created new user")

	return &user, nil
}

// GetUser retrieves a user by id
func (p *PostgresDB) GetUser(id string) (*db.User, error) {
	var user db.User
	query := `SELECT id, email, name, created_at FROM users WHERE id = $1`

	err := p.conn.QueryRow(query, id).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (p *PostgresDB) GetUserByEmail(email string) (*db.User, error) {
	var user db.User
	query := `SELECT id, email, name, created_at FROM users WHERE email = $1`

	err := p.conn.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// CountUsers returns the platform-wide user count
func (p *PostgresDB) CountUsers() (int, error) {
	var count int
	if err := p.conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// CreateUserSettings inserts the settings row created at sign-up
func (p *PostgresDB) CreateUserSettings(settings db.UserSettings) error {
	query := `
	INSERT INTO user_settings (user_id, model, temperature, max_tokens, system_prompt, total_tokens)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.conn.Exec(query, settings.UserID, settings.Model, settings.Temperature,
		settings.MaxTokens, settings.SystemPrompt, settings.TotalTokens)
	if err != nil {
		return fmt.Errorf("error creating user settings: %w", err)
	}

	logger.Log.WithField("user_id", settings.UserID).Info("Created default user settings")
	return nil
}

// GetUserSettings retrieves a user's chat preferences
func (p *PostgresDB) GetUserSettings(userID string) (*db.UserSettings, error) {
	var settings db.UserSettings
	query := `
	SELECT user_id, model, temperature, max_tokens, system_prompt, total_tokens
	FROM user_settings
	WHERE user_id = $1
	`

	err := p.conn.QueryRow(query, userID).Scan(&settings.UserID, &settings.Model,
		&settings.Temperature, &settings.MaxTokens, &settings.SystemPrompt, &settings.TotalTokens)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user settings not found")
		}
		return nil, fmt.Errorf("error retrieving user settings: %w", err)
	}

	return &settings, nil
}

// AddTokenUsage adds this turn's tokens to the user's lifetime counter
func (p *PostgresDB) AddTokenUsage(userID string, tokens int) error {
	query := `UPDATE user_settings SET total_tokens = total_tokens + $2 WHERE user_id = $1`

	if _, err := p.conn.Exec(query, userID, tokens); err != nil {
		return fmt.Errorf("error updating token usage: %w", err)
	}
	return nil
}

// Local auth credential storage

// CreateCredential stores a bcrypt hash for the local auth provider
func (p *PostgresDB) CreateCredential(email, userID, passwordHash string) error {
	query := `INSERT INTO auth_credentials (email, user_id, password_hash) VALUES ($1, $2, $3)`

	if _, err := p.conn.Exec(query, email, userID, passwordHash); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered")
		}
		return fmt.Errorf("error creating credential: %w", err)
	}
	return nil
}

// GetCredentialByEmail retrieves a local credential row
func (p *PostgresDB) GetCredentialByEmail(email string) (*db.Credential, error) {
	var cred db.Credential
	query := `SELECT email, user_id, password_hash FROM auth_credentials WHERE email = $1`

	err := p.conn.QueryRow(query, email).Scan(&cred.Email, &cred.UserID, &cred.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("error retrieving credential: %w", err)
	}

	return &cred, nil
}
