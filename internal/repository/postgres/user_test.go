package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	pg, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("user-1", "alex@example.com", "Alex").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "created_at"}).
			AddRow("user-1", "alex@example.com", "Alex", now))

	user, err := pg.CreateUser("user-1", "alex@example.com", "Alex")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Alex", user.Name)
}

func TestGetUser_NotFound(t *testing.T) {
	pg, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, email, name, created_at FROM users`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "created_at"}))

	_, err := pg.GetUser("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetUserSettings(t *testing.T) {
	pg, mock := newMockDB(t)

	mock.ExpectQuery(`FROM user_settings`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "model", "temperature", "max_tokens", "system_prompt", "total_tokens"}).
			AddRow("user-1", "llama-3.1-8b-instant", 0.7, 1000, "Be nice.", 250))

	settings, err := pg.GetUserSettings("user-1")
	require.NoError(t, err)
	assert.Equal(t, "llama-3.1-8b-instant", settings.Model)
	assert.Equal(t, 250, settings.TotalTokens)
}

func TestAddTokenUsage(t *testing.T) {
	pg, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE user_settings SET total_tokens = total_tokens \+ \$2`).
		WithArgs("user-1", 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, pg.AddTokenUsage("user-1", 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCredential_Duplicate(t *testing.T) {
	pg, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO auth_credentials`).
		WithArgs("alex@example.com", "user-1", "hash").
		WillReturnError(&pq.Error{Code: "23505"})

	err := pg.CreateCredential("alex@example.com", "user-1", "hash")
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())
}

func TestGetCredentialByEmail(t *testing.T) {
	pg, mock := newMockDB(t)

	mock.ExpectQuery(`FROM auth_credentials`).
		WithArgs("alex@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "user_id", "password_hash"}).
			AddRow("alex@example.com", "user-1", "hash"))

	cred, err := pg.GetCredentialByEmail("alex@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cred.UserID)
	assert.Equal(t, "hash", cred.PasswordHash)
}

func TestCountUsers(t *testing.T) {
	pg, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := pg.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}
