package auth

import (
	"fmt"
	"time"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/repository/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider stores bcrypt-hashed credentials in the application database
// and issues HS256 session tokens itself. Used when no hosted auth service
// is configured.
type LocalProvider struct {
	db         db.Database
	jwtSecret  []byte
	expiration time.Duration
}

// NewLocalProvider creates a local auth provider from config
func NewLocalProvider(database db.Database, authConfig config.AuthConfig) *LocalProvider {
	return &LocalProvider{
		db:         database,
		jwtSecret:  authConfig.JWTSecret,
		expiration: authConfig.TokenExpiration,
	}
}

// Claims are the session token claims
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignUp creates the user and credential rows and issues a session token
func (l *LocalProvider) SignUp(email, password, name string) (*AuthUser, *Session, error) {
	if len(password) < 6 {
		return nil, nil, fmt.Errorf("password must be at least 6 characters")
	}

	if _, err := l.db.GetCredentialByEmail(email); err == nil {
		return nil, nil, fmt.Errorf("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	// The users row must exist before the credential row that references it
	userID := uuid.New().String()
	if _, err := l.db.CreateUser(userID, email, name); err != nil {
		return nil, nil, err
	}
	if err := l.db.CreateCredential(email, userID, string(hashedPassword)); err != nil {
		return nil, nil, err
	}

	user := &AuthUser{ID: userID, Email: email, Name: name}
	session, err := l.issueSession(userID, email)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// SignIn verifies the password and issues a session token
func (l *LocalProvider) SignIn(email, password string) (*AuthUser, *Session, error) {
	cred, err := l.db.GetCredentialByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid login credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, nil, fmt.Errorf("invalid login credentials")
	}

	user := &AuthUser{ID: cred.UserID, Email: email}
	if stored, err := l.db.GetUser(cred.UserID); err == nil {
		user.Name = stored.Name
	}

	session, err := l.issueSession(cred.UserID, email)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// SignOut validates the token; local sessions are stateless so there is
// nothing to revoke.
func (l *LocalProvider) SignOut(accessToken string) error {
	_, err := l.ValidateToken(accessToken)
	return err
}

// issueSession signs a session token for the user
func (l *LocalProvider) issueSession(userID, email string) (*Session, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(l.expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(l.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &Session{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(l.expiration.Seconds()),
	}, nil
}

// ValidateToken parses and validates a session token
func (l *LocalProvider) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return l.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
