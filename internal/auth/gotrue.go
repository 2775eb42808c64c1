package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"
)

// GoTrueProvider talks to a hosted GoTrue-style auth service (the auth
// surface exposed by hosted Postgres platforms). Requests carry the public
// anonymous key; the service owns the account records.
type GoTrueProvider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewGoTrueProvider creates a hosted auth provider from config
func NewGoTrueProvider(authConfig config.AuthConfig) *GoTrueProvider {
	return &GoTrueProvider{
		baseURL:    authConfig.URL,
		anonKey:    authConfig.AnonKey,
		httpClient: &http.Client{},
	}
}

type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        gotrueUser `json:"user"`
}

type gotrueError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

// SignUp registers a new account with the hosted service
func (g *GoTrueProvider) SignUp(email, password, name string) (*AuthUser, *Session, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name},
	}

	var result gotrueSession
	if err := g.post("/auth/v1/signup", "", payload, &result); err != nil {
		return nil, nil, err
	}

	user := &AuthUser{ID: result.User.ID, Email: result.User.Email, Name: result.User.UserMetadata.Name}
	if user.ID == "" {
		// Some deployments answer signup with a bare user object instead of
		// a session (e.g. when email confirmation is on).
		return nil, nil, fmt.Errorf("signup accepted but no user returned; email confirmation may be pending")
	}

	return user, sessionFrom(&result), nil
}

// SignIn authenticates with the password grant
func (g *GoTrueProvider) SignIn(email, password string) (*AuthUser, *Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var result gotrueSession
	if err := g.post("/auth/v1/token?grant_type=password", "", payload, &result); err != nil {
		return nil, nil, err
	}

	user := &AuthUser{ID: result.User.ID, Email: result.User.Email, Name: result.User.UserMetadata.Name}
	return user, sessionFrom(&result), nil
}

// SignOut revokes the session token with the hosted service
func (g *GoTrueProvider) SignOut(accessToken string) error {
	return g.post("/auth/v1/logout", accessToken, struct{}{}, nil)
}

// post sends a JSON request with the anonymous key (and optionally a bearer
// token) and decodes the response, surfacing the service's error message.
func (g *GoTrueProvider) post(path, bearer string, payload, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", g.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", g.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+g.anonKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var svcErr gotrueError
		if err := json.Unmarshal(body, &svcErr); err == nil {
			if svcErr.Message != "" {
				return fmt.Errorf("%s", svcErr.Message)
			}
			if svcErr.ErrorDescription != "" {
				return fmt.Errorf("%s", svcErr.ErrorDescription)
			}
		}
		return fmt.Errorf("auth service returned status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		logger.Log.WithError(err).Debug("Error decoding auth response")
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func sessionFrom(s *gotrueSession) *Session {
	tokenType := s.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return &Session{
		AccessToken: s.AccessToken,
		TokenType:   tokenType,
		ExpiresIn:   s.ExpiresIn,
	}
}
