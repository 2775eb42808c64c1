package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatbot-backend/internal/config"
)

func gotrueTestConfig(baseURL string) config.AuthConfig {
	return config.AuthConfig{
		Provider: "hosted",
		URL:      baseURL,
		AnonKey:  "anon-key",
	}
}

func TestGoTrueSignUp_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("apikey header: got %s", got)
		}

		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["email"] != "alex@example.com" {
			t.Errorf("email: got %v", payload["email"])
		}

		w.Write([]byte(`{
			"access_token": "token-abc",
			"token_type": "bearer",
			"expires_in": 3600,
			"user": {"id": "user-1", "email": "alex@example.com", "user_metadata": {"name": "Alex"}}
		}`))
	}))
	defer server.Close()

	provider := NewGoTrueProvider(gotrueTestConfig(server.URL))
	user, session, err := provider.SignUp("alex@example.com", "secret123", "Alex")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.ID != "user-1" || user.Name != "Alex" {
		t.Errorf("User: got %+v", user)
	}
	if session.AccessToken != "token-abc" || session.ExpiresIn != 3600 {
		t.Errorf("Session: got %+v", session)
	}
}

func TestGoTrueSignUp_ConfirmationPending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Bare response without a user when email confirmation is on
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	provider := NewGoTrueProvider(gotrueTestConfig(server.URL))
	_, _, err := provider.SignUp("alex@example.com", "secret123", "Alex")
	if err == nil {
		t.Fatal("Expected error when no user is returned")
	}
	if !strings.Contains(err.Error(), "confirmation may be pending") {
		t.Errorf("Error: got %v", err)
	}
}

func TestGoTrueSignIn_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/auth/v1/token") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("grant_type"); got != "password" {
			t.Errorf("grant_type: got %s", got)
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description": "Invalid login credentials"}`))
	}))
	defer server.Close()

	provider := NewGoTrueProvider(gotrueTestConfig(server.URL))
	_, _, err := provider.SignIn("alex@example.com", "wrong")
	if err == nil {
		t.Fatal("Expected error for invalid credentials")
	}
	if err.Error() != "Invalid login credentials" {
		t.Errorf("Error must carry the service message, got: %v", err)
	}
}

func TestGoTrueSignOut(t *testing.T) {
	var gotBearer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/logout" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		gotBearer = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	provider := NewGoTrueProvider(gotrueTestConfig(server.URL))
	if err := provider.SignOut("session-token"); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if gotBearer != "Bearer session-token" {
		t.Errorf("Authorization: got %s, want Bearer session-token", gotBearer)
	}
}

func TestGoTrueErrorMessagePreference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"msg": "User already registered"}`))
	}))
	defer server.Close()

	provider := NewGoTrueProvider(gotrueTestConfig(server.URL))
	_, _, err := provider.SignUp("alex@example.com", "secret123", "Alex")
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "User already registered" {
		t.Errorf("msg field must win, got: %v", err)
	}
}
