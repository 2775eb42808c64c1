package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"chatbot-backend/internal/auth"
	"chatbot-backend/internal/logger"
	"chatbot-backend/pkg/validation"
)

// AuthRequest is the POST /api/auth body
type AuthRequest struct {
	Action   string `json:"action"` // "signup", "signin" or "signout"
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
	Token    string `json:"token,omitempty"`
}

// AuthResponse is the session payload for signup/signin
type AuthResponse struct {
	User    *auth.AuthUser `json:"user"`
	Session *auth.Session  `json:"session"`
}

// SignOutResponse acknowledges a signout
type SignOutResponse struct {
	Success bool `json:"success"`
}

// AuthHandler bridges account actions to the configured auth provider
func (h *Handlers) AuthHandler(w http.ResponseWriter, r *http.Request) {
	if !h.config.AppConfig.Auth.Configured() {
		h.sendError(w, http.StatusInternalServerError,
			"Auth not configured. Set AUTH_URL and AUTH_ANON_KEY for the hosted provider, or JWT_SECRET for local accounts.", nil)
		return
	}

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	switch req.Action {
	case "signup":
		if err := validation.ValidateCredentials(req.Email, req.Password); err != nil {
			h.sendError(w, http.StatusBadRequest, "Invalid credentials", err)
			return
		}
		user, session, err := h.config.Auth.SignUp(req.Email, req.Password, req.Name)
		if err != nil {
			logger.Log.WithError(err).WithField("email", req.Email).Warn("Signup failed")
			h.sendError(w, http.StatusBadRequest, "Signup failed", err)
			return
		}
		h.sendJSON(w, http.StatusOK, AuthResponse{User: user, Session: session})

	case "signin":
		if err := validation.ValidateCredentials(req.Email, req.Password); err != nil {
			h.sendError(w, http.StatusBadRequest, "Invalid credentials", err)
			return
		}
		user, session, err := h.config.Auth.SignIn(req.Email, req.Password)
		if err != nil {
			logger.Log.WithError(err).WithField("email", req.Email).Warn("Signin failed")
			h.sendError(w, http.StatusUnauthorized, "Signin failed", err)
			return
		}
		h.sendJSON(w, http.StatusOK, AuthResponse{User: user, Session: session})

	case "signout":
		token := req.Token
		if token == "" {
			token = bearerToken(r)
		}
		if err := h.config.Auth.SignOut(token); err != nil {
			h.sendError(w, http.StatusBadRequest, "Signout failed", err)
			return
		}
		h.sendJSON(w, http.StatusOK, SignOutResponse{Success: true})

	default:
		h.sendError(w, http.StatusBadRequest, "Invalid action", nil)
	}
}

// bearerToken extracts the token from an Authorization header, if any
func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
