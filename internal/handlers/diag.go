package handlers

import (
	"net/http"
	"strings"

	"chatbot-backend/internal/llm"
)

// DiagResponse is the diagnostic endpoint payload
type DiagResponse struct {
	Status   string     `json:"status"`
	Message  string     `json:"message"`
	Response string     `json:"response,omitempty"`
	Usage    *llm.Usage `json:"usage,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// EnvCheckResponse reports which recognized settings are present
type EnvCheckResponse struct {
	Status      string          `json:"status"`
	Environment map[string]bool `json:"environment"`
	Missing     []string        `json:"missing"`
	Message     string          `json:"message"`
}

// TestLLMHandler makes one real provider call and surfaces the raw error.
// Unlike /api/chat, this endpoint intentionally skips the fallback so
// provider problems can be seen as-is.
func (h *Handlers) TestLLMHandler(w http.ResponseWriter, r *http.Request) {
	completion, err := h.config.LLM.Complete(
		[]llm.Message{{Role: "user", Content: `Hello! Please respond with "The provider is working!"`}},
		llm.Options{Temperature: 0.7, MaxTokens: 50},
	)
	if err != nil {
		h.sendJSON(w, http.StatusOK, DiagResponse{
			Status:  "error",
			Message: "Provider test failed",
			Error:   err.Error(),
		})
		return
	}

	h.sendJSON(w, http.StatusOK, DiagResponse{
		Status:   "success",
		Message:  "Provider is working",
		Response: completion.Content,
		Usage:    completion.Usage,
	})
}

// EnvCheckHandler reports the presence of the recognized configuration
// options without revealing their values
func (h *Handlers) EnvCheckHandler(w http.ResponseWriter, r *http.Request) {
	cfg := h.config.AppConfig

	environment := map[string]bool{
		"DATABASE_URL": cfg.Database.Configured(),
		"GROQ_API_KEY": cfg.LLM.GroqAPIKey != "",
		"HF_TOKEN":     cfg.LLM.HFToken != "",
		"AUTH":         cfg.Auth.Configured(),
	}

	// Fixed order so the missing list is stable across responses
	missing := []string{}
	for _, key := range []string{"DATABASE_URL", "GROQ_API_KEY", "HF_TOKEN", "AUTH"} {
		if !environment[key] {
			missing = append(missing, key)
		}
	}

	status := "success"
	message := "All recognized settings are present"
	if len(missing) > 0 {
		status = "error"
		message = "Missing settings: " + strings.Join(missing, ", ")
	}

	h.sendJSON(w, http.StatusOK, EnvCheckResponse{
		Status:      status,
		Environment: environment,
		Missing:     missing,
		Message:     message,
	})
}
