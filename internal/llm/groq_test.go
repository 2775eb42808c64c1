package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatbot-backend/internal/config"
)

func groqTestConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		GroqAPIKey:  "test-key",
		GroqModel:   "llama-3.1-8b-instant",
		GroqBaseURL: baseURL,
	}
}

func TestGroqComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header: got %s", got)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req["model"] != "llama-3.1-8b-instant" {
			t.Errorf("Model: got %v", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Hello from Groq"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
		}`))
	}))
	defer server.Close()

	client := NewGroqClient(groqTestConfig(server.URL))
	completion, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{Temperature: 0.7, MaxTokens: 100})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if completion.Content != "Hello from Groq" {
		t.Errorf("Content: got %q, want Hello from Groq", completion.Content)
	}
	if completion.Usage == nil {
		t.Fatal("Usage must be populated")
	}
	if completion.Usage.PromptTokens != 12 || completion.Usage.CompletionTokens != 4 || completion.Usage.TotalTokens != 16 {
		t.Errorf("Usage: got %+v", completion.Usage)
	}
}

func TestGroqComplete_ModelOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["model"] != "llama-3.3-70b-versatile" {
			t.Errorf("Model override not honored: got %v", req["model"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}], "usage": {}}`))
	}))
	defer server.Close()

	client := NewGroqClient(groqTestConfig(server.URL))
	if _, err := client.Complete(
		[]Message{{Role: "user", Content: "hi"}},
		Options{Model: "llama-3.3-70b-versatile"},
	); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
}

func TestGroqComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [], "usage": {}}`))
	}))
	defer server.Close()

	client := NewGroqClient(groqTestConfig(server.URL))
	_, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("Expected error for empty choices, got nil")
	}
	if !strings.Contains(err.Error(), "no response") {
		t.Errorf("Error: got %v", err)
	}
}

func TestGroqComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Invalid API Key", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewGroqClient(groqTestConfig(server.URL))
	_, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("Expected error for 401, got nil")
	}
}

func TestGroqComplete_MissingKey(t *testing.T) {
	client := NewGroqClient(config.LLMConfig{GroqModel: "llama-3.1-8b-instant"})
	_, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("Expected error for missing key, got nil")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("Error: got %v", err)
	}
}

func TestGroqDefaultModel(t *testing.T) {
	client := NewGroqClient(groqTestConfig("http://example.invalid"))
	if got := client.DefaultModel(); got != "llama-3.1-8b-instant" {
		t.Errorf("DefaultModel: got %s", got)
	}
}
