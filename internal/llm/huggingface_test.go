package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatbot-backend/internal/config"
)

func hfTestConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		HFToken:   "test-token",
		HFModel:   "test/model",
		HFBaseURL: baseURL,
	}
}

func TestHuggingFaceComplete_ArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test/model" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header: got %s", got)
		}

		var req hfRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Parameters.ReturnFullText {
			t.Error("return_full_text must be false")
		}
		if !strings.Contains(req.Inputs, "<|user|>\nSay hello\n") {
			t.Errorf("Prompt missing user turn marker: %q", req.Inputs)
		}
		if !strings.HasSuffix(req.Inputs, "<|assistant|>\n") {
			t.Errorf("Prompt must end with an open assistant turn: %q", req.Inputs)
		}

		w.Write([]byte(`[{"generated_text": "Hello"}]`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient(hfTestConfig(server.URL))
	completion, err := client.Complete([]Message{{Role: "user", Content: "Say hello"}}, Options{MaxTokens: 50})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if completion.Content != "Hello" {
		t.Errorf("Content: got %q, want Hello", completion.Content)
	}
	if completion.Usage != nil {
		t.Errorf("Usage must be nil for this endpoint, got %+v", completion.Usage)
	}
}

func TestHuggingFaceComplete_ObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generated_text": "Object shape reply"}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient(hfTestConfig(server.URL))
	completion, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if completion.Content != "Object shape reply" {
		t.Errorf("Content: got %q", completion.Content)
	}
}

func TestHuggingFaceComplete_ErrorFieldOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "rate limit exceeded"}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient(hfTestConfig(server.URL))
	_, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("Expected error for payload error field, got nil")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("Error must carry the provider message, got: %v", err)
	}
}

func TestHuggingFaceComplete_ModelLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "Model test/model is currently loading"}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient(hfTestConfig(server.URL))
	_, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("Expected error for 503, got nil")
	}
	if !strings.Contains(err.Error(), "model is loading") {
		t.Errorf("503 must map to the loading message, got: %v", err)
	}
}

func TestHuggingFaceComplete_ModelNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHuggingFaceClient(hfTestConfig(server.URL))
	_, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if !strings.Contains(err.Error(), "not available") {
		t.Errorf("404 must map to the not-available message, got: %v", err)
	}
}

func TestHuggingFaceComplete_StripsPromptEcho(t *testing.T) {
	var sentPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req hfRequest
		json.NewDecoder(r.Body).Decode(&req)
		sentPrompt = req.Inputs
		// Some models echo the prompt despite return_full_text=false
		json.NewEncoder(w).Encode([]hfResult{{GeneratedText: sentPrompt + "The actual reply"}})
	}))
	defer server.Close()

	client := NewHuggingFaceClient(hfTestConfig(server.URL))
	completion, err := client.Complete([]Message{
		{Role: "system", Content: "Be nice."},
		{Role: "user", Content: "hi"},
	}, Options{})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if completion.Content != "The actual reply" {
		t.Errorf("Prompt echo not stripped: got %q", completion.Content)
	}
}

func TestHuggingFaceComplete_MissingToken(t *testing.T) {
	client := NewHuggingFaceClient(config.LLMConfig{HFModel: "test/model"})
	_, err := client.Complete([]Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("Expected error for missing token, got nil")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("Error: got %v", err)
	}
}

func TestFormatPrompt(t *testing.T) {
	prompt := formatPrompt([]Message{
		{Role: "system", Content: "Be helpful."},
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there"},
		{Role: "user", Content: "Bye"},
	})

	want := "<|system|>\nBe helpful.\n<|user|>\nHello\n<|assistant|>\nHi there\n<|user|>\nBye\n<|assistant|>\n"
	if prompt != want {
		t.Errorf("formatPrompt:\ngot  %q\nwant %q", prompt, want)
	}
}

func TestCleanGeneration_RemovesMarkers(t *testing.T) {
	result := &hfResult{GeneratedText: "<|assistant|>\nA reply<|user|>"}
	if got := cleanGeneration(result, "some prompt"); got != "A reply" {
		t.Errorf("cleanGeneration: got %q, want A reply", got)
	}
}

func TestCleanGeneration_TextField(t *testing.T) {
	result := &hfResult{Text: "From the text field"}
	if got := cleanGeneration(result, ""); got != "From the text field" {
		t.Errorf("cleanGeneration: got %q", got)
	}
}
