package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"

	"github.com/sirupsen/logrus"
)

// HuggingFaceClient implements Client against the Hugging Face
// text-generation inference endpoint. Messages are flattened into a single
// role-tagged prompt and the response is normalized right after the call:
// the endpoint answers with either a single object or a one-element array,
// and errors arrive as a field inside an otherwise-200-shaped payload.
type HuggingFaceClient struct {
	config     config.LLMConfig
	httpClient *http.Client
}

// NewHuggingFaceClient creates a new Hugging Face client from config
func NewHuggingFaceClient(llmConfig config.LLMConfig) *HuggingFaceClient {
	return &HuggingFaceClient{
		config:     llmConfig,
		httpClient: &http.Client{},
	}
}

type hfParameters struct {
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature"`
	ReturnFullText    bool    `json:"return_full_text"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// hfResult is the normalized form of one generation result, regardless of
// whether the provider wrapped it in an array.
type hfResult struct {
	GeneratedText string `json:"generated_text"`
	Text          string `json:"text"`
	Error         string `json:"error"`
}

// Complete flattens the messages into a turn-marked prompt, posts it as a
// single inputs string, and returns the cleaned generation. Usage is not
// reported by this endpoint.
func (h *HuggingFaceClient) Complete(messages []Message, opts Options) (*Completion, error) {
	if h.config.HFToken == "" {
		return nil, fmt.Errorf("HF_TOKEN not configured")
	}

	model := opts.Model
	if model == "" {
		model = h.config.HFModel
	}

	prompt := formatPrompt(messages)

	logger.Log.WithFields(logrus.Fields{
		"model":         model,
		"temperature":   opts.Temperature,
		"max_tokens":    opts.MaxTokens,
		"prompt_length": len(prompt),
	}).Info("Calling Hugging Face API")

	reqBody := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:      opts.MaxTokens,
			Temperature:       opts.Temperature,
			ReturnFullText:    false,
			TopP:              0.9,
			RepetitionPenalty: 1.1,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", h.config.HFBaseURL, model)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.config.HFToken)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, h.statusError(resp.StatusCode, model, body)
	}

	result, err := normalizeResponse(body)
	if err != nil {
		return nil, err
	}

	content := cleanGeneration(result, prompt)
	logger.Log.WithField("content_length", len(content)).Debug("Extracted content from response")

	return &Completion{Content: content}, nil
}

// DefaultModel returns the configured Hugging Face model
func (h *HuggingFaceClient) DefaultModel() string {
	return h.config.HFModel
}

// statusError maps provider status codes to distinct, human-readable errors
func (h *HuggingFaceClient) statusError(status int, model string, body []byte) error {
	message := strings.TrimSpace(string(body))
	var payload hfResult
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	switch status {
	case http.StatusServiceUnavailable:
		return fmt.Errorf("model is loading, wait a few seconds and try again")
	case http.StatusNotFound:
		return fmt.Errorf("model %q not available on the inference endpoint", model)
	default:
		return fmt.Errorf("API returned status %d: %s", status, message)
	}
}

// normalizeResponse folds the two observed payload shapes (single object or
// one-element array) into one result. An error field is a failure even on a
// 200 response, never a reply.
func normalizeResponse(body []byte) (*hfResult, error) {
	var result hfResult

	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		var results []hfResult
		if err := json.Unmarshal(body, &results); err != nil {
			return nil, fmt.Errorf("error decoding response: %w", err)
		}
		if len(results) == 0 {
			return nil, fmt.Errorf("no response from API")
		}
		result = results[0]
	} else {
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("error decoding response: %w", err)
		}
	}

	if result.Error != "" {
		return nil, fmt.Errorf("provider error: %s", result.Error)
	}

	return &result, nil
}

// formatPrompt flattens messages into the turn-marker scheme the chat-tuned
// text-generation models expect, ending with an open assistant turn.
func formatPrompt(messages []Message) string {
	var sb strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			sb.WriteString("<|system|>\n" + msg.Content + "\n")
		case "user":
			sb.WriteString("<|user|>\n" + msg.Content + "\n")
		case "assistant":
			sb.WriteString("<|assistant|>\n" + msg.Content + "\n")
		}
	}
	sb.WriteString("<|assistant|>\n")
	return sb.String()
}

// cleanGeneration strips the prompt echo and any leftover turn markers
func cleanGeneration(result *hfResult, prompt string) string {
	text := result.GeneratedText
	if text == "" {
		text = result.Text
	}

	if strings.Contains(text, prompt) {
		text = strings.Replace(text, prompt, "", 1)
	}

	for _, marker := range []string{"<|assistant|>", "<|user|>", "<|system|>"} {
		text = strings.ReplaceAll(text, marker+"\n", "")
		text = strings.ReplaceAll(text, marker, "")
	}

	return strings.TrimSpace(text)
}
