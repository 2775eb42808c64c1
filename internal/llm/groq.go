package llm

import (
	"context"
	"fmt"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// GroqClient implements Client against Groq's chat-completion endpoint.
// Groq exposes an OpenAI-compatible surface, so the request goes through
// the go-openai client with the base URL overridden.
type GroqClient struct {
	config config.LLMConfig
	client *openai.Client
}

// NewGroqClient creates a new Groq client from config
func NewGroqClient(llmConfig config.LLMConfig) *GroqClient {
	clientConfig := openai.DefaultConfig(llmConfig.GroqAPIKey)
	clientConfig.BaseURL = llmConfig.GroqBaseURL

	return &GroqClient{
		config: llmConfig,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Complete sends the message list verbatim as role/content pairs and reads
// the first choice's message content plus the usage block.
func (g *GroqClient) Complete(messages []Message, opts Options) (*Completion, error) {
	if g.config.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY not configured")
	}

	model := opts.Model
	if model == "" {
		model = g.config.GroqModel
	}

	logger.Log.WithFields(logrus.Fields{
		"model":         model,
		"temperature":   opts.Temperature,
		"max_tokens":    opts.MaxTokens,
		"message_count": len(messages),
	}).Info("Calling Groq API")

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := g.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:       model,
		Messages:    chatMessages,
		Temperature: float32(opts.Temperature),
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("error calling Groq API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty response from API")
	}
	logger.Log.WithField("content_length", len(content)).Debug("Extracted content from response")

	return &Completion{
		Content: content,
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// DefaultModel returns the configured Groq model
func (g *GroqClient) DefaultModel() string {
	return g.config.GroqModel
}
