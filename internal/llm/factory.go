package llm

import (
	"fmt"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"
)

// ProviderType represents the type of LLM provider
type ProviderType string

const (
	ProviderGroq        ProviderType = "groq"
	ProviderHuggingFace ProviderType = "huggingface"
)

// ParseProviderType parses a string into a ProviderType
func ParseProviderType(s string) (ProviderType, error) {
	switch s {
	case "groq", "":
		return ProviderGroq, nil
	case "huggingface":
		return ProviderHuggingFace, nil
	default:
		return "", fmt.Errorf("unknown provider type: %s", s)
	}
}

// NewClient creates the configured provider client. One strategy is picked
// per deployment; both expose the same contract.
func NewClient(llmConfig config.LLMConfig) (Client, error) {
	providerType, err := ParseProviderType(llmConfig.Provider)
	if err != nil {
		return nil, err
	}

	switch providerType {
	case ProviderGroq:
		logger.Log.Info("Using Groq chat-completion provider")
		return NewGroqClient(llmConfig), nil
	case ProviderHuggingFace:
		logger.Log.Info("Using Hugging Face text-generation provider")
		return NewHuggingFaceClient(llmConfig), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
