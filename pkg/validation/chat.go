package validation

import (
	"errors"
	"fmt"

	"chatbot-backend/internal/llm"
)

// ValidateMessages validates the messages array of a chat request
func ValidateMessages(messages []llm.Message) error {
	if len(messages) == 0 {
		return errors.New("messages array cannot be empty")
	}

	for i, m := range messages {
		if err := ValidateRole(m.Role); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		if m.Content == "" {
			return fmt.Errorf("message %d: content cannot be empty", i)
		}
	}

	return nil
}

// ValidateRole validates a chat message role
func ValidateRole(role string) error {
	switch role {
	case "system", "user", "assistant":
		return nil
	case "":
		return errors.New("role cannot be empty")
	default:
		return fmt.Errorf("role must be one of: system, user, assistant; got %s", role)
	}
}

// ValidateTemperature validates the temperature parameter
func ValidateTemperature(temperature *float64) error {
	if temperature == nil {
		return nil // Temperature is optional
	}

	if *temperature < 0 || *temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %.2f", *temperature)
	}
	return nil
}

// ValidateMaxTokens validates the max tokens parameter
func ValidateMaxTokens(maxTokens int) error {
	if maxTokens < 0 {
		return fmt.Errorf("max_tokens cannot be negative, got %d", maxTokens)
	}
	return nil
}
