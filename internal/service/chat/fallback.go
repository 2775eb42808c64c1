package chat

import (
	"fmt"
	"strings"
)

// fallbackRule pairs a lowercase trigger substring with its canned reply.
// Rules are checked in order; the first match wins.
type fallbackRule struct {
	trigger string
	reply   string
}

var fallbackRules = []fallbackRule{
	{"hello", "Hello! The AI model is temporarily unavailable, but I'm here to chat!"},
	{"hi", "Hello! The AI model is temporarily unavailable, but I'm here to chat!"},
	{"how are you", "I'm doing well! The AI service is having issues, but I'm still working in demo mode."},
	{"help", "I'm in fallback mode right now. The AI provider seems to be having issues. Try again later or check your API key setup."},
}

// FallbackReply picks a canned response for the user's last message when the
// real provider call fails or returns nothing. It is pure and total: the
// same input always matches the same rule and the result is never empty.
func FallbackReply(lastUserMessage string) string {
	lowered := strings.ToLower(lastUserMessage)

	for _, rule := range fallbackRules {
		if strings.Contains(lowered, rule.trigger) {
			return rule.reply
		}
	}

	return fmt.Sprintf("You said: %q. The AI model is currently unavailable, but I received your message! This is a fallback response.", lastUserMessage)
}
