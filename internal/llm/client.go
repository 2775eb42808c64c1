package llm

// Message is a single role/content turn in provider-neutral form.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token accounting for a completion. The text-generation
// providers don't return it; callers must treat it as optional.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Options are the resolved generation parameters for a single call.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Completion is a provider response normalized immediately after the HTTP
// call, so nothing upstream has to know about provider shapes.
type Completion struct {
	Content string
	Usage   *Usage
}

// Client is the provider-neutral inference contract. Complete sends a
// system-prefixed message list and returns the reply text, or an error for
// any transport, status, or payload problem.
type Client interface {
	Complete(messages []Message, opts Options) (*Completion, error)
	DefaultModel() string
}
