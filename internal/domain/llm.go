package domain

// ChatMessageRole is the speaker of a chat message or transcript turn
type ChatMessageRole string

const (
	// ChatMessageRoleSystem - instruction text, never stored in a transcript
	ChatMessageRoleSystem ChatMessageRole = "system"
	// ChatMessageRoleUser - the candidate
	ChatMessageRoleUser ChatMessageRole = "user"
	// ChatMessageRoleAssistant - the interviewer
	ChatMessageRoleAssistant ChatMessageRole = "assistant"
)

// ChatMessage is one message sent to an LLM provider
type ChatMessage struct {
	Role    ChatMessageRole
	Content string
}

// ChatCompletionRequest is a provider independent completion request
type ChatCompletionRequest struct {
	Messages    []ChatMessage
	Model       *string
	Temperature *float64
	MaxTokens   int
	Stream      bool
}

// ChatCompletionResponse is the result of a non-streaming completion
type ChatCompletionResponse struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatCompletionChunk is one fragment of a streaming completion.
// The last chunk on a stream carries Done=true, and Error when the stream broke.
type ChatCompletionChunk struct {
	Content string
	Done    bool
	Error   error
}

// ModelInfo describes a model served by an OpenAI-compatible endpoint
type ModelInfo struct {
	ID      string
	Object  string
	OwnedBy string
}

// SystemPrompt returns the system message content of a request, if any
func (r ChatCompletionRequest) SystemPrompt() string {
	for _, msg := range r.Messages {
		if msg.Role == ChatMessageRoleSystem {
			return msg.Content
		}
	}
	return ""
}

// Conversation returns the request messages without system messages
func (r ChatCompletionRequest) Conversation() []ChatMessage {
	out := make([]ChatMessage, 0, len(r.Messages))
	for _, msg := range r.Messages {
		if msg.Role != ChatMessageRoleSystem {
			out = append(out, msg)
		}
	}
	return out
}
