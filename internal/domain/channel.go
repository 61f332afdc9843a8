package domain

// ChannelMessageType discriminates client frames of a live interview channel
type ChannelMessageType string

const (
	// ChannelMessage carries one candidate turn
	ChannelMessage ChannelMessageType = "message"
	// ChannelEnd asks for evaluation and closes the channel
	ChannelEnd ChannelMessageType = "end"
)

// ChannelEventType discriminates server frames of a live interview channel
type ChannelEventType string

const (
	EventMessageStart    ChannelEventType = "message_start"
	EventMessageChunk    ChannelEventType = "message_chunk"
	EventMessageComplete ChannelEventType = "message_complete"
	EventEvaluating      ChannelEventType = "evaluating"
	EventSessionComplete ChannelEventType = "session_complete"
	EventError           ChannelEventType = "error"
)

// ChunkWidth is the fragment width, in characters, used to re-send workplace replies
const ChunkWidth = 50

// ClientFrame is a frame received from the client
type ClientFrame struct {
	Type    ChannelMessageType `json:"type"`
	Content string             `json:"content"`
	Code    string             `json:"code,omitempty"`
}

// ServerFrame is a frame sent to the client
type ServerFrame struct {
	Type       ChannelEventType  `json:"type"`
	Content    string            `json:"content,omitempty"`
	Role       string            `json:"role,omitempty"`
	Completed  *bool             `json:"completed,omitempty"`
	Stage      Stage             `json:"stage,omitempty"`
	Evaluation *EvaluationReport `json:"evaluation,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// EmitFunc sends one frame to the client
type EmitFunc func(frame ServerFrame) error

// SplitRunes cuts text into pieces of at most width characters
func SplitRunes(text string, width int) []string {
	if width <= 0 || text == "" {
		return nil
	}
	runes := []rune(text)
	pieces := make([]string, 0, len(runes)/width+1)
	for start := 0; start < len(runes); start += width {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}
