package domain

// LineEventType represents the type of webhook event from LINE
type LineEventType string

const (
	LineEventTypeMessage  LineEventType = "message"
	LineEventTypeFollow   LineEventType = "follow"
	LineEventTypeUnfollow LineEventType = "unfollow"
)

// LineMessageType represents the type of a LINE message
type LineMessageType string

const (
	LineMessageTypeText    LineMessageType = "text"
	LineMessageTypeSticker LineMessageType = "sticker"
	LineMessageTypeOther   LineMessageType = "other"
)

// LineWebhookRequest carries the events of one webhook delivery
type LineWebhookRequest struct {
	Events []LineWebhookEvent
}

// LineWebhookEvent is a webhook event reduced to what the chat interviewer needs
type LineWebhookEvent struct {
	Type       LineEventType
	UserID     string
	ReplyToken string
	Message    *LineMessage
}

// LineMessage is an incoming LINE message
type LineMessage struct {
	ID   string
	Type LineMessageType
	Text string
}

// LineOutgoingMessage is a message sent back to a LINE user
type LineOutgoingMessage struct {
	Type      LineMessageType
	Text      string
	PackageID string // For sticker
	StickerID string // For sticker
}

// LineReplyMessageRequest answers a webhook event through its reply token
type LineReplyMessageRequest struct {
	ReplyToken string
	Messages   []LineOutgoingMessage
}

// LinePushMessageRequest sends messages to a user without a reply token
type LinePushMessageRequest struct {
	To       string
	Messages []LineOutgoingMessage
}

// TextMessages wraps each text into an outgoing text message
func TextMessages(texts ...string) []LineOutgoingMessage {
	out := make([]LineOutgoingMessage, 0, len(texts))
	for _, t := range texts {
		out = append(out, LineOutgoingMessage{Type: LineMessageTypeText, Text: t})
	}
	return out
}
