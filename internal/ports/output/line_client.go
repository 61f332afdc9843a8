package output

import "talkpro/internal/domain"

// LineClient interface - Output port
// Defines what the application needs from the LINE messaging platform
type LineClient interface {
	// ReplyMessage answers a webhook event through its reply token
	ReplyMessage(request domain.LineReplyMessageRequest) error

	// PushMessage sends messages to a LINE user directly
	PushMessage(request domain.LinePushMessageRequest) error
}
