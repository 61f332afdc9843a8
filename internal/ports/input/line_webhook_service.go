package input

import (
	"context"

	"talkpro/internal/domain"
)

// LineWebhookService interface - Input port (use case)
// Runs interviews over LINE chat
type LineWebhookService interface {
	// HandleWebhook processes incoming webhook events from LINE
	HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error
}
