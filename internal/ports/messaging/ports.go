package messaging

import (
	"context"
)

// QueueProducer defines the output port for publishing domain events.
type QueueProducer interface {
	PublishPayroll(ctx context.Context, body interface{}) error
	PublishEmail(ctx context.Context, body interface{}) error
}

// MessageSender defines the interface for sending raw messages to a messaging system.
type MessageSender interface {
	SendMessage(ctx context.Context, destination string, body []byte) error
}
