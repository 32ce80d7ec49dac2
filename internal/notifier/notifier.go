package notifier

import (
	"context"
	"fmt"
)

// Notifier delivers a message to a user's messaging-account identifier.
// Implementations must honor the context deadline.
type Notifier interface {
	Send(ctx context.Context, chatID string, text string) error
}

// DeliveryError wraps a transient delivery failure (timeout, transport error,
// non-success status). The sweep logs it and moves on; it never blocks
// schedule advancement.
type DeliveryError struct {
	ChatID string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to chat %s: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
