// Package email provides the outbound message transports and the HTML
// renderer for reminder notifications. The dispatcher depends only on the
// Sender interface; concrete transports (Resend, Gmail) live here.
package email

import (
	"context"
)

// Message is a single outbound email, already rendered.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a single message through an external transport.
// Implementations must be safe for concurrent use: the dispatcher issues all
// sends of a batch at once.
type Sender interface {
	// Send delivers the message and returns the transport's message ID.
	// Transport failures are returned as errors; callers decide whether a
	// failure is fatal or recorded per recipient.
	Send(ctx context.Context, msg Message) (string, error)
}
