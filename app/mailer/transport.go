package mailer

import (
	"context"
)

// Message is a single outbound email.
type Message struct {
	From     string
	FromName string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Transport delivers a single message. A successful send may return a
// preview link: an inspectable reference to the delivered message, when
// the transport exposes one. Real SMTP delivery returns an empty link.
type Transport interface {
	Send(ctx context.Context, msg Message) (previewLink string, err error)
}

// TransportFactory acquires a transient outbound channel. The campaign
// dispatcher calls it once per send run, so sandbox transports are
// disposable per campaign.
type TransportFactory func() (Transport, error)
