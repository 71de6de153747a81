package mailer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// SandboxTransport is a disposable in-process relay standing in for a real
// mail credential. Every message is accepted, retained, and assigned an
// inspectable preview link, the way a sandboxed SMTP test account would.
// Create one fresh per send run.
type SandboxTransport struct {
	accountID string

	mu       sync.Mutex
	messages []Message
}

func NewSandboxTransport() (*SandboxTransport, error) {
	accountID, err := randomID()
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox account: %w", err)
	}
	return &SandboxTransport{accountID: accountID}, nil
}

func (t *SandboxTransport) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID, err := randomID()
	if err != nil {
		return "", fmt.Errorf("failed to assign message id: %w", err)
	}

	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()

	return fmt.Sprintf("https://sandbox.geek.news/%s/message/%s", t.accountID, messageID), nil
}

// Messages returns a copy of everything delivered through this sandbox.
func (t *SandboxTransport) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func randomID() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
