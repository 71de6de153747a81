package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig holds connection settings for a real SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	StartTLS bool
}

// SMTPTransport delivers messages over SMTP. It yields no preview links.
type SMTPTransport struct {
	config      SMTPConfig
	dialTimeout time.Duration
}

func NewSMTPTransport(config SMTPConfig) *SMTPTransport {
	return &SMTPTransport{
		config:      config,
		dialTimeout: 30 * time.Second,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) (string, error) {
	addr := fmt.Sprintf("%s:%d", t.config.Host, t.config.Port)

	dialer := &net.Dialer{Timeout: t.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return "", fmt.Errorf("failed to set connection deadline: %w", err)
		}
	}

	client, err := smtp.NewClient(conn, t.config.Host)
	if err != nil {
		return "", fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if t.config.StartTLS {
		tlsConfig := &tls.Config{
			ServerName: t.config.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return "", fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if t.config.User != "" && t.config.Password != "" {
		authn := smtp.PlainAuth("", t.config.User, t.config.Password, t.config.Host)
		if err := client.Auth(authn); err != nil {
			return "", fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return "", fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return "", fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return "", fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := writer.Write([]byte(BuildMIME(msg))); err != nil {
		return "", fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close message: %w", err)
	}

	// Quit failures after a completed DATA are ignored; the message is out
	_ = client.Quit()

	return "", nil
}

// BuildMIME renders the message with headers, as multipart/alternative
// when both text and HTML bodies are present.
func BuildMIME(msg Message) string {
	var b strings.Builder

	fromName := msg.FromName
	if fromName == "" {
		fromName = "Newsletter"
	}

	// Header values must stay single-line; a stray CR or LF in a subject
	// would otherwise inject extra headers
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", headerValue(fromName), headerValue(msg.From)))
	b.WriteString(fmt.Sprintf("To: %s\r\n", headerValue(msg.To)))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", headerValue(msg.Subject)))
	b.WriteString("MIME-Version: 1.0\r\n")

	hasHTML := msg.HTMLBody != ""
	hasText := msg.TextBody != ""

	switch {
	case hasHTML && hasText:
		boundary := fmt.Sprintf("boundary_%d", time.Now().UnixNano())
		b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
		b.WriteString("\r\n")

		b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.TextBody)
		b.WriteString("\r\n")

		b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.HTMLBody)
		b.WriteString("\r\n")

		b.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	case hasHTML:
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.HTMLBody)
	default:
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.TextBody)
	}

	return b.String()
}

func headerValue(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
