package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/todoloop/remind-api/internal/config"
)

// GmailSender implements Sender on top of the Gmail API, authenticating with
// an OAuth refresh token. It is the alternative transport for deployments
// that send from a Google Workspace account instead of Resend.
type GmailSender struct {
	service *gmail.Service
}

// NewGmailSender creates a Sender that delivers through the Gmail API.
// The refresh token must carry the gmail.send scope.
func NewGmailSender(ctx context.Context, cfg config.GmailConfig) (*GmailSender, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("gmail transport requires client_id, client_secret, and refresh_token")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailSender{service: service}, nil
}

// Ensure GmailSender implements the Sender interface
var _ Sender = (*GmailSender)(nil)

// Send implements Sender.Send.
func (s *GmailSender) Send(ctx context.Context, msg Message) (string, error) {
	raw := buildRFC822(msg)

	gmsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	sent, err := s.service.Users.Messages.Send("me", gmsg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail send failed: %w", err)
	}

	return sent.Id, nil
}

// buildRFC822 assembles the wire form of the message for Gmail's raw field.
func buildRFC822(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return b.String()
}
