package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/m-mizutani/goerr/v2"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// mailNotifier delivers poll results over plain SMTP
type mailNotifier struct {
	addr string
	from string
}

// NewMail creates an SMTP-backed Notifier
func NewMail(host, port, from string) (Notifier, error) {
	if host == "" || port == "" {
		return nil, goerr.New("SMTP host and port are required")
	}
	if from == "" {
		from = "no-reply@tzquorum.local"
	}

	return &mailNotifier{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}, nil
}

func (n *mailNotifier) Notify(ctx context.Context, recipients []model.Recipient, overlap *model.OverlapResult, suggestion *model.Suggestion, meetingType types.MeetingType) []Result {
	return fanOut(ctx, recipients, func(ctx context.Context, recipient model.Recipient) error {
		subject := buildSubject(overlap)
		body := buildBody(recipient, overlap, suggestion, meetingType)
		msg := buildMessage(n.from, recipient.Email, subject, body)

		if err := smtp.SendMail(n.addr, nil, n.from, []string{recipient.Email}, []byte(msg)); err != nil {
			return goerr.Wrap(err, "failed to send mail", goerr.V("to", recipient.Email))
		}
		return nil
	})
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message, enough for most SMTP relays
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
