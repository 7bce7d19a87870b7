package mailer

import (
	"context"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/BruksfildServices01/barber-booking/internal/errs"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ======================================================
// RESEND
// ======================================================

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return errs.Wrapf(err, "resend send to %s", msg.To)
	}
	return nil
}

// ======================================================
// LOG (modo demo / sem API key)
// ======================================================

type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("email (not sent)", "to", msg.To, "subject", msg.Subject)
	return nil
}

var (
	_ Sender = (*ResendSender)(nil)
	_ Sender = LogSender{}
)
