// Package mailer delivers sign-in links. LogMailer writes them to the
// server log; S3Outbox drops each message as a JSON object into a bucket
// that a separate delivery worker drains.
package mailer

import (
	"context"

	"github.com/dmitrijs2005/joinflow/internal/logging"
)

// Message is a single outgoing email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Link    string `json:"link,omitempty"`
}

// Mailer sends a Message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of sending them.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	if log == nil {
		log = logging.Nop()
	}
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info(ctx, "mail", "to", msg.To, "subject", msg.Subject, "link", msg.Link)
	return nil
}

// SigninLinkMessage builds the message carrying a sign-in link.
func SigninLinkMessage(to, name, link string) Message {
	greeting := "Hi,"
	if name != "" {
		greeting = "Hi " + name + ","
	}
	return Message{
		To:      to,
		Subject: "Your sign-in link",
		Body:    greeting + "\n\nUse the link below to sign in:\n\n" + link + "\n",
		Link:    link,
	}
}
