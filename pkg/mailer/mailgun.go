package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends rendered jobs through the Mailgun API.
type Mailgun struct {
	client *mg.MailgunImpl
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), Sender: sender}
}

// Send renders the job and delivers it. html may be empty.
func (m *Mailgun) Send(ctx context.Context, job EmailJob) error {
	subject, text, html, err := job.Build()
	if err != nil {
		return err
	}
	msg := m.client.NewMessage(m.Sender, subject, text, job.To)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err = m.client.Send(c, msg)
	return err
}
