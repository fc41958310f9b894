package mail

import (
	"context"
	"log"

	"gopkg.in/gomail.v2"

	"workersdeck/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(_ context.Context, m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)
	return s.dialer.DialAndSend(msg)
}

// LogSender writes messages to the log instead of sending them. Used when no
// SMTP host is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	log.Printf("[mail] DEVELOPER MODE to=%s subject=%q\n%s", m.To, m.Subject, m.HTML)
	return nil
}

// New picks the SMTP sender when a host is configured.
func New(cfg config.SMTP) Sender {
	if cfg.Host == "" {
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}
