package mail

import (
	"context"
	"crypto/tls"

	"Newsroom/internal/api/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseSSL
	if !cfg.UseSSL {
		d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{dialer: d, from: from}
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	for k, v := range msg.Headers {
		m.SetHeader(k, v)
	}
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)
	return s.dialer.DialAndSend(m)
}
