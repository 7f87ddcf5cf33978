package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig - параметры SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider отправляет письма через SMTP (gomail)
type SMTPProvider struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

// Validate проверяет конфигурацию SMTP
func (c SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.Port)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := p.buildMessage(email)
	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()
	from := p.config.FromEmail
	if p.config.FromName != "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}
	return m
}
