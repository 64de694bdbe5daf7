package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gentlemens13/booking-api/pkg/config"
)

// Message is a plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Sender delivers email messages.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers mail over plain SMTP without authentication,
// suitable for a local relay or test inbox.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender builds a sender from SMTP config.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
	}
}

// Send delivers the message to all recipients.
func (s *SMTPSender) Send(msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(s.addr, nil, s.from, msg.To, []byte(b.String())); err != nil {
		return fmt.Errorf("mailer: send via %s: %w", s.addr, err)
	}
	return nil
}
