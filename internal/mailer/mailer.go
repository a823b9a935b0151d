package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends booking-related emails. Sends are best-effort side effects;
// callers log and ignore failures.
type Mailer interface {
	Send(to []string, msg Message) error
}

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
}

// SMTPMailer sends via a plain SMTP server.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTP creates an SMTP-backed mailer. When host is empty a LogMailer is
// returned instead, so development setups work without a mail server.
func NewSMTP(host, port, user, pass, from string) Mailer {
	if host == "" {
		log.Println("Warning: SMTP_HOST not set, emails will be logged instead of sent")
		return LogMailer{}
	}
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) Send(to []string, msg Message) error {
	if len(to) == 0 {
		return nil
	}
	var body strings.Builder
	body.WriteString("From: " + m.from + "\r\n")
	body.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	body.WriteString("Subject: " + msg.Subject + "\r\n")
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	var a smtp.Auth
	if m.user != "" {
		a = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	return smtp.SendMail(addr, a, m.from, to, []byte(body.String()))
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(to []string, msg Message) error {
	log.Printf("mail (not sent) to=%v subject=%q", to, msg.Subject)
	return nil
}
