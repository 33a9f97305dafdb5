package lib

import (
	"log"

	"github.com/wneessen/go-mail"
)

// Mailer sends transactional mail. A nil *Mailer is valid and drops
// everything, so callers need no configuration checks.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}
	c, err := mail.NewClient(
		m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return err
	}
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
		return err
	}
	if err := msg.To(to); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return c.DialAndSend(msg)
}
