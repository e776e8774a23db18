package mailer

import (
	"fmt"
	"mime"
	"net/smtp"
	"time"

	"github.com/shivraj416/egram/config"
	"github.com/shivraj416/egram/pkg/logger"
)

// Mailer delivers contact-form notifications to the site administrator over
// SMTP. Callers treat delivery as fire-and-forget; a failure is logged and
// never blocks a mutation.
type Mailer struct {
	cfg  config.SMTP
	auth smtp.Auth
}

// New returns nil when SMTP is not configured, which disables notifications.
func New(cfg config.SMTP) *Mailer {
	if cfg.Host == "" || cfg.Recipient == "" {
		logger.Sugar.Info("SMTP not configured, contact notifications disabled")
		return nil
	}
	return &Mailer{
		cfg:  cfg,
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

func (m *Mailer) Send(subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	msg := m.buildMessage(subject, body)
	if err := smtp.SendMail(addr, m.auth, m.cfg.Username, []string{m.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (m *Mailer) buildMessage(subject, body string) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	encodedSender := mime.QEncoding.Encode("utf-8", m.cfg.Sender)
	date := time.Now().Format(time.RFC1123Z)

	return fmt.Appendf(nil,
		"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		date, m.cfg.Recipient, encodedSender, m.cfg.Username, encodedSubject, body,
	)
}
