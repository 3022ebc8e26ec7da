package mail

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/dpamis/procurement-api/pkg/config"
)

// Sender delivers account lifecycle mail over SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	otpTTL time.Duration
}

// NewSender builds the SMTP sender from config. otpTTL is the activation code
// validity window rendered in the activation mail.
func NewSender(cfg config.SMTPConfig, otpTTL time.Duration) *Sender {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
		otpTTL: otpTTL,
	}
}

// SendActivation mails the activation code together with the magic link.
func (s *Sender) SendActivation(to, code, link string) error {
	return s.send(to, "Your account has been approved", activationBody(code, link, s.otpTTL))
}

func activationBody(code, link string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Your account has been approved.\n\n"+
			"Your activation code is: %s\n"+
			"It expires in %d minutes.\n\n"+
			"You can also activate directly by opening this link:\n%s\n",
		code, int(ttl.Minutes()), link,
	)
}

// SendRejection mails the rejection notice.
func (s *Sender) SendRejection(to string) error {
	body := "We are sorry: your registration was not approved.\n" +
		"Please contact the HQ procurement team for details.\n"
	return s.send(to, "Your registration was rejected", body)
}

func (s *Sender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
