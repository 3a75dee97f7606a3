package mail

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/you/go-hotel-rates/internal/config"
)

// Sender delivers HTML mail over authenticated SMTP with STARTTLS. A send
// failure is terminal for the report run; there is no fallback channel.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

func NewSender(cfg config.Mail, log zerolog.Logger) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log.With().Str("component", "mail").Logger(),
	}
}

func (s *Sender) Send(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail delivery failed: %w", err)
	}
	s.log.Info().Strs("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}
