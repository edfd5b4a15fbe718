package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/mynt/inventory-tracker/internal/application/inventory"
)

var _ inventory.AlertSink = (*SMTPSink)(nil)

// SMTPSink despacha notificaciones por SMTP. Implementa inventory.AlertSink;
// éxito/fallo del envío es todo lo que ve el guard de alertas.
type SMTPSink struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSink construye el sink.
func NewSMTPSink(host string, port int, user, password, from string) *SMTPSink {
	return &SMTPSink{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send envía un mail de texto plano al destinatario. Respeta la cancelación
// del contexto antes de marcar: gomail no es cancelable en vuelo.
func (s *SMTPSink) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar mail a %s: %w", to, err)
	}
	return nil
}
