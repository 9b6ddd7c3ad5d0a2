// Package mail envía las notificaciones por correo (SMTP vía gomail).
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/assecol/seguros-api/pkg/config"
)

// Sender abstrae el envío de un mensaje ya armado (gomail.Dialer en producción).
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier implementa recordatorios.Notifier.
type SMTPNotifier struct {
	sender Sender
	from   string
}

// NewSMTPNotifier construye el notificador a partir de la configuración SMTP.
// Si no se define remitente se usa el usuario SMTP.
func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return NewSMTPNotifierWithSender(d, from)
}

// NewSMTPNotifierWithSender permite inyectar el sender (tests).
func NewSMTPNotifierWithSender(sender Sender, from string) *SMTPNotifier {
	return &SMTPNotifier{sender: sender, from: from}
}

// Enviar arma el mensaje HTML y lo despacha.
func (n *SMTPNotifier) Enviar(ctx context.Context, para, asunto, cuerpoHTML string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if para == "" {
		return fmt.Errorf("mail: destinatario vacío")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", para)
	m.SetHeader("Subject", asunto)
	m.SetBody("text/html", cuerpoHTML)
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", para, err)
	}
	return nil
}
