package mail

import (
	"context"
	"fmt"
	"log"

	"agendia/studio-server/internal/config"

	"github.com/resend/resend-go/v2"
)

// Mailer defines the interface for sending transactional email.
type Mailer interface {
	// SendPasswordReset emails the recovery link carrying the reset token.
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// resendMailer implements the Mailer interface using the Resend API.
type resendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a new Mailer backed by Resend.
func NewResendMailer(cfg config.MailConfig) Mailer {
	return &resendMailer{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
	}
}

// SendPasswordReset sends the password recovery email.
func (m *resendMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Recupera tu contraseña de Agendia",
		Html: fmt.Sprintf(
			`<p>Recibimos un pedido para restablecer tu contraseña.</p>`+
				`<p><a href="%s">Restablecer contraseña</a></p>`+
				`<p>Si no fuiste vos, ignorá este correo.</p>`,
			resetLink),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("ERROR: Failed to send password reset email to %s: %v", to, err)
		return err
	}
	log.Printf("Password reset email sent to %s (message %s)", to, sent.Id)
	return nil
}
