package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSubmissionReceipt(toEmail, correlationId, submitterKind string, files []string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendSubmissionReceipt(toEmail, correlationId, submitterKind string, files []string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Radicación recibida: "+correlationId)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Orden de compra radicada</h2>
			<p>Su radicación fue recibida y enviada a procesamiento.</p>
			<p>Número de radicado: <b>%s</b></p>
			<p>Tipo de usuario: %s</p>
			<p>Archivos: %s</p>
			<p>Conserve el número de radicado para cualquier consulta posterior.</p>
		</div>
	`, correlationId, submitterKind, strings.Join(files, ", "))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send receipt email: %w", err)
	}
	return nil
}
