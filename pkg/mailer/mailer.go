// Package mailer delivers transactional email over SMTP. Delivery
// failures are reported to the caller, which decides whether they are
// fatal (registration treats them as best-effort).
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"game-review/pkg/utils"
)

// Mailer is the outbound mail collaborator consumed by the auth service.
type Mailer interface {
	SendValidationCode(to, firstName, code string) error
}

// SMTPMailer implements Mailer over plain SMTP.
type SMTPMailer struct {
	cfg       utils.EmailConfig
	templates *template.Template
}

func New(cfg utils.EmailConfig) (*SMTPMailer, error) {
	tmpl, err := template.New("emails").Parse(emailTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	return &SMTPMailer{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

// SendValidationCode sends the account activation code emailed at registration.
func (m *SMTPMailer) SendValidationCode(to, firstName, code string) error {
	data := ValidationData{
		FirstName:      firstName,
		ValidationCode: code,
		AppName:        m.cfg.FromName,
	}

	body, err := m.renderTemplate("validation-email", data)
	if err != nil {
		return fmt.Errorf("render validation template: %w", err)
	}

	return m.send(to, "Validate your account", body)
}

func (m *SMTPMailer) renderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *SMTPMailer) send(to, subject, body string) error {
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	// Local debug relays (mailhog etc.) run without auth
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}
