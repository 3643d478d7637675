package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"os"
)

// ContactNotification is the flattened contact submission the owner is
// emailed about.
type ContactNotification struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type Mailer interface {
	SendContactNotification(n ContactNotification) error
}

// SMTPMailer sends through a plain-auth SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	to   string
}

func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	m := &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		to:   os.Getenv("CONTACT_EMAIL"),
	}
	if m.host == "" {
		m.host = "smtp.gmail.com"
	}
	if m.port == "" {
		m.port = "587"
	}
	if m.user == "" || m.pass == "" {
		return nil, errors.New("SMTP_USER and SMTP_PASS are not set")
	}
	if m.to == "" {
		m.to = m.user
	}
	return m, nil
}

func (m *SMTPMailer) SendContactNotification(n ContactNotification) error {
	subject := fmt.Sprintf("Portfolio contact: %s", n.Name)
	if n.Subject != "" {
		subject = fmt.Sprintf("Portfolio contact: %s - %s", n.Name, n.Subject)
	}

	body := fmt.Sprintf(
		"New contact form submission:\n\nName: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		n.Name, n.Email, n.Phone, n.Message,
	)

	msg := []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.user + "\r\n" +
		"Reply-To: " + n.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{m.to}, msg)
}
