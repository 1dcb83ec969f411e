package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type leadNotificationData struct {
	OwnerName string
	LeadName  string
	LeadEmail string
	Service   string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "no-reply@tradestack.app",
	}
}

// SendLeadNotification tells the business owner a new lead came in through
// their public site.
func (s *EmailSender) SendLeadNotification(to, ownerName, leadName, leadEmail, service string) error {
	data := leadNotificationData{
		OwnerName: ownerName,
		LeadName:  leadName,
		LeadEmail: leadEmail,
		Service:   service,
	}

	tmplPath := filepath.Join("templates", "lead_notification.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to load email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", leadName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
