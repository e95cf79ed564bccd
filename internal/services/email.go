package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"mangaart/internal/config"
	"mangaart/internal/domain"
)

var inquiryEmailHTML = template.Must(template.New("inquiry").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Inquiry</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #7C3AED;">New Inquiry</h2>

        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> {{.Name}}</p>
            <p><strong>Phone:</strong> {{.Phone}}</p>
            <p><strong>Country / timezone:</strong> {{.Country}}</p>
            <p><strong>Submitted:</strong> {{.Submitted}}</p>
        </div>

        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #7C3AED; border-radius: 4px; margin: 20px 0;">
            <h3 style="color: #0D1A2D; margin-top: 0;">Message:</h3>
            <p style="white-space: pre-wrap;">{{.Message}}</p>
        </div>

        <p style="color: #64748B; font-size: 14px;">Inquiry ID: #{{.InquiryID}}</p>
    </div>
</body>
</html>`))

const submittedLayout = "January 2, 2006 at 3:04 PM MST"

// EmailService relays inquiries over SMTP
type EmailService struct {
	cfg       *config.EmailConfig
	recipient string
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig, recipient string) *EmailService {
	return &EmailService{cfg: cfg, recipient: recipient, send: smtp.SendMail}
}

// Notify sends the inquiry to the configured recipient
func (s *EmailService) Notify(ctx context.Context, n domain.Notification) error {
	subject := fmt.Sprintf("New inquiry from %s", n.Name)

	htmlBody, err := renderInquiryHTML(n)
	if err != nil {
		return err
	}
	textBody := fmt.Sprintf(`New Inquiry

Name: %s
Phone: %s
Country / timezone: %s
Submitted: %s

Message:
%s

Inquiry ID: #%d`, n.Name, n.Phone, n.Country, n.CreatedAt.Format(submittedLayout), n.Message, n.InquiryID)

	return s.SendHTMLEmail(ctx, s.recipient, subject, htmlBody, textBody)
}

// Provider returns "smtp"
func (s *EmailService) Provider() string {
	return config.ProviderSMTP
}

func renderInquiryHTML(n domain.Notification) (string, error) {
	var buf bytes.Buffer
	err := inquiryEmailHTML.Execute(&buf, struct {
		domain.Notification
		Submitted string
	}{n, n.CreatedAt.Format(submittedLayout)})
	if err != nil {
		return "", fmt.Errorf("failed to render inquiry email: %w", err)
	}
	return buf.String(), nil
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	message := s.buildMessage(to, subject, htmlBody, textBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	done := make(chan error, 1)
	go func() {
		done <- s.send(addr, auth, s.cfg.FromEmail, []string{to}, message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send email: %w", ctx.Err())
	}
}

// buildMessage assembles a multipart/alternative message
func (s *EmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.cfg.FromName), s.cfg.FromEmail)
	}

	boundary := "part-" + uuid.NewString()
	domainPart := s.cfg.FromEmail[strings.LastIndex(s.cfg.FromEmail, "@")+1:]

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", uuid.NewString(), domainPart)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(textBody + "\r\n")

	if htmlBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(htmlBody + "\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
