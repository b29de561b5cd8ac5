package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// SendPasswordResetEmail sends the reset link for the given token. The
// link points at the frontend's reset page, which posts the new password
// back with the token in the URL.
func (s *EmailService) SendPasswordResetEmail(toEmail, token, firstName string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "https://devotionhub.app"
	}
	resetLink := fmt.Sprintf("%s/reset-password/%s", frontendURL, token)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #7a9cc6;
        }
        .button {
            display: inline-block;
            background-color: #7a9cc6;
            color: #ffffff;
            padding: 12px 24px;
            border-radius: 8px;
            text-decoration: none;
            margin: 20px 0;
        }
        .note {
            font-size: 13px;
            color: #777;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Reset your password</h1>
    </div>
    <p>Hi %s,</p>
    <p>We received a request to reset your password. Click the button below to choose a new one.</p>
    <p style="text-align: center;">
        <a class="button" href="%s">Reset password</a>
    </p>
    <p class="note">This link expires in 15 minutes. If you did not request a password reset, you can safely ignore this email.</p>
</body>
</html>
`, firstName, resetLink)

	params := &resend.SendEmailRequest{
		From:    "DevotionHub <noreply@devotionhub.app>",
		To:      []string{toEmail},
		Subject: "Reset your DevotionHub password",
		Html:    htmlBody,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// SendContactNotification forwards a contact-form submission to the
// address in CONTACT_NOTIFY_EMAIL.
func (s *EmailService) SendContactNotification(firstName, lastName, email, message string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	to := os.Getenv("CONTACT_NOTIFY_EMAIL")
	if to == "" {
		return fmt.Errorf("CONTACT_NOTIFY_EMAIL not set")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #7a9cc6;
        }
        .meta {
            background-color: #f5f5f5;
            border-radius: 8px;
            padding: 15px;
            margin: 20px 0;
        }
        .message {
            white-space: pre-wrap;
            padding: 10px 0;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>New contact message</h1>
    </div>
    <div class="meta">
        <p><strong>From:</strong> %s %s</p>
        <p><strong>Email:</strong> %s</p>
    </div>
    <div class="message">%s</div>
</body>
</html>
`, firstName, lastName, email, message)

	params := &resend.SendEmailRequest{
		From:    "DevotionHub <noreply@devotionhub.app>",
		To:      []string{to},
		Subject: fmt.Sprintf("Contact form: %s %s", firstName, lastName),
		Html:    htmlBody,
		ReplyTo: email,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	return nil
}
