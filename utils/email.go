package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
)

// EmailService handles sending emails using Postmark
type EmailService struct {
	client *postmark.Client
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		panic("POSTMARK_API_TOKEN is not set in environment variables")
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOtpEmail sends a one-time verification code to the user. The code
// is only ever sent here; the database keeps a hash.
func (es *EmailService) SendOtpEmail(toEmail, code string) error {
	subject := "Your Verification Code"
	htmlContent := fmt.Sprintf(
		"<strong>Your verification code is %s.</strong><br>It expires in 10 minutes and can be used once.",
		code,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderConfirmationEmail sends an order confirmation to the buyer
func (es *EmailService) SendOrderConfirmationEmail(toEmail, name string, orderID string, totalPrice float64) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>Total Amount: <strong>$%.2f</strong><br><br>Thank you for shopping with us!",
		name,
		orderID,
		totalPrice,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
