package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendResetCodeEmail mails a password-reset code to a hospital account.
func SendResetCodeEmail(email, code string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "CluCare Password Reset Code")

	m.SetBody("text/plain", "Your password reset code is: "+code)
	m.AddAlternative("text/html", `
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 20px auto; padding: 20px;">
		<h1>Password Reset Code</h1>
		<p>Your CluCare password reset code is:</p>
		<p style="font-weight: bold; color: #007bff;">`+code+`</p>
		<p>The code expires in 15 minutes. If you did not request a reset, ignore this email.</p>
	</div>`)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}
