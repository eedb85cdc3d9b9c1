package mailer

import "log"

type consoleMailer struct{}

// NewConsoleMailer returns a Mailer that only logs. Used in development
// when no Sendgrid key is configured.
func NewConsoleMailer() Mailer {
	return consoleMailer{}
}

func (consoleMailer) SendVerificationCode(email, fullName, code string) {
	log.Printf("mailer: verification code for %s <%s>: %s", fullName, email, code)
}

func (consoleMailer) SendPasswordReset(email, fullName, code string) {
	log.Printf("mailer: password reset code for %s <%s>: %s", fullName, email, code)
}
