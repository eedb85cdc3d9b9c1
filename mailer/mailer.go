package mailer

import "fmt"

// Mailer delivers transactional email. Implementations are fire and
// forget: delivery failures are logged, never surfaced to the caller.
type Mailer interface {
	SendVerificationCode(email, fullName, code string)
	SendPasswordReset(email, fullName, code string)
}

func verificationSubject() string {
	return "Grammar Master: Your One-Time Password (OTP)"
}

func verificationBody(fullName, code string) string {
	return fmt.Sprintf(`
		<h2>Email Verification</h2>
		<p>Hello %s,</p>
		<p>Thank you for registering. Please use the following OTP to verify your email address:</p>
		<h1 style="color: #7E6EF9;">%s</h1>
		<p>This code will expire in 10 minutes.</p>
		<p>If you did not request this, please ignore this email.</p>
	`, fullName, code)
}

func resetSubject() string {
	return "Grammar Master: Password Reset Code"
}

func resetBody(fullName, code string) string {
	return fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Hello %s,</p>
		<p>Use the following code to reset your password:</p>
		<h1 style="color: #7E6EF9;">%s</h1>
		<p>This code will expire in 10 minutes.</p>
		<p>If you did not request this, please ignore this email.</p>
	`, fullName, code)
}
