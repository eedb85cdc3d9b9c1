package mailer

import (
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridMailer struct {
	key  string
	from *sgmail.Email
}

// NewSendgridMailer returns a Mailer that delivers through the Sendgrid
// v3 API. Messages are sent asynchronously.
func NewSendgridMailer(apiKey, fromName, fromEmail string) Mailer {
	return &sendgridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

func (m *sendgridMailer) SendVerificationCode(email, fullName, code string) {
	go m.send(email, fullName, verificationSubject(), verificationBody(fullName, code))
}

func (m *sendgridMailer) SendPasswordReset(email, fullName, code string) {
	go m.send(email, fullName, resetSubject(), resetBody(fullName, code))
}

func (m *sendgridMailer) send(email, name, subject, htmlBody string) {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(name, email))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/html", htmlBody))

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.API(req)
	if err != nil {
		log.Printf("mailer: sending email to %s: %v", email, err)
	} else if res.StatusCode >= http.StatusBadRequest {
		log.Printf("mailer: sending email to %s - status: %d - body: %s", email, res.StatusCode, res.Body)
	}
}
