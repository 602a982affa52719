package mailer

import (
	"errors"

	mailtpl "github.com/oksasatya/devcamper-api/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job needs a recipient and either a template or a subject with a body")

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (rendered with Data) or Subject plus Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "forgot_password"
	Data     map[string]any `json:"data,omitempty"`
}

// Validate rejects jobs that could never be delivered.
func (j EmailJob) Validate() error {
	if j.To == "" {
		return ErrEmptyJob
	}
	if j.Template == "" && (j.Subject == "" || (j.Text == "" && j.HTML == "")) {
		return ErrEmptyJob
	}
	return nil
}

// Render resolves the job into subject, text and html bodies.
func (j EmailJob) Render() (subject, text, html string, err error) {
	if err := j.Validate(); err != nil {
		return "", "", "", err
	}
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	return mailtpl.Render(j.Template, j.Data)
}
