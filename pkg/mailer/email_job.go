package mailer

import "github.com/oksasatya/go-blog-api/pkg/mailer/templates"

const (
	TemplateWelcome    = templates.Welcome
	TemplateNewComment = templates.NewComment
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or a ready Subject/Text/HTML triple is used.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Build resolves the final subject and bodies for the job.
func (j EmailJob) Build() (subject, text, html string, err error) {
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	return templates.Render(j.Template, j.Data)
}
