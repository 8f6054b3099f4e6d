package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends email. Implementations must honour ctx cancellation where the
// transport allows it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var layout = template.Must(template.New("layout").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<p>Hi {{.Name}},</p>
{{range .Paragraphs}}<p>{{.}}</p>{{end}}
{{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
</body></html>`))

type content struct {
	Name       string
	Paragraphs []string
	Link       string
	LinkText   string
}

func render(c content) (string, error) {
	var buf bytes.Buffer
	if err := layout.Execute(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Welcome builds the signup greeting.
func Welcome(to, name string) (Message, error) {
	html, err := render(content{
		Name:       name,
		Paragraphs: []string{"Your account has been created. You can now browse investments and make your first deposit."},
	})
	return Message{To: to, Subject: "Welcome aboard", HTML: html}, err
}

// PasswordReset builds the reset link email.
func PasswordReset(to, name, link string) (Message, error) {
	html, err := render(content{
		Name: name,
		Paragraphs: []string{
			"We received a request to reset your password.",
			"If you did not ask for this you can ignore this email.",
		},
		Link:     link,
		LinkText: "Reset password",
	})
	return Message{To: to, Subject: "Reset your password", HTML: html}, err
}

// WithdrawalRequested confirms an ROI withdrawal request.
func WithdrawalRequested(to, name, amount string) (Message, error) {
	html, err := render(content{
		Name: name,
		Paragraphs: []string{
			fmt.Sprintf("Your withdrawal request of $%s has been received and is awaiting review.", amount),
			"You will be notified once it has been processed.",
		},
	})
	return Message{To: to, Subject: "Withdrawal request received", HTML: html}, err
}
