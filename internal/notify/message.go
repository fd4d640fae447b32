// Package notify delivers operator notifications over email and Telegram.
package notify

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/livinglux/coliving-site/internal/public/domain"
)

// ErrNotConfigured is returned by a channel that lacks credentials.
var ErrNotConfigured = errors.New("notification channel is not configured")

// Message is one notification, rendered for every channel.
type Message struct {
	Subject string
	// ReplyTo is the applicant's address, if known.
	ReplyTo string
	HTML    string
	Text    string
}

// ApplicationMail is the payload accepted by the mail endpoint.
type ApplicationMail struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Profession   string `json:"profession"`
	MoveInDate   string `json:"moveInDate"`
	PropertyName string `json:"propertyName"`
	RoomName     string `json:"roomName"`
	Message      string `json:"message"`
}

// Valid reports whether the mandatory fields are present.
func (m ApplicationMail) Valid() bool {
	return strings.TrimSpace(m.FullName) != "" && strings.TrimSpace(m.Email) != ""
}

// BuildApplicationMessage renders the operator mail for an application.
// Every value is HTML-escaped and message newlines become <br/>.
func BuildApplicationMessage(m ApplicationMail) Message {
	subject := fmt.Sprintf("New application from %s for %s - %s", m.FullName, m.PropertyName, m.RoomName)

	rows := []struct{ label, value string }{
		{"Name", m.FullName},
		{"Email", m.Email},
		{"Phone", m.Phone},
		{"Profession", m.Profession},
		{"Move-in date", m.MoveInDate},
		{"Property", m.PropertyName},
		{"Room", m.RoomName},
	}

	var body, text strings.Builder
	body.WriteString("<h2>New room application</h2>\n")
	for _, row := range rows {
		fmt.Fprintf(&body, "<p><strong>%s:</strong> %s</p>\n", row.label, html.EscapeString(row.value))
		fmt.Fprintf(&text, "%s: %s\n", row.label, row.value)
	}
	if msg := strings.TrimSpace(m.Message); msg != "" {
		escaped := strings.ReplaceAll(html.EscapeString(msg), "\r\n", "\n")
		fmt.Fprintf(&body, "<p><strong>Message:</strong><br/>%s</p>\n", strings.ReplaceAll(escaped, "\n", "<br/>"))
		fmt.Fprintf(&text, "\n%s\n", msg)
	}

	return Message{Subject: subject, ReplyTo: strings.TrimSpace(m.Email), HTML: body.String(), Text: text.String()}
}

// MailFromApplication maps a stored application onto the mail payload.
func MailFromApplication(app domain.Application) ApplicationMail {
	profession := app.Occupation
	if app.Employer != "" {
		profession = fmt.Sprintf("%s at %s (%s)", app.Occupation, app.Employer, app.ContractType)
	}

	message := app.Message
	details := fmt.Sprintf("Duration: %s\nGross salary: %s\nNet salary: %s", app.Duration, app.GrossSalary, app.NetSalary)
	if message != "" {
		message = details + "\n\n" + message
	} else {
		message = details
	}

	return ApplicationMail{
		FullName:     app.FullName,
		Email:        app.Email.String(),
		Phone:        app.Phone,
		Profession:   profession,
		MoveInDate:   app.MoveInDate,
		PropertyName: app.PropertyName,
		RoomName:     app.RoomName,
		Message:      message,
	}
}
