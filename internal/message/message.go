// Package message renders the outreach templates and resolves the sender
// identity mail goes out under.
package message

import (
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"ContactOutreach/internal/config"
)

// params feeds both the email body and the SMS body templates.
type params struct {
	FirstName          string
	OrganizerFirstName string
}

const emailSubject = "Great meeting you today!"

var emailBodyTmpl = template.Must(template.New("emailBody").Parse(`
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <p>Hey there,</p>

    <p>It was great meeting you today - we're really looking forward to being a part of the neighborhood!</p>

    <p>We started Bulqit to make it easier for homeowners to get reliable outdoor care - the same trusted local vendors, but with less time, hassle, and cost. We are very excited for it, and glad you are too!</p>

    <p>If that sounds helpful, you can learn more or sign up here: <a href="https://bulqit.com" style="color: #0066cc;">bulqit.com</a></p>

    <p>Best,<br>
    {{.OrganizerFirstName}}</p>
</body>
</html>
`))

var smsBodyTmpl = texttemplate.Must(texttemplate.New("smsBody").Parse(
	"Hey there, we just dropped off some material about grouping our neighbors together to lower home services. " +
		"If you can register, it takes 30 seconds and there's no charge or commitment until after we get bids. " +
		"Thanks for supporting the neighborhood. Here's the link, www.bulqit.com. -{{.OrganizerFirstName}}"))

// EmailSubject returns the subject line for a recipient.
func EmailSubject(firstName string) string {
	return emailSubject
}

// EmailBody renders the HTML email body for a recipient and organizer.
func EmailBody(firstName, organizerFirstName string) (string, error) {
	var b strings.Builder
	err := emailBodyTmpl.Execute(&b, params{FirstName: firstName, OrganizerFirstName: organizerFirstName})
	if err != nil {
		return "", fmt.Errorf("render email body: %w", err)
	}
	return b.String(), nil
}

// SMSBody renders the text message body for a recipient and organizer.
func SMSBody(firstName, organizerFirstName string) (string, error) {
	var b strings.Builder
	err := smsBodyTmpl.Execute(&b, params{FirstName: firstName, OrganizerFirstName: organizerFirstName})
	if err != nil {
		return "", fmt.Errorf("render sms body: %w", err)
	}
	return b.String(), nil
}

// ResolveSender maps an organizer first name to the identity to send as.
// Unmapped organizers send under their own first name from the default
// address.
func ResolveSender(cfg config.EmailConfig, organizerFirstName string) config.SenderIdentity {
	if identity, ok := cfg.Senders[organizerFirstName]; ok {
		return identity
	}
	return config.SenderIdentity{
		Name:  organizerFirstName,
		Email: cfg.DefaultFromEmail,
	}
}
