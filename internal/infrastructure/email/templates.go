package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateKind names one of the fixed outbound email templates.
type TemplateKind string

const (
	TemplateOTP                    TemplateKind = "otp"
	TemplateRegistrationConfirmed  TemplateKind = "registration_confirmed"
	TemplateApplicationReceived    TemplateKind = "application_received"
	TemplateEnrollmentConfirmed    TemplateKind = "enrollment_confirmed"
	TemplateVolunteerReceived      TemplateKind = "volunteer_received"
	TemplateMessageReply           TemplateKind = "message_reply"
)

// OTPData fills the verification-code template.
type OTPData struct {
	Code       string
	TTLMinutes int
}

// ConfirmationData fills the submission confirmation templates.
type ConfirmationData struct {
	Name  string
	Title string // event title, opportunity title or course batch
}

// ReplyData fills the contact-message reply template.
type ReplyData struct {
	Name  string
	Reply string
}

type emailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[TemplateKind]emailTemplate{
	TemplateOTP: {
		subject: "Your verification code",
		body: mustParse("otp", `<p>Your verification code is <strong>{{.Code}}</strong>.</p>
<p>It expires in {{.TTLMinutes}} minutes. If you did not request it, you can ignore this email.</p>`),
	},
	TemplateRegistrationConfirmed: {
		subject: "Registration confirmed",
		body: mustParse("registration_confirmed", `<p>Dear {{.Name}},</p>
<p>Your registration for <strong>{{.Title}}</strong> is confirmed. We look forward to meditating with you.</p>`),
	},
	TemplateApplicationReceived: {
		subject: "We received your teacher application",
		body: mustParse("application_received", `<p>Dear {{.Name}},</p>
<p>Thank you for applying to the teacher training program. Our team will review your application and reach out.</p>`),
	},
	TemplateEnrollmentConfirmed: {
		subject: "Enrollment confirmed",
		body: mustParse("enrollment_confirmed", `<p>Dear {{.Name}},</p>
<p>You are enrolled in <strong>{{.Title}}</strong>. Course details will follow by email.</p>`),
	},
	TemplateVolunteerReceived: {
		subject: "We received your volunteer application",
		body: mustParse("volunteer_received", `<p>Dear {{.Name}},</p>
<p>Thank you for offering to volunteer for <strong>{{.Title}}</strong>. We will contact you shortly.</p>`),
	},
	TemplateMessageReply: {
		subject: "Reply to your message",
		body: mustParse("message_reply", `<p>Dear {{.Name}},</p>
<p>{{.Reply}}</p>`),
	},
}

// Render executes the named template and returns the subject and HTML body.
func Render(kind TemplateKind, data any) (subject, htmlBody string, err error) {
	t, ok := templates[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", kind)
	}
	var buf bytes.Buffer
	if err := t.body.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render template %q: %w", kind, err)
	}
	return t.subject, buf.String(), nil
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body))
}
