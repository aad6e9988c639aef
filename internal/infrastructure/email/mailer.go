package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/config"
)

// Mailer sends templated emails.
type Mailer interface {
	Send(to string, kind TemplateKind, data any) error
}

// NewMailer creates a mailer from config. Provider "smtp" talks to the
// configured SMTP relay, "ses" uses AWS SES, anything else logs and drops.
func NewMailer(cfg *config.Config) (Mailer, error) {
	switch cfg.EmailProvider {
	case "smtp":
		return &smtpMailer{
			host:     cfg.SMTPHost,
			port:     cfg.SMTPPort,
			from:     cfg.EmailFrom,
			fromName: cfg.EmailFromName,
			username: cfg.SMTPUsername,
			password: cfg.SMTPPassword,
		}, nil
	case "ses":
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.SESRegion),
		}
		if cfg.AWSAccessKeyID != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config for SES: %w", err)
		}
		return &sesMailer{
			client:   ses.NewFromConfig(awsCfg),
			from:     cfg.EmailFrom,
			fromName: cfg.EmailFromName,
		}, nil
	case "noop":
		return &noopMailer{}, nil
	default:
		slog.Warn("unknown email provider, using noop", "provider", cfg.EmailProvider)
		return &noopMailer{}, nil
	}
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	fromName string
	username string
	password string
}

func (m *smtpMailer) Send(to string, kind TemplateKind, data any) error {
	subject, htmlBody, err := Render(kind, data)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.fromName, m.from, to, subject, htmlBody,
	)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

type sesMailer struct {
	client   *ses.Client
	from     string
	fromName string
}

func (m *sesMailer) Send(to string, kind TemplateKind, data any) error {
	subject, htmlBody, err := Render(kind, data)
	if err != nil {
		return err
	}
	source := m.from
	if m.fromName != "" {
		source = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}
	out, err := m.client.SendEmail(context.Background(), &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	slog.Debug("email sent via SES", "to", to, "message_id", aws.ToString(out.MessageId))
	return nil
}

type noopMailer struct{}

func (n *noopMailer) Send(to string, kind TemplateKind, _ any) error {
	slog.Info("email dropped (noop mailer)", "to", to, "kind", string(kind))
	return nil
}
