// Package email delivers transactional mail through Amazon SES.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

const charset = "UTF-8"

var ErrRecipientRequired = errors.New("email recipient required")

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender sends mail from a verified SES identity.
type SESSender struct {
	api    sesAPI
	from   string
	logger *logger.Logger
}

// NewSESSender loads the default AWS credential chain for the configured region.
func NewSESSender(ctx context.Context, cfg config.EmailConfig, logg *logger.Logger) (*SESSender, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("email from address required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSESSender(ses.NewFromConfig(awsCfg), cfg.FromAddress, logg), nil
}

func newSESSender(api sesAPI, from string, logg *logger.Logger) *SESSender {
	if logg == nil {
		logg = logger.Nop()
	}
	return &SESSender{api: api, from: from, logger: logg}
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return ErrRecipientRequired
	}
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = &types.Content{Charset: aws.String(charset), Data: aws.String(msg.HTML)}
	}
	if msg.Text != "" {
		body.Text = &types.Content{Charset: aws.String(charset), Data: aws.String(msg.Text)}
	}

	out, err := s.api.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(s.from),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String(charset), Data: aws.String(msg.Subject)},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}

	logCtx := s.logger.WithFields(ctx, map[string]any{
		"to":         to,
		"message_id": aws.ToString(out.MessageId),
	})
	s.logger.Info(logCtx, "email sent")
	return nil
}

// LogSender records messages in the log instead of sending them. Used when no
// sender identity is configured.
type LogSender struct {
	logger *logger.Logger
}

func NewLogSender(logg *logger.Logger) *LogSender {
	if logg == nil {
		logg = logger.Nop()
	}
	return &LogSender{logger: logg}
}

func (l *LogSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrRecipientRequired
	}
	logCtx := l.logger.WithFields(ctx, map[string]any{"to": msg.To, "subject": msg.Subject})
	l.logger.Warn(logCtx, "email delivery disabled; message not sent")
	return nil
}
