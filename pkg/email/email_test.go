package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSenderBuildsRequest(t *testing.T) {
	api := &fakeSES{}
	sender := newSESSender(api, "hub@partnerhub.test", nil)

	err := sender.Send(context.Background(), Message{
		To:      " lee@venue.test ",
		Subject: "Welcome",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	})
	require.NoError(t, err)
	require.Len(t, api.inputs, 1)

	in := api.inputs[0]
	assert.Equal(t, "hub@partnerhub.test", aws.ToString(in.Source))
	assert.Equal(t, []string{"lee@venue.test"}, in.Destination.ToAddresses)
	assert.Equal(t, "Welcome", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "<p>Hi</p>", aws.ToString(in.Message.Body.Html.Data))
	assert.Equal(t, "Hi", aws.ToString(in.Message.Body.Text.Data))
}

func TestSESSenderOmitsEmptyParts(t *testing.T) {
	api := &fakeSES{}
	sender := newSESSender(api, "hub@partnerhub.test", nil)

	require.NoError(t, sender.Send(context.Background(), Message{To: "a@b.test", Subject: "s", Text: "only text"}))
	assert.Nil(t, api.inputs[0].Message.Body.Html)
}

func TestSESSenderErrors(t *testing.T) {
	api := &fakeSES{err: errors.New("throttled")}
	sender := newSESSender(api, "hub@partnerhub.test", nil)

	err := sender.Send(context.Background(), Message{To: "a@b.test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")

	assert.ErrorIs(t, sender.Send(context.Background(), Message{To: " "}), ErrRecipientRequired)
}

func TestNewSESSenderRequiresFromAddress(t *testing.T) {
	_, err := NewSESSender(context.Background(), config.EmailConfig{Region: "us-east-1"}, nil)
	require.Error(t, err)
}

func TestLogSenderLogsInsteadOfSending(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})

	sender := NewLogSender(log)
	require.NoError(t, sender.Send(context.Background(), Message{To: "a@b.test", Subject: "Invite"}))
	assert.Contains(t, buf.String(), "Invite")
	assert.ErrorIs(t, sender.Send(context.Background(), Message{}), ErrRecipientRequired)
}
