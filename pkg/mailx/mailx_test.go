package mailx_test

import (
	"context"
	"testing"

	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FailsClosedWithoutConfig(t *testing.T) {
	s := mailx.New(mailx.Config{})
	require.IsType(t, mailx.DisabledSender{}, s)

	err := s.Send(context.Background(), mailx.Message{To: "a@x.com", Subject: "hi"})
	assert.ErrorIs(t, err, mailx.ErrDisabled)
	assert.NoError(t, s.Close())
}

func TestNew_SMTPWhenConfigured(t *testing.T) {
	s := mailx.New(mailx.Config{Host: "smtp.example.com", Port: 465, User: "hr@example.com"})
	assert.IsType(t, &mailx.SMTPSender{}, s)
}

func TestConfig_FromAddress(t *testing.T) {
	assert.Equal(t, "Acme <hr@acme.io>", mailx.Config{User: "hr@acme.io", Company: "Acme"}.FromAddress())
	assert.Equal(t, "jobs@acme.io", mailx.Config{User: "hr@acme.io", From: "jobs@acme.io"}.FromAddress())
	assert.Equal(t, "hr@acme.io", mailx.Config{User: "hr@acme.io"}.FromAddress())
}

func TestSMTPSender_ValidatesBeforeDialing(t *testing.T) {
	s := mailx.NewSMTPSender(mailx.Config{Host: "127.0.0.1", Port: 1, User: "u"})

	assert.Error(t, s.Send(context.Background(), mailx.Message{Subject: "x"}))
	assert.Error(t, s.Send(context.Background(), mailx.Message{To: "a@x.com"}))

	require.NoError(t, s.Close())
	assert.Error(t, s.Send(context.Background(), mailx.Message{To: "a@x.com", Subject: "x"}))
}
