package mail_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladanze/auth-api/internal/mail"
)

type recordingSender struct {
	sent []mail.SendParams
	err  error
}

func (r *recordingSender) Send(_ context.Context, params mail.SendParams) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, params)
	return nil
}

func TestMailer_SendConfirmationEmail(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	mailer, err := mail.NewMailer(sender, mail.Config{
		AppBaseURL: "https://app.example.com/",
		AppName:    "Example",
	})
	require.NoError(t, err)

	err = mailer.SendConfirmationEmail(context.Background(), "user@example.com", "alice", "tok123")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "user@example.com", msg.To)
	assert.Equal(t, "confirm-email", msg.Tag)
	assert.Contains(t, msg.Subject, "Confirm")
	assert.Contains(t, msg.BodyHTML, "https://app.example.com/auth/confirm-email?token=tok123")
	assert.Contains(t, msg.BodyHTML, "alice")
}

func TestMailer_SendPasswordResetEmail(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	mailer, err := mail.NewMailer(sender, mail.Config{
		AppBaseURL: "https://app.example.com",
		AppName:    "Example",
	})
	require.NoError(t, err)

	err = mailer.SendPasswordResetEmail(context.Background(), "user@example.com", "alice", "tok456")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "reset-password", msg.Tag)
	assert.Contains(t, msg.Subject, "Reset")
	assert.Contains(t, msg.BodyHTML, "https://app.example.com/auth/reset-password?token=tok456")
}

func TestNewMailer_Validation(t *testing.T) {
	t.Parallel()

	t.Run("nil sender", func(t *testing.T) {
		t.Parallel()
		_, err := mail.NewMailer(nil, mail.Config{AppBaseURL: "https://x"})
		assert.ErrorIs(t, err, mail.ErrInvalidConfig)
	})

	t.Run("missing base URL", func(t *testing.T) {
		t.Parallel()
		_, err := mail.NewMailer(&recordingSender{}, mail.Config{})
		assert.ErrorIs(t, err, mail.ErrInvalidConfig)
	})
}

func TestSendParams_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		params mail.SendParams
		want   error
	}{
		{"valid", mail.SendParams{To: "a@b.c", Subject: "s", BodyHTML: "b"}, nil},
		{"missing recipient", mail.SendParams{Subject: "s", BodyHTML: "b"}, mail.ErrMissingRecipient},
		{"missing subject", mail.SendParams{To: "a@b.c", BodyHTML: "b"}, mail.ErrMissingSubject},
		{"missing body", mail.SendParams{To: "a@b.c", Subject: "s"}, mail.ErrMissingBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.params.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := mail.NewDevSender(dir)

	err := sender.Send(context.Background(), mail.SendParams{
		To:       "user@example.com",
		Subject:  "Hello there",
		BodyHTML: "<p>hi</p>",
		Tag:      "confirm-email",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = e.Name()
		case ".json":
			jsonFile = e.Name()
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)
	assert.Contains(t, htmlFile, "confirm-email")

	html, err := os.ReadFile(filepath.Join(dir, htmlFile))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(html))

	meta, err := os.ReadFile(filepath.Join(dir, jsonFile))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(meta), "user@example.com"))
}

func TestNewSenderFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("dev sender without tokens", func(t *testing.T) {
		t.Parallel()
		sender, err := mail.NewSenderFromConfig(mail.Config{
			SenderEmail:  "noreply@example.com",
			SupportEmail: "support@example.com",
			AppBaseURL:   "https://app.example.com",
			DevMailDir:   t.TempDir(),
		})
		require.NoError(t, err)
		_, ok := sender.(*mail.DevSender)
		assert.True(t, ok)
	})

	t.Run("postmark sender with tokens", func(t *testing.T) {
		t.Parallel()
		sender, err := mail.NewSenderFromConfig(mail.Config{
			PostmarkServerToken:  "server-token",
			PostmarkAccountToken: "account-token",
			SenderEmail:          "noreply@example.com",
			SupportEmail:         "support@example.com",
			AppBaseURL:           "https://app.example.com",
		})
		require.NoError(t, err)
		_, ok := sender.(*mail.DevSender)
		assert.False(t, ok)
	})
}
