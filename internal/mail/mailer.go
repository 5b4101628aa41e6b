package mail

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Mailer composes and sends the transactional emails this service
// produces: email confirmation and password reset. Templates are
// parsed once at construction.
type Mailer struct {
	sender  Sender
	baseURL string
	appName string

	confirmTpl *template.Template
	resetTpl   *template.Template
}

// NewMailer builds a Mailer on top of the given sender. The base URL
// must be the public address of the application; confirmation and
// reset links are built from it.
func NewMailer(sender Sender, cfg Config) (*Mailer, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: sender is required", ErrInvalidConfig)
	}
	if cfg.AppBaseURL == "" {
		return nil, fmt.Errorf("%w: AppBaseURL is required", ErrInvalidConfig)
	}

	confirmTpl, err := template.New("confirm").Parse(confirmEmailTemplate)
	if err != nil {
		return nil, errors.Join(ErrRenderTemplate, err)
	}
	resetTpl, err := template.New("reset").Parse(resetPasswordTemplate)
	if err != nil {
		return nil, errors.Join(ErrRenderTemplate, err)
	}

	return &Mailer{
		sender:     sender,
		baseURL:    strings.TrimRight(cfg.AppBaseURL, "/"),
		appName:    cfg.AppName,
		confirmTpl: confirmTpl,
		resetTpl:   resetTpl,
	}, nil
}

type templateData struct {
	AppName   string
	Username  string
	ActionURL string
}

// SendConfirmationEmail sends the email address confirmation message
// containing a link with the confirmation token.
func (m *Mailer) SendConfirmationEmail(ctx context.Context, to, username, token string) error {
	actionURL := fmt.Sprintf("%s/auth/confirm-email?token=%s", m.baseURL, token)
	body, err := renderTemplate(m.confirmTpl, templateData{
		AppName:   m.appName,
		Username:  username,
		ActionURL: actionURL,
	})
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, SendParams{
		To:       to,
		Subject:  fmt.Sprintf("Confirm your %s email address", m.appName),
		BodyHTML: body,
		Tag:      "confirm-email",
	})
}

// SendPasswordResetEmail sends the password reset message containing a
// link with the reset token.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, username, token string) error {
	actionURL := fmt.Sprintf("%s/auth/reset-password?token=%s", m.baseURL, token)
	body, err := renderTemplate(m.resetTpl, templateData{
		AppName:   m.appName,
		Username:  username,
		ActionURL: actionURL,
	})
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, SendParams{
		To:       to,
		Subject:  fmt.Sprintf("Reset your %s password", m.appName),
		BodyHTML: body,
		Tag:      "reset-password",
	})
}

func renderTemplate(tpl *template.Template, data templateData) (string, error) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", errors.Join(ErrRenderTemplate, err)
	}
	return sb.String(), nil
}

const confirmEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #333; max-width: 540px; margin: 0 auto; padding: 24px;">
  <h2>Welcome to {{.AppName}}, {{.Username}}!</h2>
  <p>Please confirm your email address to activate your account.</p>
  <p style="margin: 32px 0;">
    <a href="{{.ActionURL}}" style="background: #2563eb; color: #fff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Confirm email address</a>
  </p>
  <p>If the button does not work, copy this link into your browser:</p>
  <p><a href="{{.ActionURL}}">{{.ActionURL}}</a></p>
  <p style="color: #888; font-size: 13px;">The link is valid for 7 days. If you did not create an account, you can ignore this email.</p>
</body>
</html>`

const resetPasswordTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #333; max-width: 540px; margin: 0 auto; padding: 24px;">
  <h2>Password reset requested</h2>
  <p>Hi {{.Username}}, we received a request to reset your {{.AppName}} password.</p>
  <p style="margin: 32px 0;">
    <a href="{{.ActionURL}}" style="background: #2563eb; color: #fff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Reset password</a>
  </p>
  <p>If the button does not work, copy this link into your browser:</p>
  <p><a href="{{.ActionURL}}">{{.ActionURL}}</a></p>
  <p style="color: #888; font-size: 13px;">The link is valid for 7 days. If you did not request a reset, your password is unchanged and you can ignore this email.</p>
</body>
</html>`
