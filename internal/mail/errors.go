package mail

import "errors"

var (
	ErrMissingRecipient = errors.New("missing recipient email address")
	ErrMissingSubject   = errors.New("missing email subject")
	ErrMissingBody      = errors.New("missing email body")
	ErrSendFailed       = errors.New("failed to send email")
	ErrRenderTemplate   = errors.New("failed to render email template")
)
