package mail

import "context"

// Sender delivers a single email. Implementations must not retain params
// after returning.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

// SendParams are the fields of one outbound email.
type SendParams struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks that the minimum deliverable fields are present.
func (p SendParams) Validate() error {
	if p.To == "" {
		return ErrMissingRecipient
	}
	if p.Subject == "" {
		return ErrMissingSubject
	}
	if p.BodyHTML == "" {
		return ErrMissingBody
	}
	return nil
}
