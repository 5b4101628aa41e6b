package mail

import "errors"

// Config holds outbound email configuration. The Postmark tokens are
// optional so development environments can run on the DevSender;
// sender identity and the public base URL are always required because
// every email embeds links pointing back at the application.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	AppBaseURL           string `env:"APP_BASE_URL,required"`
	AppName              string `env:"APP_NAME" envDefault:"Auth API"`
	DevMailDir           string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`
}

// ErrInvalidConfig indicates that required sender configuration is
// missing or malformed.
var ErrInvalidConfig = errors.New("invalid mail config")

// NewSenderFromConfig picks the Postmark sender when tokens are
// configured and falls back to the file-based DevSender otherwise.
func NewSenderFromConfig(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		return NewPostmarkSender(cfg)
	}
	return NewDevSender(cfg.DevMailDir), nil
}
