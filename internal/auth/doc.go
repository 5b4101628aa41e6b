// Package auth orchestrates the authentication flows: signup, login,
// email confirmation, password reset, token refresh, and credential
// changes. It composes the account store, the access token forge, the
// refresh and email token ledgers, and the mailer behind a single
// Service; transport layers call the Service and never touch storage
// directly.
package auth
