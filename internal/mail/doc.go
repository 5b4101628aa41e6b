// Package mail composes and delivers the service's transactional
// emails. The Sender interface abstracts the delivery channel: the
// Postmark sender for production and a file-based DevSender for local
// development. Mailer sits on top and owns the HTML templates for the
// email confirmation and password reset messages.
package mail
