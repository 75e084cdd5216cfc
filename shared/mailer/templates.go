package mailer

import (
	"fmt"
	"time"
)

// ResetLink builds the reset deep link embedded in reset notifications.
// The query parameter shape is a compatibility contract with the frontend:
// {base_url}/reset-password?token={secret}&type={user|mentor}.
func ResetLink(baseURL, secret, subjectKind string) string {
	return fmt.Sprintf("%s/reset-password?token=%s&type=%s", baseURL, secret, subjectKind)
}

// ResetEmail renders the password reset notification for an end user or
// mentor. It returns the subject, HTML body, and plain-text alternative.
func ResetEmail(baseURL, secret, subjectKind string, ttl time.Duration) (string, string, string) {
	link := ResetLink(baseURL, secret, subjectKind)
	subject := "Reset your OnlyMentors.ai password"

	html := fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your OnlyMentors.ai account.</p>
		<p>If you made this request, click the link below to choose a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email and your account will remain secure.</p>

		<p>Thank you,</p>
		<p>The OnlyMentors.ai Team</p>
	`, link, link, ttl)

	text := fmt.Sprintf(
		"We received a request to reset the password for your OnlyMentors.ai account.\n\n"+
			"Open this link to choose a new password:\n%s\n\n"+
			"The link expires in %s. If you did not request a reset, ignore this email.\n",
		link, ttl)

	return subject, html, text
}

// AdminResetEmail renders the notification sent when an administrator
// initiates a password reset on an account holder's behalf.
func AdminResetEmail(baseURL, secret, subjectKind string, ttl time.Duration) (string, string, string) {
	link := ResetLink(baseURL, secret, subjectKind)
	subject := "Your OnlyMentors.ai password must be reset"

	html := fmt.Sprintf(`
		<p>Hi,</p>
		<p>An OnlyMentors.ai administrator has initiated a password reset for your account.</p>
		<p>Click the link below to choose a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s. You will not be able to sign in until your password has been reset.</p>

		<p>Thank you,</p>
		<p>The OnlyMentors.ai Team</p>
	`, link, link, ttl)

	text := fmt.Sprintf(
		"An OnlyMentors.ai administrator has initiated a password reset for your account.\n\n"+
			"Open this link to choose a new password:\n%s\n\n"+
			"The link expires in %s.\n",
		link, ttl)

	return subject, html, text
}

// SuspensionEmail renders the account suspension notification.
func SuspensionEmail(reason string) (string, string, string) {
	subject := "Your OnlyMentors.ai account has been suspended"

	if reason == "" {
		reason = "a review of recent activity on your account"
	}

	html := fmt.Sprintf(`
		<p>Hi,</p>
		<p>Your OnlyMentors.ai account has been suspended following %s.</p>
		<p>While suspended, you will not be able to sign in or use the platform.</p>
		<p>If you believe this is a mistake, reply to this email to reach our support team.</p>

		<p>The OnlyMentors.ai Team</p>
	`, reason)

	text := fmt.Sprintf(
		"Your OnlyMentors.ai account has been suspended following %s.\n"+
			"While suspended, you will not be able to sign in or use the platform.\n"+
			"If you believe this is a mistake, reply to this email to reach our support team.\n",
		reason)

	return subject, html, text
}

// DeletionEmail renders the account deletion notification.
func DeletionEmail() (string, string, string) {
	subject := "Your OnlyMentors.ai account has been deleted"

	html := `
		<p>Hi,</p>
		<p>Your OnlyMentors.ai account has been deleted and your sign-in credentials no longer work.</p>
		<p>If you did not expect this, contact our support team immediately by replying to this email.</p>

		<p>The OnlyMentors.ai Team</p>
	`

	text := "Your OnlyMentors.ai account has been deleted and your sign-in credentials no longer work.\n" +
		"If you did not expect this, contact our support team immediately by replying to this email.\n"

	return subject, html, text
}

// ReactivationEmail renders the account reactivation notification.
func ReactivationEmail() (string, string, string) {
	subject := "Your OnlyMentors.ai account has been reactivated"

	html := `
		<p>Hi,</p>
		<p>Good news: your OnlyMentors.ai account has been reactivated and you can sign in again.</p>
		<p>If you have trouble signing in, you can request a password reset from the sign-in page.</p>

		<p>Welcome back,</p>
		<p>The OnlyMentors.ai Team</p>
	`

	text := "Your OnlyMentors.ai account has been reactivated and you can sign in again.\n" +
		"If you have trouble signing in, request a password reset from the sign-in page.\n"

	return subject, html, text
}
