package models

import "time"

// Channel-dependent lifetimes of a confirmation code.
const (
	PhoneCodeTTL = 3 * time.Minute
	EmailCodeTTL = 5 * time.Minute
)

// UserConfirmation is a short-lived one-time code tied to a user and an auth
// channel. It is created on signup/resend and deleted on successful verify.
type UserConfirmation struct {
	ID         int64     `json:"id"`
	UserID     int       `json:"user_id"`
	Code       string    `json:"-"`
	AuthType   AuthType  `json:"auth_type"`
	IsVerified bool      `json:"is_verified"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *UserConfirmation) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// CodeTTL picks the expiry window for a channel: 3 minutes for phone,
// 5 minutes for email.
func CodeTTL(authType AuthType) time.Duration {
	if authType == AuthTypePhone {
		return PhoneCodeTTL
	}
	return EmailCodeTTL
}
