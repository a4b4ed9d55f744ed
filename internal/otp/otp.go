// Package otp drives a user through "receive code, enter code, confirm
// action" for the five account actions the storefront gates behind a
// one-time e-mail code.
package otp

import (
	"time"
)

// Purpose identifies which account action an OTP challenge confirms.
type Purpose string

const (
	PurposeRegistration   Purpose = "registration"
	PurposePasswordReset  Purpose = "password_reset"
	PurposePasswordChange Purpose = "password_change"
	PurposeEmailUpdate    Purpose = "email_update"
	PurposePhoneUpdate    Purpose = "phone_update"
)

// Payload is the purpose-specific data needed to complete the action
// once the code is verified. The closed set of implementations below
// makes a purpose/payload mismatch unrepresentable.
type Payload interface {
	Purpose() Purpose
}

// Registration carries the pending account details for a new signup.
type Registration struct {
	Email       string
	Username    string
	Password    string
	FullName    string
	PhoneNumber string
}

func (Registration) Purpose() Purpose { return PurposeRegistration }

// PasswordReset carries the account e-mail a reset was requested for.
type PasswordReset struct {
	Email string
}

func (PasswordReset) Purpose() Purpose { return PurposePasswordReset }

// PasswordChange carries the password pair for an authenticated change.
type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
}

func (PasswordChange) Purpose() Purpose { return PurposePasswordChange }

// EmailUpdate carries the address the account should move to.
type EmailUpdate struct {
	NewEmail string
}

func (EmailUpdate) Purpose() Purpose { return PurposeEmailUpdate }

// PhoneUpdate carries the new phone number. The code still goes to the
// current account e-mail.
type PhoneUpdate struct {
	NewPhone string
}

func (PhoneUpdate) Purpose() Purpose { return PurposePhoneUpdate }

// State of a challenge instance.
type State int

const (
	// StateCreated is a challenge that has not been sent yet.
	StateCreated State = iota

	// StateAwaitingCode means the code was sent and the user may submit.
	// Failed submissions stay in this state; the challenge remains valid
	// until the server-side expiry.
	StateAwaitingCode

	// StateCompleted is terminal: a submission was accepted.
	StateCompleted

	// StateExpired marks a challenge superseded by a resend. Server-side
	// expiry is never detected proactively; the server rejecting a
	// submission is the only signal.
	StateExpired
)

// Challenge represents one outstanding one-time-code request.
type Challenge struct {
	Purpose   Purpose
	Recipient string // e-mail address the code was sent to
	Token     string // correlation token, empty for the auth purposes
	IssuedAt  time.Time
	ExpiresAt time.Time
	State     State

	payload Payload
}

// Payload returns the purpose-specific data the challenge was begun with.
func (ch *Challenge) Payload() Payload {
	return ch.payload
}
