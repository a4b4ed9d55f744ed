package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zerodha/logf"

	"github.com/dacsanviet/storefront/internal/config"
	"github.com/dacsanviet/storefront/internal/validate"
	"github.com/dacsanviet/storefront/pkg/models"
)

var (
	// ErrBadCode is returned locally, before any network call, when the
	// submitted code is not exactly six digits.
	ErrBadCode = errors.New("Mã OTP phải có 6 chữ số")

	// ErrCountdownRunning is returned when a resend is attempted before
	// the countdown reaches zero.
	ErrCountdownRunning = errors.New("Vui lòng đợi hết thời gian để gửi lại mã")
)

// API is the slice of the gateway client the workflow drives.
type API interface {
	SendRegistrationOTP(ctx context.Context, email, fullName, username string) (models.OTPIssued, error)
	VerifyRegistrationOTP(ctx context.Context, req models.VerifyRegistrationOTPRequest) (models.RegisterData, error)
	SendPasswordResetOTP(ctx context.Context, email string) (models.OTPIssued, error)
	ResetPasswordWithOTP(ctx context.Context, email, otpCode, newPassword string) error
	SendPasswordChangeOTP(ctx context.Context, currentPassword string) (models.OTPIssued, error)
	VerifyPasswordChangeOTP(ctx context.Context, req models.VerifyPasswordChangeRequest) error
	SendEmailUpdateOTP(ctx context.Context, newEmail string) (models.OTPIssued, error)
	VerifyEmailUpdateOTP(ctx context.Context, req models.VerifyEmailUpdateRequest) (models.User, error)
	SendPhoneUpdateOTP(ctx context.Context, newPhone string) (models.OTPIssued, error)
	VerifyPhoneUpdateOTP(ctx context.Context, req models.VerifyPhoneUpdateRequest) (models.User, error)
}

// Outcome is the result of an accepted submission. At most one field is
// set, depending on the challenge's purpose.
type Outcome struct {
	// User is the updated profile, for purposes that change it.
	User *models.User

	// Tokens is the fresh credential pair after registration.
	Tokens *models.Tokens

	// Reset signals the follow-on "set new password" step; the
	// password_reset purpose never finalizes in Submit.
	Reset *ResetStep
}

// ResetStep carries the verified code forward into the set-new-password
// step of the password-reset flow.
type ResetStep struct {
	Email   string
	OTPCode string
}

// Workflow orchestrates OTP challenges against the gateway. One
// workflow serves any number of sequential challenges; concurrent
// challenges per screen are not supported, a new Begin supersedes.
type Workflow struct {
	api API
	ttl time.Duration
	now func() time.Time
	lo  logf.Logger
}

// New returns a workflow with the given challenge TTL. A zero ttl means
// the shared default of 300 seconds.
func New(api API, ttl time.Duration, lo logf.Logger) *Workflow {
	if ttl <= 0 {
		ttl = config.DefaultOTPTTL
	}
	return &Workflow{
		api: api,
		ttl: ttl,
		now: time.Now,
		lo:  lo,
	}
}

// Begin requests a code for the payload's purpose. The payload must be
// validated by the caller beforehand; Begin does not re-validate.
func (w *Workflow) Begin(ctx context.Context, p Payload) (*Challenge, error) {
	var (
		issued models.OTPIssued
		err    error
	)
	switch v := p.(type) {
	case Registration:
		issued, err = w.api.SendRegistrationOTP(ctx, v.Email, v.FullName, v.Username)
	case PasswordReset:
		issued, err = w.api.SendPasswordResetOTP(ctx, v.Email)
	case PasswordChange:
		issued, err = w.api.SendPasswordChangeOTP(ctx, v.CurrentPassword)
	case EmailUpdate:
		issued, err = w.api.SendEmailUpdateOTP(ctx, v.NewEmail)
	case PhoneUpdate:
		issued, err = w.api.SendPhoneUpdateOTP(ctx, v.NewPhone)
	default:
		return nil, fmt.Errorf("unknown OTP payload type %T", p)
	}
	if err != nil {
		w.lo.Error("error sending otp", "purpose", p.Purpose(), "error", err)
		return nil, err
	}

	now := w.now()
	return &Challenge{
		Purpose:   p.Purpose(),
		Recipient: issued.Email,
		Token:     issued.OTPToken,
		IssuedAt:  now,
		ExpiresAt: now.Add(w.ttl),
		State:     StateAwaitingCode,
		payload:   p,
	}, nil
}

// Submit verifies a user-entered code against the challenge. A code that
// is not exactly six digits fails locally without touching the network.
// On failure the challenge stays open for re-entry; on success the
// challenge completes and the outcome carries the purpose's result.
//
// The password_reset purpose does not verify over the network here: the
// reset endpoint itself is the verification, so Submit hands the code
// forward as Outcome.Reset for the set-new-password step.
func (w *Workflow) Submit(ctx context.Context, ch *Challenge, code string) (Outcome, error) {
	var out Outcome

	if !validate.OTPCode(code) {
		return out, ErrBadCode
	}

	switch v := ch.payload.(type) {
	case Registration:
		d, err := w.api.VerifyRegistrationOTP(ctx, models.VerifyRegistrationOTPRequest{
			Email:       v.Email,
			OTPCode:     code,
			Username:    v.Username,
			Password:    v.Password,
			FullName:    v.FullName,
			PhoneNumber: v.PhoneNumber,
		})
		if err != nil {
			return out, w.reject(ch, err)
		}
		out.User = &d.User
		out.Tokens = &d.Tokens

	case PasswordReset:
		out.Reset = &ResetStep{Email: v.Email, OTPCode: code}

	case PasswordChange:
		err := w.api.VerifyPasswordChangeOTP(ctx, models.VerifyPasswordChangeRequest{
			CurrentPassword: v.CurrentPassword,
			NewPassword:     v.NewPassword,
			OTPCode:         code,
			OTPToken:        ch.Token,
		})
		if err != nil {
			return out, w.reject(ch, err)
		}

	case EmailUpdate:
		u, err := w.api.VerifyEmailUpdateOTP(ctx, models.VerifyEmailUpdateRequest{
			NewEmail: v.NewEmail,
			OTPCode:  code,
			OTPToken: ch.Token,
		})
		if err != nil {
			return out, w.reject(ch, err)
		}
		out.User = &u

	case PhoneUpdate:
		u, err := w.api.VerifyPhoneUpdateOTP(ctx, models.VerifyPhoneUpdateRequest{
			NewPhone: v.NewPhone,
			OTPCode:  code,
			OTPToken: ch.Token,
		})
		if err != nil {
			return out, w.reject(ch, err)
		}
		out.User = &u
	}

	ch.State = StateCompleted
	return out, nil
}

// CompleteReset finalizes the password-reset flow with the step Submit
// handed out and the user's new password.
func (w *Workflow) CompleteReset(ctx context.Context, step ResetStep, newPassword string) error {
	return w.api.ResetPasswordWithOTP(ctx, step.Email, step.OTPCode, newPassword)
}

// Resend re-requests a code with the same purpose and payload. Permitted
// only once the countdown has reached zero. The returned challenge has a
// fresh correlation token and a reset countdown; the old token is
// invalidated server-side and the old challenge is marked expired.
func (w *Workflow) Resend(ctx context.Context, ch *Challenge) (*Challenge, error) {
	if !w.CanResend(ch) {
		return nil, ErrCountdownRunning
	}

	fresh, err := w.Begin(ctx, ch.payload)
	if err != nil {
		return nil, err
	}
	ch.State = StateExpired
	return fresh, nil
}

// Remaining returns the countdown's whole seconds left, clamped at zero.
func (w *Workflow) Remaining(ch *Challenge) int {
	rem := int(ch.ExpiresAt.Sub(w.now()) / time.Second)
	if rem < 0 {
		rem = 0
	}
	return rem
}

// CanResend reports whether the countdown has run out.
func (w *Workflow) CanResend(ch *Challenge) bool {
	return w.Remaining(ch) == 0
}

// Countdown ticks once per second, pushing the remaining seconds to fn,
// until the countdown reaches zero or ctx is canceled. Cancel the
// context when the owning screen goes away.
func (w *Workflow) Countdown(ctx context.Context, ch *Challenge, fn func(remaining int)) {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rem := w.Remaining(ch)
			fn(rem)
			if rem == 0 {
				return
			}
		}
	}
}

// reject logs a failed verification and keeps the challenge awaiting a
// fresh entry.
func (w *Workflow) reject(ch *Challenge, err error) error {
	w.lo.Error("error verifying otp", "purpose", ch.Purpose, "error", err)
	ch.State = StateAwaitingCode
	return err
}
