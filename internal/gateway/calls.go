package gateway

import (
	"context"
	"net/http"

	"github.com/dacsanviet/storefront/pkg/models"
)

// Login authenticates with an e-mail/username and password. The returned
// tokens, session ID and user snapshot are persisted as a side effect.
func (c *Client) Login(ctx context.Context, emailOrUsername, password string) (models.LoginData, error) {
	out, err := request[models.LoginData](ctx, c, http.MethodPost, "/auth/login", models.LoginRequest{
		EmailOrUsername: emailOrUsername,
		Password:        password,
	})
	if err != nil {
		return out, err
	}

	// Persistence failures are logged inside the manager; the login
	// itself already succeeded.
	c.sess.Login(ctx, out.Tokens, out.Session.SessionID, out.User)
	return out, nil
}

// Logout tells the server to end the session, then clears the local one
// regardless of the server's answer.
func (c *Client) Logout(ctx context.Context) error {
	if id := c.sess.SessionID(); id != "" {
		if _, err := request[struct{}](ctx, c, http.MethodPost, "/auth/logout", map[string]string{
			"sessionId": id,
		}); err != nil {
			c.lo.Error("error calling logout", "error", err)
		}
	}
	return c.sess.Logout(ctx)
}

// CheckSession asks the server whether the saved session is still valid.
func (c *Client) CheckSession(ctx context.Context) bool {
	id := c.sess.SessionID()
	if id == "" {
		return false
	}
	_, err := request[struct{}](ctx, c, http.MethodPost, "/auth/check-session", map[string]string{
		"sessionId": id,
	})
	return err == nil
}

// SendRegistrationOTP requests a registration code for a new account.
func (c *Client) SendRegistrationOTP(ctx context.Context, email, fullName, username string) (models.OTPIssued, error) {
	return request[models.OTPIssued](ctx, c, http.MethodPost, "/auth/send-registration-otp", models.SendRegistrationOTPRequest{
		Email:    email,
		FullName: fullName,
		Username: username,
	})
}

// VerifyRegistrationOTP completes registration. On success the new
// account's tokens and user are persisted as a side effect.
func (c *Client) VerifyRegistrationOTP(ctx context.Context, req models.VerifyRegistrationOTPRequest) (models.RegisterData, error) {
	out, err := request[models.RegisterData](ctx, c, http.MethodPost, "/auth/verify-registration-otp", req)
	if err != nil {
		return out, err
	}

	c.sess.Login(ctx, out.Tokens, "", out.User)
	return out, nil
}

// SendPasswordResetOTP requests a password-reset code for an account's
// e-mail address.
func (c *Client) SendPasswordResetOTP(ctx context.Context, email string) (models.OTPIssued, error) {
	return request[models.OTPIssued](ctx, c, http.MethodPost, "/auth/send-password-reset-otp", map[string]string{
		"email": email,
	})
}

// ResetPasswordWithOTP sets a new password using a verified reset code.
func (c *Client) ResetPasswordWithOTP(ctx context.Context, email, otpCode, newPassword string) error {
	_, err := request[struct{}](ctx, c, http.MethodPost, "/auth/reset-password-otp", models.ResetPasswordRequest{
		Email:       email,
		OTPCode:     otpCode,
		NewPassword: newPassword,
	})
	return err
}

// SendPasswordChangeOTP requests a password-change code. The server mails
// the current account address and returns an otpToken binding the later
// verify call to this request.
func (c *Client) SendPasswordChangeOTP(ctx context.Context, currentPassword string) (models.OTPIssued, error) {
	return request[models.OTPIssued](ctx, c, http.MethodPost, "/profile/password/send-otp", map[string]string{
		"currentPassword": currentPassword,
	})
}

// VerifyPasswordChangeOTP completes a password change.
func (c *Client) VerifyPasswordChangeOTP(ctx context.Context, req models.VerifyPasswordChangeRequest) error {
	_, err := request[struct{}](ctx, c, http.MethodPost, "/profile/password/verify-otp", req)
	return err
}

// SendEmailUpdateOTP requests an e-mail-change code, sent to the current
// account address.
func (c *Client) SendEmailUpdateOTP(ctx context.Context, newEmail string) (models.OTPIssued, error) {
	return request[models.OTPIssued](ctx, c, http.MethodPost, "/profile/email/send-otp", map[string]string{
		"newEmail": newEmail,
	})
}

// VerifyEmailUpdateOTP completes an e-mail change. The updated user is
// persisted as a side effect.
func (c *Client) VerifyEmailUpdateOTP(ctx context.Context, req models.VerifyEmailUpdateRequest) (models.User, error) {
	out, err := request[userData](ctx, c, http.MethodPost, "/profile/email/verify-otp", req)
	if err != nil {
		return out.User, err
	}

	c.sess.SetUser(ctx, out.User)
	return out.User, nil
}

// SendPhoneUpdateOTP requests a phone-change code, sent to the current
// account e-mail address.
func (c *Client) SendPhoneUpdateOTP(ctx context.Context, newPhone string) (models.OTPIssued, error) {
	return request[models.OTPIssued](ctx, c, http.MethodPost, "/profile/phone/send-otp", map[string]string{
		"newPhone": newPhone,
	})
}

// VerifyPhoneUpdateOTP completes a phone change. The updated user is
// persisted as a side effect.
func (c *Client) VerifyPhoneUpdateOTP(ctx context.Context, req models.VerifyPhoneUpdateRequest) (models.User, error) {
	out, err := request[userData](ctx, c, http.MethodPost, "/profile/phone/verify-otp", req)
	if err != nil {
		return out.User, err
	}

	c.sess.SetUser(ctx, out.User)
	return out.User, nil
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	out, err := request[userData](ctx, c, http.MethodGet, "/profile", nil)
	return out.User, err
}

// UpdateProfile changes the profile's name and phone number. The updated
// user is persisted as a side effect.
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	out, err := request[userData](ctx, c, http.MethodPut, "/profile", req)
	if err != nil {
		return out.User, err
	}

	c.sess.SetUser(ctx, out.User)
	return out.User, nil
}

// userData is the {user} wrapper several profile endpoints return.
type userData struct {
	User models.User `json:"user"`
}
