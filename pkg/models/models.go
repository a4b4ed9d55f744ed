package models

import (
	"encoding/json"
)

// User is the profile snapshot the API returns and the client holds.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Tokens are the opaque bearer credentials issued on login and
// registration.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn,omitempty"`
}

// Session is the server-side session record returned by login.
type Session struct {
	SessionID string `json:"sessionId"`
	UserID    int    `json:"userId"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// APIEnvelope is the uniform response shape of every storefront API call.
type APIEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	User    User    `json:"user"`
	Tokens  Tokens  `json:"tokens"`
	Session Session `json:"session"`
}

// RegisterData is the payload of a completed OTP-gated registration.
type RegisterData struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

// OTPIssued is the payload every send-OTP endpoint returns. OTPToken is
// only present for the profile-mutation purposes (password/email/phone
// change), where it correlates the verify call with this send.
type OTPIssued struct {
	Email     string `json:"email"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	ExpiresIn string `json:"expiresIn,omitempty"`
	OTPToken  string `json:"otpToken,omitempty"`
}

// SendRegistrationOTPRequest is the body of POST /auth/send-registration-otp.
type SendRegistrationOTPRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Username string `json:"username,omitempty"`
}

// VerifyRegistrationOTPRequest is the body of POST /auth/verify-registration-otp.
type VerifyRegistrationOTPRequest struct {
	Email       string `json:"email"`
	OTPCode     string `json:"otpCode"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password-otp.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTPCode     string `json:"otpCode"`
	NewPassword string `json:"newPassword"`
}

// VerifyPasswordChangeRequest is the body of POST /profile/password/verify-otp.
type VerifyPasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	OTPCode         string `json:"otpCode"`
	OTPToken        string `json:"otpToken"`
}

// VerifyEmailUpdateRequest is the body of POST /profile/email/verify-otp.
type VerifyEmailUpdateRequest struct {
	NewEmail string `json:"newEmail"`
	OTPCode  string `json:"otpCode"`
	OTPToken string `json:"otpToken"`
}

// VerifyPhoneUpdateRequest is the body of POST /profile/phone/verify-otp.
type VerifyPhoneUpdateRequest struct {
	NewPhone string `json:"newPhone"`
	OTPCode  string `json:"otpCode"`
	OTPToken string `json:"otpToken"`
}

// UpdateProfileRequest is the body of PUT /profile.
type UpdateProfileRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
