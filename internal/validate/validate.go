// Package validate holds the local input checks performed before any
// network call is made.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// http://www.golangprograms.com/regular-expression-to-validate-email-address.html
var reMail = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// reOTP matches a complete OTP entry: exactly six ASCII digits.
var reOTP = regexp.MustCompile(`^[0-9]{6}$`)

var (
	ErrPasswordShort     = errors.New("Mật khẩu phải có ít nhất 8 ký tự")
	ErrPasswordUppercase = errors.New("Mật khẩu phải chứa ít nhất 1 chữ hoa")
	ErrPasswordDigit     = errors.New("Mật khẩu phải chứa ít nhất 1 số")
)

var sanitizer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Email reports whether s looks like a deliverable e-mail address.
func Email(s string) bool {
	return reMail.MatchString(strings.ToLower(s))
}

// Password checks the strength rules the storefront enforces: at least
// 8 characters, one uppercase letter, and one digit.
func Password(s string) error {
	if len(s) < 8 {
		return ErrPasswordShort
	}
	if strings.IndexFunc(s, unicode.IsUpper) < 0 {
		return ErrPasswordUppercase
	}
	if !strings.ContainsAny(s, "0123456789") {
		return ErrPasswordDigit
	}
	return nil
}

// OTPCode reports whether s is a complete 6-digit code.
func OTPCode(s string) bool {
	return reOTP.MatchString(s)
}

// Sanitize escapes HTML-significant characters in free-text input.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}
