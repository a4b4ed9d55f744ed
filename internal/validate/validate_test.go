package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"nguyen.van.a@dacsan.vn",
		"a+tag@sub.domain.co",
	}
	for _, s := range valid {
		assert.True(t, Email(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"userexample.com",
		"user@",
		"@example.com",
		"user@example",
		"user @example.com",
	}
	for _, s := range invalid {
		assert.False(t, Email(s), "expected %q to be invalid", s)
	}
}

func TestPassword(t *testing.T) {
	assert.Equal(t, ErrPasswordShort, Password("Ab1"))
	assert.Equal(t, ErrPasswordUppercase, Password("matkhau123"))
	assert.Equal(t, ErrPasswordDigit, Password("MatKhauManh"))
	assert.NoError(t, Password("MatKhau123"))
}

func TestOTPCode(t *testing.T) {
	assert.True(t, OTPCode("123456"))
	assert.True(t, OTPCode("000000"))

	for _, s := range []string{"", "12345", "1234567", "12345a", "12 456", "12345６"} {
		assert.False(t, OTPCode(s), "expected %q to be rejected", s)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;ch&#39;&amp;&quot;&lt;/b&gt;", Sanitize(`<b>ch'&"</b>`))
	assert.Equal(t, "đặc sản", Sanitize("đặc sản"))
}
