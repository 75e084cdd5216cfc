package security

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matthewhartstonge/argon2"
)

// HashPassword hashes a plaintext password with argon2id using the library defaults.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()

	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether the plaintext password matches the encoded hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

// specialCharacters is the set accepted by the "special character" rule.
const specialCharacters = `!@#$%^&*()_+-=[]{}|;:'",.<>/?~` + "`"

// ValidateStrength checks a candidate password against the account password
// policy. Rules are checked in order and the first unmet rule is reported;
// the reason is user-facing guidance and safe to surface verbatim.
func ValidateStrength(password string) (bool, string) {
	if utf8.RuneCountInString(password) < 8 {
		return false, "password must be at least 8 characters long"
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialCharacters, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return false, "password must contain an uppercase letter"
	}
	if !hasLower {
		return false, "password must contain a lowercase letter"
	}
	if !hasDigit {
		return false, "password must contain a digit"
	}
	if !hasSpecial {
		return false, "password must contain a special character"
	}

	return true, ""
}
