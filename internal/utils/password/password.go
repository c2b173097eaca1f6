package password

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+[]{}|;:,.<>?"

const specialRunes = "!@#$%^&*()-_=+[]{}|;:,.<>?/\\'\"`~"

// IsStrong reports whether a password satisfies the policy: at least 8
// characters with an upper-case letter, a lower-case letter, a digit and
// a symbol.
func IsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case 'A' <= char && char <= 'Z':
			hasUpper = true
		case 'a' <= char && char <= 'z':
			hasLower = true
		case '0' <= char && char <= '9':
			hasDigit = true
		case strings.ContainsRune(specialRunes, char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

// GenerateRandom returns a random password of the given length. Used to
// seed the never-disclosed placeholder credential on accounts created
// through an OAuth provider.
func GenerateRandom(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random password: %w", err)
	}

	out := make([]byte, length)
	for i, b := range randomBytes {
		out[i] = randomCharset[int(b)%len(randomCharset)]
	}
	return string(out), nil
}
