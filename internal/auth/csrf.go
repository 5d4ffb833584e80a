package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/google/uuid"
)

const (
	// CSRFFieldName is the hidden form field carrying the anti-forgery token.
	CSRFFieldName = "__RequestVerificationToken"
	// CSRFHeaderName is accepted for script-issued requests.
	CSRFHeaderName = "X-CSRF-Token"
)

// NewCSRFToken returns a random URL-safe token.
func NewCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// ValidCSRFToken compares the submitted token with the expected one in constant time.
func ValidCSRFToken(expected, submitted string) bool {
	if expected == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) == 1
}
