package jwt

import "github.com/google/uuid"

// NewJTI returns a fresh random identifier suitable for use as a "jti"
// (JWT ID) claim, per RFC 7519 section 4.1.7
// (https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.7).
func NewJTI() string {
	return uuid.NewString()
}
