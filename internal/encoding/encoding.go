// Package encoding implements the base64url (no padding) codec used for
// every segment of a compact JWS as specified in RFC 7515 section 2
// (https://datatracker.ietf.org/doc/html/rfc7515#section-2).
package encoding

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidEncoding is returned by Decode when the input contains bytes
// outside the base64url alphabet.
var ErrInvalidEncoding = errors.New("invalid base64url encoding")

// Encode encodes data using base64url with no padding.
func Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode decodes a base64url string. Both padded and unpadded input are
// accepted; any trailing '=' are stripped before decoding so callers do not
// need to know which form a given token segment used.
func Decode(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")

	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidEncoding, err)
	}

	return b, nil
}
