// Package jwt implements the core of a JSON Web Token: a mutable token
// object carrying an algorithm tag, optional key material and a claim
// set, together with deterministic compact-serialization encoding and
// verifying decoding, per RFC 7519 (https://datatracker.ietf.org/doc/html/rfc7519).
package jwt
