package jwt

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/corejwt/corejwt/internal/claimjson"
	"github.com/corejwt/corejwt/jws"
)

// EncodeString produces the compact serialization header.payload.signature
// of t. The header is written with typ before alg (per jws.Header's field
// order); typ is omitted entirely for alg=none. The payload is a
// sorted-key compact JSON dump of t's claims, making the output
// byte-identical across calls for identical claim contents.
func (t *Token) EncodeString() (string, error) {
	payload, err := claimjson.Dump(t.claims, false)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	signer, err := signerFor(t.alg, t.key)
	if err != nil {
		return "", err
	}

	header := jws.Header{Algorithm: t.alg}
	if t.alg != jws.ALG_NONE {
		header.Type = "JWT"
	}

	sig, err := jws.Sign(signer, payload, header)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	return sig.Compact(), nil
}

// DebugString renders a non-wire diagnostic form of t: the header JSON,
// a literal "." on its own line, and the claims pretty-printed with
// 4-space indentation and sorted keys. It is never meant to be parsed
// back; use EncodeString for the wire format.
func (t *Token) DebugString() (string, error) {
	header := jws.Header{Algorithm: t.alg}
	if t.alg != jws.ALG_NONE {
		header.Type = "JWT"
	}

	headerJSON, err := json.MarshalIndent(header, "", "    ")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	payload, err := claimjson.Dump(t.claims, true)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	return string(headerJSON) + "\n.\n" + string(payload), nil
}

// Decode parses compact, reconciles its declared algorithm against key,
// verifies its signature when the algorithm isn't none, and returns the
// resulting token. A caller-supplied key together with alg=none is
// rejected — the classic "alg: none" downgrade defense — and every
// alg other than none requires a non-empty key and a case-insensitive
// "JWT" typ header. Every failure on this path collapses to ErrInvalid.
func Decode(compact string, key []byte) (*Token, error) {
	parsed, err := jws.ParseCompact(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	header := parsed.Header()

	if header.Algorithm == jws.ALG_NONE {
		if len(key) != 0 {
			return nil, fmt.Errorf("%w: alg=none must not be verified with a caller-supplied key", ErrInvalid)
		}
	} else {
		if len(key) == 0 {
			return nil, fmt.Errorf("%w: alg %s requires a key", ErrInvalid, header.Algorithm)
		}
		if !strings.EqualFold(header.Type, "JWT") {
			return nil, fmt.Errorf("%w: missing or invalid typ header", ErrInvalid)
		}

		verifier, err := verifierFor(header.Algorithm, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
		}
		if err := parsed.VerifySignature(verifier); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
		}
	}

	claims, err := claimjson.Parse(parsed.Payload())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	t := &Token{alg: header.Algorithm, claims: claims}
	if len(key) > 0 {
		t.key = make([]byte, len(key))
		copy(t.key, key)
	}
	runtime.SetFinalizer(t, (*Token).scrub)

	return t, nil
}
