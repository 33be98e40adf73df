package jwt

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/corejwt/corejwt/internal/claimjson"
	"github.com/corejwt/corejwt/jws"
)

var (
	// ErrInvalid is returned for malformed input, a wrong algorithm/key
	// pairing, a signature mismatch, a missing typ header, an unknown
	// algorithm label or a claim parse error. Decode-path failures
	// deliberately collapse onto this single sentinel so a caller cannot
	// use the error to tell which check failed.
	ErrInvalid = errors.New("invalid token")

	// ErrExists is returned by AddGrant/AddGrantInt when the claim name is
	// already present.
	ErrExists = errors.New("claim already exists")
)

// Token is a mutable JWT: an algorithm tag, optional key material and a
// claim set. The zero value is not usable; construct one with New or
// Decode.
type Token struct {
	alg    jws.SignatureAlgorithm
	key    []byte
	claims claimjson.Object
}

// New returns an empty token: alg=none, no key, no claims.
func New() *Token {
	t := &Token{
		alg:    jws.ALG_NONE,
		claims: claimjson.Object{},
	}
	runtime.SetFinalizer(t, (*Token).scrub)
	return t
}

// scrub zeroes the key buffer before releasing it. It is safe to call more
// than once and is registered as t's finalizer so a token that is never
// explicitly Closed still has its key wiped when collected.
func (t *Token) scrub() {
	for i := range t.key {
		t.key[i] = 0
	}
	t.key = nil
}

// Close scrubs t's key and releases its claim tree. It is idempotent.
func (t *Token) Close() {
	t.scrub()
	t.claims = nil
	runtime.SetFinalizer(t, nil)
}

// Dup returns a deep copy of t: an independent key buffer and an
// independent claim tree.
func (t *Token) Dup() (*Token, error) {
	key := make([]byte, len(t.key))
	copy(key, t.key)

	copied := claimjson.DeepCopy(t.claims)
	claims, ok := copied.(claimjson.Object)
	if !ok {
		return nil, fmt.Errorf("%w: claim tree is not an object", ErrInvalid)
	}

	dup := &Token{alg: t.alg, key: key, claims: claims}
	runtime.SetFinalizer(dup, (*Token).scrub)
	return dup, nil
}

// SetAlg sets t's algorithm and key atomically. Any previously held key is
// scrubbed first, regardless of the outcome. alg=none requires an empty
// key; every other algorithm requires a non-empty key. On failure t is
// left at (none, no key) — a deliberate "scrub first, then try" policy
// rather than a partial update.
func (t *Token) SetAlg(alg jws.SignatureAlgorithm, key []byte) error {
	t.scrub()
	t.alg = jws.ALG_NONE

	if alg == jws.ALG_NONE {
		if len(key) != 0 {
			return fmt.Errorf("%w: alg=none requires an empty key", ErrInvalid)
		}
		return nil
	}

	if len(key) == 0 {
		return fmt.Errorf("%w: alg %s requires a non-empty key", ErrInvalid, alg)
	}

	t.key = make([]byte, len(key))
	copy(t.key, key)
	t.alg = alg
	return nil
}

// Alg returns t's current algorithm tag.
func (t *Token) Alg() jws.SignatureAlgorithm {
	return t.alg
}

// AddGrant inserts a string claim. It fails with ErrInvalid if name is
// empty, and with ErrExists if the claim is already present — presence is
// determined the same way GetGrant resolves a value, so a claim already
// populated with a non-string value still counts as a collision.
func (t *Token) AddGrant(name, value string) error {
	if name == "" {
		return fmt.Errorf("%w: claim name must not be empty", ErrInvalid)
	}
	if _, ok := claimjson.GetString(t.claims, name); ok {
		return fmt.Errorf("%w: claim %q", ErrExists, name)
	}
	t.claims[name] = value
	return nil
}

// AddGrantInt inserts an integer claim. Collision is detected the same way
// GetGrantInt resolves a value: a claim whose GetGrantInt already returns
// something other than the -1 sentinel is considered a collision. This
// means a legitimate existing claim value of -1 cannot be detected as a
// collision — a known wrinkle inherited from the sentinel-based accessor,
// not a bug in AddGrantInt itself.
func (t *Token) AddGrantInt(name string, value int64) error {
	if name == "" {
		return fmt.Errorf("%w: claim name must not be empty", ErrInvalid)
	}
	if claimjson.GetInt(t.claims, name) != -1 {
		return fmt.Errorf("%w: claim %q", ErrExists, name)
	}
	t.claims[name] = value
	return nil
}

// AddGrantsJSON parses data as a claim-name-rejecting-duplicates JSON
// object and merges it into t's claims. Unlike AddGrant, existing claims
// are overwritten — this is the bulk-import path, an administrative
// operation distinct from the add-once single-claim API.
func (t *Token) AddGrantsJSON(data []byte) error {
	obj, err := claimjson.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	claimjson.Merge(t.claims, obj)
	return nil
}

// GetGrant returns the named claim as a string and whether it was present.
// A present non-string value is coerced via a compact JSON dump, matching
// the documented (not accidental) behavior of the JSON adapter it's built
// on.
func (t *Token) GetGrant(name string) (string, bool) {
	return claimjson.GetString(t.claims, name)
}

// GetGrantInt returns the named claim as an int64, or the sentinel -1 if
// the claim is absent or not an integer. Callers that must distinguish
// "absent" from "present and -1" should check HasGrant first.
func (t *Token) GetGrantInt(name string) int64 {
	return claimjson.GetInt(t.claims, name)
}

// HasGrant reports whether name is present in t's claims, regardless of
// its value's type.
func (t *Token) HasGrant(name string) bool {
	return claimjson.Has(t.claims, name)
}

// DelGrant removes the named claim. It is a no-op if the claim is absent.
func (t *Token) DelGrant(name string) {
	delete(t.claims, name)
}

// Claims returns a deep copy of t's claim tree; mutating the result has no
// effect on t.
func (t *Token) Claims() map[string]any {
	return claimjson.DeepCopy(t.claims).(claimjson.Object)
}
