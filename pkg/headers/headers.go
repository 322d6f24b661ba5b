// Package headers merges the header sets that make up a single request.
package headers

import "net/http"

// Bag maps a header name to its value. A nil Bag is an empty set.
type Bag map[string]string

// Compose merges base, the derived auth headers and a per-call override into
// a new Bag. Later sets win on key collision: override beats auth beats base.
// Names are compared in canonical MIME form, so "authorization" in an
// override replaces "Authorization" from auth. None of the inputs are
// modified.
func Compose(base, auth, override Bag) Bag {
	out := make(Bag, len(base)+len(auth)+len(override))
	for _, b := range []Bag{base, auth, override} {
		for k, v := range b {
			out[http.CanonicalHeaderKey(k)] = v
		}
	}
	return out
}

// Clone returns a copy of b, or nil if b is nil.
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Apply sets every header in b on h.
func (b Bag) Apply(h http.Header) {
	for k, v := range b {
		h.Set(k, v)
	}
}
