// Package auth provides the credential store for authenticated routes.
//
// The store loads a JSON document of stored browser cookies (the shape
// produced by browser cookie exports) and matches them to a target
// domain during session setup. Matching is deliberately permissive: a
// stored domain matches a target when it equals the target exactly,
// equals the dot-prefixed wildcard form, or is a suffix of the target.
// Over-matching on adversarial domain suffixes is acceptable because
// the credential source is caller-controlled.
//
// SameSite values are preserved verbatim at load time and normalized
// lazily when a credential is consumed, so the raw document content is
// never altered by loading.
package auth
