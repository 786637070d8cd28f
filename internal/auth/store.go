package auth

import (
	"encoding/json"
	"os"

	"github.com/routelight/routelight/internal/model"
)

// Store holds the credentials loaded from one auth source document.
// It is immutable after Load and safe for concurrent reads, so one
// store serves all concurrent authenticated sessions of a run.
type Store struct {
	credentials []Credential
}

// sourceDocument is the auth file shape: a document with a required
// "cookies" collection. The pointer distinguishes an absent collection
// field (a malformed document) from a present-but-empty one.
type sourceDocument struct {
	Cookies *[]Credential `json:"cookies"`
}

// Load reads and parses the credential source at path.
// It fails with an auth-kind failure when the file is missing, when it
// is not valid JSON, or when the document lacks the "cookies"
// collection field. An empty collection loads successfully: emptiness
// is checked per-route via IsEmpty, because it is a different error to
// the caller ("no cookies present" vs an unreadable source).
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided auth file path is intentional
	if err != nil {
		return nil, model.NewFailure(model.KindAuth, "auth file unreadable").WithCause(err)
	}

	var doc sourceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, model.NewFailure(model.KindAuth, "auth file is not valid JSON").WithCause(err)
	}
	if doc.Cookies == nil {
		return nil, model.NewFailure(model.KindAuth, "auth file has no cookies collection")
	}

	return &Store{credentials: *doc.Cookies}, nil
}

// IsEmpty reports whether the store holds no credentials at all.
func (s *Store) IsEmpty() bool {
	return len(s.credentials) == 0
}

// Len returns the number of stored credentials.
func (s *Store) Len() int {
	return len(s.credentials)
}

// MatchDomain returns every stored credential that applies to
// targetDomain, in source-document order. The returned slice is freshly
// allocated; the store itself is never mutated.
func (s *Store) MatchDomain(targetDomain string) []Credential {
	matched := make([]Credential, 0, len(s.credentials))
	for _, credential := range s.credentials {
		if credential.MatchesDomain(targetDomain) {
			matched = append(matched, credential)
		}
	}
	return matched
}
