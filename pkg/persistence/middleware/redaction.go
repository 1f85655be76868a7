package middleware

import (
	"context"
	"regexp"

	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/ports"
)

type redactionMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// DefaultRedactionPatterns cover the secrets provisioners put into creation
// details.
func DefaultRedactionPatterns() []string {
	return []string{"private_key", "password", "connection_string", "primary_key"}
}

// NewRedactionMiddleware creates a middleware that masks creation-detail
// values whose keys match the patterns before persisting. Secrets surface
// once in the conversation turn and are never written at rest; the
// in-memory session the engine holds keeps the real values.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, sess *domain.Session) error {
	cloned := sess.Clone()

	if cloned.LastCreated != nil {
		maskStringMap(cloned.LastCreated.Details, m.patterns)
	}
	maskMap(cloned.Config, m.patterns)

	return m.next.Save(ctx, cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.Session, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func maskStringMap(m map[string]string, patterns []*regexp.Regexp) {
	for k := range m {
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = "***"
				break
			}
		}
	}
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		// Check key against patterns
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = "***"
				break
			}
		}

		// Recurse if map
		if subMap, ok := v.(map[string]any); ok {
			maskMap(subMap, patterns)
		}
	}
}
