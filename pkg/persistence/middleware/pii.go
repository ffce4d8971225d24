package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// Mask replaces redacted configuration parameter values.
const Mask = "***"

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware masks configuration parameters whose names match any pattern
// before the snapshot reaches the store. Redaction is one way: Load returns the
// masked values.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, key string, state *domain.SavedState) error {
	// Callers keep using their snapshot.
	cloned := state.Clone()

	for k, e := range cloned.Pool {
		m.mask(&e.Routing)
		cloned.Pool[k] = e
	}
	for i := range cloned.BackStack {
		m.mask(&cloned.BackStack[i].Routing)
		for j := range cloned.BackStack[i].Overlays {
			m.mask(&cloned.BackStack[i].Overlays[j])
		}
	}

	return m.next.Save(ctx, key, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, key string) (*domain.SavedState, error) {
	return m.next.Load(ctx, key)
}

func (m *piiMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) mask(r *domain.Routing) {
	for name := range r.Configuration.Params {
		for _, p := range m.patterns {
			if p.MatchString(name) {
				r.Configuration.Params[name] = Mask
				break
			}
		}
	}
}
