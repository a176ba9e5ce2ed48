package assistant

import (
	"github.com/mcpsync/mcpsync/internal/errors"
)

// Names lists the supported assistant identifiers in deterministic order.
func Names() []string {
	return []string{"claude", "codex", "cursor", "gemini", "windsurf"}
}

// ValidName reports whether name identifies a supported assistant.
func ValidName(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Registry holds the adapter for every supported assistant. It is built
// once at process start and treated as immutable afterwards, so a single
// value can be shared across concurrent pipeline runs and verification
// tasks without synchronization.
type Registry struct {
	adapters map[string]*Adapter
}

// NewRegistry constructs the registry with all five assistant adapters.
func NewRegistry() *Registry {
	r := &Registry{
		adapters: make(map[string]*Adapter, 5),
	}
	for _, a := range []*Adapter{
		newClaude(),
		newCodex(),
		newCursor(),
		newGemini(),
		newWindsurf(),
	} {
		r.adapters[a.Name()] = a
	}
	return r
}

// Get returns the adapter for the named assistant.
func (r *Registry) Get(name string) (*Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownAssistant, "%q (valid: claude, codex, cursor, gemini, windsurf)", name)
	}
	return a, nil
}

// All returns every adapter in the deterministic order of [Names].
func (r *Registry) All() []*Adapter {
	all := make([]*Adapter, 0, len(r.adapters))
	for _, name := range Names() {
		all = append(all, r.adapters[name])
	}
	return all
}
