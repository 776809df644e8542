package walker

import (
	"sort"

	manifest "github.com/hanpama/asynctree/manifest"
)

// Registry is the walk-scoped record of resolved-node outcomes. It is owned
// by exactly one walk; nothing else mutates it, so it needs no locking.
type Registry struct {
	entries []manifest.Entry
	drained bool
}

// NewRegistry creates an empty registry for one walk.
func NewRegistry() *Registry {
	return &Registry{}
}

// Record appends an entry. The walker records entries at resolution
// completion, so indices arrive in ascending order.
func (r *Registry) Record(e manifest.Entry) {
	r.entries = append(r.entries, e)
}

// Lookup returns the entry recorded at index, if any.
func (r *Registry) Lookup(index int) (manifest.Entry, bool) {
	for _, e := range r.entries {
		if e.Index == index {
			return e, true
		}
	}
	return manifest.Entry{}, false
}

// Len returns the number of recorded entries.
func (r *Registry) Len() int { return len(r.entries) }

// Drain returns all entries in ascending index order and empties the
// registry. Draining is one-shot: a second call returns nil, preventing a
// walk's record from being serialized twice.
func (r *Registry) Drain() []manifest.Entry {
	if r.drained {
		return nil
	}
	r.drained = true
	out := r.entries
	r.entries = nil
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
