// Package manifest implements the serialization bridge between a server-side
// walk and the client-side pass that rehydrates from it: the ordered entry
// record, its wire encodings, and the index-addressable rehydration lookup.
package manifest

// AttachmentKey is the well-known identifier under which a manifest travels
// to the next pass. A document-templating collaborator embeds the encoded
// manifest under this key and the client bootstrap retrieves it from the
// same key before the first client-side walk.
const AttachmentKey = "ASYNC_COMPONENTS_STATE"

// Origin distinguishes how an entry's node reached its outcome.
type Origin string

const (
	// OriginFresh means the node's resolver executed during the walk.
	OriginFresh Origin = "fresh"
	// OriginRehydrated means the node was seeded from an incoming manifest
	// without invoking its resolver.
	OriginRehydrated Origin = "rehydrated"
)

// Entry records the outcome of one resolved (non-deferred) node. Index is
// assigned when the node completes resolution; because the walk is
// depth-first with each resolution awaited before the next sibling,
// indices equal visit order among resolved nodes. Deferred nodes consume
// no index and contribute no entry.
type Entry struct {
	Index    int    `json:"index"`
	Source   Origin `json:"source"`
	Resolved bool   `json:"resolved"`
	Error    string `json:"error,omitempty"`
}

// Manifest is the ordered, serializable record of one walk. It is produced
// at most once per walk (the registry drain backing it is one-shot) and
// consumed at most once per entry on the next pass.
type Manifest struct {
	Entries []Entry `json:"entries"`
}

// New packages drained registry entries into a manifest.
func New(entries []Entry) *Manifest {
	return &Manifest{Entries: entries}
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}
