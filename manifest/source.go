package manifest

// Rehydration is the index-addressable lookup a walk consults to seed nodes
// from a previous pass. Each index is consumable at most once; a consumed
// entry is removed so double-seeding cannot occur.
//
// Rehydration is scoped to a single walk and is not safe for concurrent use,
// matching the walk's single-owner model.
type Rehydration struct {
	entries map[int]Entry
}

// FromManifest builds a rehydration lookup from a decoded manifest. A nil
// manifest yields an empty lookup.
func FromManifest(m *Manifest) *Rehydration {
	r := &Rehydration{entries: make(map[int]Entry)}
	if m == nil {
		return r
	}
	for _, e := range m.Entries {
		r.entries[e.Index] = e
	}
	return r
}

// ParseJSON builds a rehydration lookup from raw JSON manifest bytes.
// Absent or malformed input degrades to an empty lookup rather than an
// error, so a first visit without server state behaves as a purely
// client-driven pass.
func ParseJSON(raw []byte) *Rehydration {
	if len(raw) == 0 {
		return FromManifest(nil)
	}
	m, err := DecodeJSON(raw)
	if err != nil {
		return FromManifest(nil)
	}
	return FromManifest(m)
}

// ParseBinary is ParseJSON for the CBOR encoding.
func ParseBinary(raw []byte) *Rehydration {
	if len(raw) == 0 {
		return FromManifest(nil)
	}
	m, err := DecodeBinary(raw)
	if err != nil {
		return FromManifest(nil)
	}
	return FromManifest(m)
}

// Consume removes and returns the entry at index, if present and not yet
// consumed.
func (r *Rehydration) Consume(index int) (Entry, bool) {
	if r == nil || len(r.entries) == 0 {
		return Entry{}, false
	}
	e, ok := r.entries[index]
	if ok {
		delete(r.entries, index)
	}
	return e, ok
}

// Empty reports whether no unconsumed entries remain.
func (r *Rehydration) Empty() bool {
	return r == nil || len(r.entries) == 0
}
