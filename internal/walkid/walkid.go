// Package walkid assigns a random identifier to each walk and carries it
// through the context, so event subscribers can correlate resolve events
// with the walk that produced them.
package walkid

import (
	"context"
	"math/rand/v2"
)

type key struct{}

// NewContext returns a copy of parent with a new random walk ID stored,
// along with the generated ID.
func NewContext(parent context.Context) (context.Context, int64) {
	id := rand.Int64()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the walk ID from ctx and whether it was present.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}
