package asynctree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	manifest "github.com/hanpama/asynctree/manifest"
	tree "github.com/hanpama/asynctree/tree"
)

// countingResolvable builds a resolvable whose resolver counts invocations
// and renders a single text leaf.
func countingResolvable(t *testing.T, policy tree.Policy, name string, calls *int, children ...*tree.Element) *tree.Resolvable {
	t.Helper()
	r, err := NewResolvable(tree.Spec{
		DisplayName: name,
		Policy:      policy,
		Resolve: func(ctx context.Context) (any, error) {
			*calls++
			c := tree.ComponentFunc(func(props tree.Props) []*tree.Element {
				return append([]*tree.Element{tree.Text(name)}, children...)
			})
			return c, nil
		},
	})
	require.NoError(t, err)
	return r
}

// The two-pass lifecycle: a server pass resolves render and boundary nodes
// and emits a manifest; a client pass over the same declaration rehydrates
// from it without invoking any resolver again; deferred and boundary-nested
// nodes finish through the standalone render path.
func TestProcess_TwoPassLifecycle(t *testing.T) {
	var aCalls, bCalls, cCalls, dCalls int
	a := countingResolvable(t, tree.PolicyRender, "A", &aCalls)
	b := countingResolvable(t, tree.PolicyDefer, "B", &bCalls)
	d := countingResolvable(t, tree.PolicyRender, "D", &dCalls)
	c := countingResolvable(t, tree.PolicyBoundary, "C", &cCalls, tree.Async(d, nil))

	declare := func() *tree.Element {
		return tree.Fragment(
			tree.Async(a, nil),
			tree.Async(b, nil),
			tree.Async(c, nil),
		)
	}

	// Server pass.
	server, err := Process(context.Background(), declare())
	require.NoError(t, err)
	require.Empty(t, server.Errors)
	require.Equal(t, manifest.AttachmentKey, server.AttachmentKey)
	require.Equal(t, "ASYNC_COMPONENTS_STATE", server.AttachmentKey)

	require.Equal(t, 1, aCalls)
	require.Equal(t, 0, bCalls, "deferred node must not resolve during the walk")
	require.Equal(t, 1, cCalls)
	require.Equal(t, 0, dCalls, "the boundary at C must shield D")

	require.Equal(t, 2, server.Manifest.Len())
	for i, e := range server.Manifest.Entries {
		require.Equal(t, i, e.Index)
		require.Equal(t, manifest.OriginFresh, e.Source)
		require.True(t, e.Resolved)
	}

	raw, err := manifest.EncodeJSON(server.Manifest)
	require.NoError(t, err)

	// Client pass over a fresh declaration of the same tree.
	client, err := Process(context.Background(), declare(), WithManifest(raw))
	require.NoError(t, err)
	require.Empty(t, client.Errors)

	require.Equal(t, 1, aCalls, "rehydration must not re-invoke A")
	require.Equal(t, 1, cCalls, "rehydration must not re-invoke C")
	require.Equal(t, 2, client.Manifest.Len())
	for _, e := range client.Manifest.Entries {
		require.Equal(t, manifest.OriginRehydrated, e.Source)
	}

	// B resolves standalone when the host framework renders it.
	bNode := client.Tree.Children[1].Instance
	require.Equal(t, tree.StatePending, bNode.State())
	require.NoError(t, bNode.Resolve(context.Background()))
	require.Equal(t, 1, bCalls)
	out, err := bNode.Render(nil)
	require.NoError(t, err)
	require.Equal(t, "B", out[0].Text)

	// D, shielded by the boundary, resolves the same way on the client.
	dNode := d.NewNode()
	require.NoError(t, dNode.Resolve(context.Background()))
	require.Equal(t, 1, dCalls)
}

func TestProcess_NilRoot(t *testing.T) {
	_, err := Process(context.Background(), nil)
	require.Error(t, err)
}

func TestProcess_MalformedManifestDegradesToFresh(t *testing.T) {
	calls := 0
	a := countingResolvable(t, tree.PolicyRender, "A", &calls)

	res, err := Process(context.Background(), tree.Fragment(tree.Async(a, nil)),
		WithManifest([]byte("<!doctype html>")))
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, 1, calls, "malformed state must fall back to fresh resolution")
	require.Equal(t, manifest.OriginFresh, res.Manifest.Entries[0].Source)
}

func TestProcess_BinaryManifestRoundTrip(t *testing.T) {
	calls := 0
	a := countingResolvable(t, tree.PolicyRender, "A", &calls)
	declare := func() *tree.Element { return tree.Fragment(tree.Async(a, nil)) }

	server, err := Process(context.Background(), declare())
	require.NoError(t, err)
	raw, err := manifest.EncodeBinary(server.Manifest)
	require.NoError(t, err)

	client, err := Process(context.Background(), declare(), WithBinaryManifest(raw))
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, manifest.OriginRehydrated, client.Manifest.Entries[0].Source)
}
