// Package asynctree defers loading and rendering of parts of a declarative
// component tree until asynchronous resolution completes, and makes the
// outcome of a server-side pre-pass reproducible on the client without
// re-fetching.
//
// # Architecture
//
//	asynctree/   Process facade tying the walker and manifest bridge together
//	├── tree/     element model, host capability interfaces, resolvable wrapper
//	├── walker/   depth-first walk engine and walk-scoped registry
//	└── manifest/ serializable walk record, wire codecs, rehydration source
//
// # Quick start
//
// Author a resolvable node and a tree containing it:
//
//	profile := tree.MustResolvable(tree.Spec{
//	    DisplayName: "Profile",
//	    Policy:      tree.PolicyRender,
//	    Resolve: func(ctx context.Context) (any, error) {
//	        return loadProfileComponent(ctx)
//	    },
//	})
//	root := tree.Fragment(
//	    tree.Host(header, nil),
//	    tree.Async(profile, tree.Props{"userID": 42}),
//	)
//
// Server pass:
//
//	res, err := asynctree.Process(ctx, root)
//	raw, _ := manifest.EncodeJSON(res.Manifest)
//	// embed raw under res.AttachmentKey in the generated document
//
// Client pass, with the embedded manifest retrieved from the same key:
//
//	res, err := asynctree.Process(ctx, root, asynctree.WithManifest(raw))
//	// resolvers recorded by the server pass are not invoked again
//
// The walk resolves nodes strictly in traversal order, each awaited before
// the next, which is what keeps manifests aligned across passes. Process is
// safe to call concurrently for different trees, but a given tree instance
// is walked at most once per pass.
package asynctree
