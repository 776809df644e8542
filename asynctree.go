package asynctree

import (
	"context"
	"errors"
	"time"

	eventbus "github.com/hanpama/asynctree/internal/eventbus"
	events "github.com/hanpama/asynctree/internal/events"
	walkid "github.com/hanpama/asynctree/internal/walkid"
	manifest "github.com/hanpama/asynctree/manifest"
	tree "github.com/hanpama/asynctree/tree"
	walker "github.com/hanpama/asynctree/walker"

	"go.uber.org/zap"
)

// Result is the outcome of one Process call.
type Result struct {
	// Tree is the decorated tree: every visited resolvable element carries
	// its resolved state, so a synchronous render pass needs no further
	// asynchronous work.
	Tree *tree.Element

	// Manifest is the ordered walk record for the next pass.
	Manifest *manifest.Manifest

	// AttachmentKey is the well-known identifier the manifest travels
	// under. Always manifest.AttachmentKey; carried here so callers need
	// not import the manifest package for embedding.
	AttachmentKey string

	// Errors are located fresh-resolution failures. They do not prevent
	// the rest of the tree from being walked.
	Errors []walker.WalkError
}

type config struct {
	src    *manifest.Rehydration
	logger *zap.Logger
}

// Option configures a Process call.
type Option func(*config)

// WithManifest primes rehydration from raw JSON manifest bytes as produced
// by manifest.EncodeJSON. Absent or malformed bytes degrade to no
// rehydration.
func WithManifest(raw []byte) Option {
	return func(c *config) { c.src = manifest.ParseJSON(raw) }
}

// WithBinaryManifest is WithManifest for the CBOR encoding.
func WithBinaryManifest(raw []byte) Option {
	return func(c *config) { c.src = manifest.ParseBinary(raw) }
}

// WithRehydration primes rehydration from an already-built source.
func WithRehydration(src *manifest.Rehydration) Option {
	return func(c *config) { c.src = src }
}

// WithLogger installs a structured logger on the walk. The default is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// NewResolvable is the authoring factory; see tree.NewResolvable.
func NewResolvable(spec tree.Spec) (*tree.Resolvable, error) {
	return tree.NewResolvable(spec)
}

// Process is the sole orchestration entry point: it instantiates one
// registry, primes it from any supplied manifest, runs the walker over
// root, drains the registry into a manifest, and returns the decorated
// tree together with the manifest and its attachment key.
//
// Process must be invoked at most once per tree instance per pass;
// concurrent walks over the same node instances are not supported.
func Process(ctx context.Context, root *tree.Element, opts ...Option) (*Result, error) {
	if root == nil {
		return nil, errors.New("asynctree: nil root element")
	}
	cfg := config{logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	ctx, _ = walkid.NewContext(ctx)
	start := time.Now()
	eventbus.Publish(ctx, events.WalkStart{Rehydrating: !cfg.src.Empty()})

	reg := walker.NewRegistry()
	w := walker.New(walker.WithLogger(cfg.logger))
	res := w.Walk(ctx, root, reg, cfg.src)
	m := manifest.New(reg.Drain())

	errs := make([]error, len(res.Errors))
	for i := range res.Errors {
		errs[i] = res.Errors[i]
	}
	eventbus.Publish(ctx, events.WalkFinish{
		Entries:  m.Len(),
		Errors:   errs,
		Duration: time.Since(start),
	})

	return &Result{
		Tree:          res.Tree,
		Manifest:      m,
		AttachmentKey: manifest.AttachmentKey,
		Errors:        res.Errors,
	}, nil
}
