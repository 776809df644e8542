package walker

import (
	"context"
	"errors"
	"time"

	eventbus "github.com/hanpama/asynctree/internal/eventbus"
	events "github.com/hanpama/asynctree/internal/events"
	manifest "github.com/hanpama/asynctree/manifest"
	tree "github.com/hanpama/asynctree/tree"

	"go.uber.org/zap"
)

// Walker performs the depth-first walk described in the package
// documentation. A Walker holds only configuration and may be reused;
// per-walk state lives on the registry and rehydration source passed to
// Walk.
type Walker struct {
	logger *zap.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger installs a structured logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Walker) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Walker.
func New(opts ...Option) *Walker {
	w := &Walker{logger: zap.NewNop()}
	for _, o := range opts {
		o(w)
	}
	return w
}

// walkState is the per-walk mutable state threaded through the traversal.
// It is scoped to exactly one Walk call; no module-level state exists.
type walkState struct {
	ctx    context.Context
	reg    *Registry
	src    *manifest.Rehydration
	logger *zap.Logger
	errors []WalkError

	// next is the traversal index the next resolved node will occupy.
	// Deferred nodes do not advance it.
	next int
}

func (s *walkState) addError(msg string, p Path) {
	s.errors = append(s.errors, WalkError{Message: msg, Path: p})
}

// Walk traverses root, resolving resolvable nodes per policy and recording
// their outcomes in reg. src seeds nodes recorded by a previous pass; pass
// an empty rehydration source for a first visit. The returned Result is
// never nil.
//
// Concurrent walks over the same node instances are not supported; each
// call must receive its own registry.
func (w *Walker) Walk(ctx context.Context, root *tree.Element, reg *Registry, src *manifest.Rehydration) *Result {
	if root == nil {
		return &Result{Errors: []WalkError{{Message: "nil root element"}}}
	}
	if reg == nil {
		reg = NewRegistry()
	}
	st := &walkState{ctx: ctx, reg: reg, src: src, logger: w.logger}
	decorated := visit(st, root, Path{})
	return &Result{Tree: decorated, Errors: st.errors}
}

func visit(st *walkState, el *tree.Element, path Path) *tree.Element {
	switch el.Kind {
	case tree.KindText:
		return el
	case tree.KindFragment:
		clone := el.Clone()
		clone.Children = visitAll(st, el.Children, path)
		return clone
	case tree.KindHost:
		clone := el.Clone()
		clone.Output = visitAll(st, tree.RenderComponent(el.Component, el.Props), path)
		return clone
	case tree.KindResolvable:
		return visitResolvable(st, el, path)
	default:
		st.addError("unknown element kind", path)
		return el
	}
}

func visitAll(st *walkState, els []*tree.Element, path Path) []*tree.Element {
	if len(els) == 0 {
		return nil
	}
	out := make([]*tree.Element, len(els))
	for i, child := range els {
		out[i] = visit(st, child, appendPath(path, i))
	}
	return out
}

func visitResolvable(st *walkState, el *tree.Element, path Path) *tree.Element {
	r := el.Resolvable
	p := appendPath(path, r.DisplayName())
	clone := el.Clone()
	node := r.NewNode()
	clone.Instance = node

	policy := r.Policy()
	if policy == tree.PolicyDefer {
		// Left pending for this pass; the node resolves itself through the
		// standalone render path when the client reaches it.
		return clone
	}

	index := st.next
	eventbus.Publish(st.ctx, events.ResolveStart{
		DisplayName: r.DisplayName(),
		Index:       index,
		Policy:      policy.String(),
	})
	start := time.Now()
	entry := resolveNode(st, node, r, index)
	st.next++
	st.reg.Record(entry)
	eventbus.Publish(st.ctx, events.ResolveFinish{
		DisplayName: r.DisplayName(),
		Index:       index,
		Source:      string(entry.Source),
		Err:         node.Err(),
		Duration:    time.Since(start),
	})
	st.logger.Debug("node resolution recorded",
		zap.String("display_name", r.DisplayName()),
		zap.Int("index", index),
		zap.String("source", string(entry.Source)),
		zap.Bool("resolved", entry.Resolved),
	)

	if !entry.Resolved {
		if entry.Source == manifest.OriginFresh {
			st.addError(entry.Error, p)
		}
		// Failure prunes only this subtree; siblings keep walking.
		return clone
	}
	if policy == tree.PolicyBoundary {
		// Descendant resolvable nodes stay pending for the client and
		// contribute no entries.
		return clone
	}
	clone.Output = visitAll(st, tree.RenderComponent(node.ResolvedComponent(), el.Props), p)
	return clone
}

// resolveNode brings node to a terminal state and returns the entry to
// record at index. An unconsumed entry at the current traversal index seeds
// the node without invoking its resolver; a cold payload cache downgrades a
// resolved seed to a fresh resolution rather than marking the node resolved
// with nothing to render.
func resolveNode(st *walkState, node *tree.Node, r *tree.Resolvable, index int) manifest.Entry {
	if seed, ok := st.src.Consume(index); ok {
		if !seed.Resolved {
			_ = node.SeedFailed(errors.New(seed.Error))
			return manifest.Entry{Index: index, Source: manifest.OriginRehydrated, Resolved: false, Error: seed.Error}
		}
		if node.SeedFromCache() {
			return manifest.Entry{Index: index, Source: manifest.OriginRehydrated, Resolved: true}
		}
		st.logger.Warn("rehydration cache miss, resolving fresh",
			zap.String("display_name", r.DisplayName()),
			zap.Int("index", index),
		)
	}
	if err := node.Resolve(st.ctx); err != nil {
		return manifest.Entry{Index: index, Source: manifest.OriginFresh, Resolved: false, Error: err.Error()}
	}
	return manifest.Entry{Index: index, Source: manifest.OriginFresh, Resolved: true}
}
