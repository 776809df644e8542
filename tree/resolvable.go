package tree

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Policy controls how a walk treats a resolvable node.
type Policy int

const (
	// PolicyRender resolves the node during the walk and descends into its
	// resolved output.
	PolicyRender Policy = iota
	// PolicyBoundary resolves the node during the walk but does not descend
	// past it; nested resolvable nodes are left pending for the client.
	PolicyBoundary
	// PolicyDefer skips the node entirely during the walk; it resolves
	// itself through the standalone render path when later rendered.
	PolicyDefer
)

func (p Policy) String() string {
	switch p {
	case PolicyRender:
		return "render"
	case PolicyBoundary:
		return "boundary"
	case PolicyDefer:
		return "defer"
	default:
		return "unknown"
	}
}

func (p Policy) valid() bool {
	return p == PolicyRender || p == PolicyBoundary || p == PolicyDefer
}

// Resolver produces the asynchronous payload for a resolvable node. The
// returned value must be a Component, or a Module (value or pointer) when
// the spec sets NormalizeDefault. Resolvers may block; cancellation is the
// caller's concern via ctx.
type Resolver func(ctx context.Context) (any, error)

// Spec is the user-authored, immutable configuration of a resolvable node.
type Spec struct {
	// Resolve produces the component. Required. It is invoked at most once
	// per node instance per walk; a successful payload is additionally
	// cached on the Resolvable so later instances resolve without invoking
	// it again.
	Resolve Resolver

	// Policy selects the walk behavior. Defaults to PolicyRender.
	Policy Policy

	// LoadingFallback, when non-nil, is rendered with the node's props
	// while the node is pending on the standalone render path. It is never
	// observed during a walk.
	LoadingFallback Component

	// NormalizeDefault unwraps a Module envelope from the resolved payload.
	NormalizeDefault bool

	// DisplayName is cosmetic; it appears in walk errors and telemetry.
	DisplayName string
}

// Resolvable is the shared product of NewResolvable. It is safe to place in
// any number of elements and trees; per-walk state lives on Node instances.
// After the first successful resolution the extracted component is cached
// here, so subsequent instances (including rehydrated ones) obtain it
// without re-invoking the resolver.
type Resolvable struct {
	spec Spec

	mu     sync.Mutex
	cached Component
}

// NewResolvable validates spec and returns the shared wrapper.
func NewResolvable(spec Spec) (*Resolvable, error) {
	if spec.Resolve == nil {
		return nil, errors.New("tree: spec requires a Resolve function")
	}
	if !spec.Policy.valid() {
		return nil, fmt.Errorf("tree: unknown policy %d", int(spec.Policy))
	}
	return &Resolvable{spec: spec}, nil
}

// MustResolvable is NewResolvable that panics on an invalid spec. Intended
// for package-level declarations.
func MustResolvable(spec Spec) *Resolvable {
	r, err := NewResolvable(spec)
	if err != nil {
		panic(err)
	}
	return r
}

// DisplayName returns the cosmetic identifier, or "resolvable" if unset.
func (r *Resolvable) DisplayName() string {
	if r.spec.DisplayName == "" {
		return "resolvable"
	}
	return r.spec.DisplayName
}

// Policy returns the declared walk policy.
func (r *Resolvable) Policy() Policy { return r.spec.Policy }

// Fallback returns the loading fallback component, if any.
func (r *Resolvable) Fallback() Component { return r.spec.LoadingFallback }

// NewNode creates a pending node instance owned by exactly one walk or one
// standalone render sequence. Instances are never shared.
func (r *Resolvable) NewNode() *Node {
	return &Node{owner: r}
}

func (r *Resolvable) cachedComponent() (Component, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached, r.cached != nil
}

func (r *Resolvable) storeCache(c Component) {
	r.mu.Lock()
	if r.cached == nil {
		r.cached = c
	}
	r.mu.Unlock()
}

// resolvePayload invokes the resolver and extracts the component from its
// payload, applying default-export normalization when configured.
func (r *Resolvable) resolvePayload(ctx context.Context) (Component, error) {
	out, err := r.spec.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return extractComponent(out, r.spec.NormalizeDefault)
}

func extractComponent(v any, normalize bool) (Component, error) {
	if normalize {
		switch m := v.(type) {
		case Module:
			v = m.Default
		case *Module:
			if m == nil {
				return nil, errors.New("tree: resolved module is nil")
			}
			v = m.Default
		}
	}
	c, ok := v.(Component)
	if !ok || c == nil {
		return nil, fmt.Errorf("tree: resolved payload %T is not a Component", v)
	}
	return c, nil
}

// State is the node instance lifecycle. There is no transition out of
// StateResolved or StateFailed.
type State int

const (
	StatePending State = iota
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrReentrantResolve reports a resolution attempt on a node whose
// resolution already ran or is still in flight. It indicates a programming
// error in the caller; the walker prevents it by construction.
var ErrReentrantResolve = errors.New("tree: resolve invoked more than once on a node instance")

// Node is a runtime occurrence of a Resolvable within one walk or one
// standalone render sequence. It is not safe for concurrent use; ownership
// is exclusive to the pass that created it.
type Node struct {
	owner    *Resolvable
	state    State
	inFlight bool
	resolved Component
	err      error
}

// State returns the current lifecycle state.
func (n *Node) State() State { return n.state }

// ResolvedComponent returns the extracted component once resolved.
func (n *Node) ResolvedComponent() Component { return n.resolved }

// Err returns the resolution failure once failed.
func (n *Node) Err() error { return n.err }

// Resolvable returns the shared wrapper this node was created from.
func (n *Node) Resolvable() *Resolvable { return n.owner }

// Resolve runs the node's resolution to completion. A warm payload cache on
// the shared Resolvable short-circuits the resolver; otherwise the resolver
// is invoked exactly once. On failure the node transitions to StateFailed
// and the error is returned.
func (n *Node) Resolve(ctx context.Context) error {
	if n.state != StatePending || n.inFlight {
		return ErrReentrantResolve
	}
	if c, ok := n.owner.cachedComponent(); ok {
		n.state = StateResolved
		n.resolved = c
		return nil
	}
	n.inFlight = true
	c, err := n.owner.resolvePayload(ctx)
	n.inFlight = false
	if err != nil {
		n.state = StateFailed
		n.err = err
		return err
	}
	n.owner.storeCache(c)
	n.state = StateResolved
	n.resolved = c
	return nil
}

// SeedResolved transitions a pending node to StateResolved without invoking
// the resolver. Used by the walker when rehydrating from a manifest.
func (n *Node) SeedResolved(c Component) error {
	if n.state != StatePending || n.inFlight {
		return ErrReentrantResolve
	}
	n.state = StateResolved
	n.resolved = c
	return nil
}

// SeedFromCache transitions a pending node to StateResolved using the
// shared payload cache. It reports false and leaves the node pending when
// the cache is cold.
func (n *Node) SeedFromCache() bool {
	if n.state != StatePending || n.inFlight {
		return false
	}
	c, ok := n.owner.cachedComponent()
	if !ok {
		return false
	}
	n.state = StateResolved
	n.resolved = c
	return true
}

// SeedFailed transitions a pending node to StateFailed without invoking the
// resolver.
func (n *Node) SeedFailed(err error) error {
	if n.state != StatePending || n.inFlight {
		return ErrReentrantResolve
	}
	n.state = StateFailed
	n.err = err
	return nil
}

// Render implements the standalone rendering behavior, i.e. how the node
// renders when the host framework reaches it outside a walk. While pending
// it renders the loading fallback (or nothing) with the same props; once
// resolved it renders the resolved component with the original props
// forwarded; once failed it returns the failure for the host's nearest
// error boundary rather than swallowing it.
func (n *Node) Render(props Props) ([]*Element, error) {
	switch n.state {
	case StateResolved:
		return RenderComponent(n.resolved, props), nil
	case StateFailed:
		return nil, n.err
	default:
		if fb := n.owner.spec.LoadingFallback; fb != nil {
			return RenderComponent(fb, props), nil
		}
		return nil, nil
	}
}

// RenderComponent invokes the host lifecycle in order: the optional mount
// hook, then render.
func RenderComponent(c Component, props Props) []*Element {
	if m, ok := c.(Mounter); ok {
		m.WillMount(props)
	}
	return c.Render(props)
}
