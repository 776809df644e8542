package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func componentOf(children ...*Element) Component {
	return ComponentFunc(func(props Props) []*Element { return children })
}

func TestNewResolvable_Validation(t *testing.T) {
	_, err := NewResolvable(Spec{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Resolve")

	_, err = NewResolvable(Spec{
		Resolve: func(ctx context.Context) (any, error) { return nil, nil },
		Policy:  Policy(42),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "policy")

	require.Panics(t, func() { MustResolvable(Spec{}) })
}

func TestNodeResolve_NormalizesDefaultExport(t *testing.T) {
	comp := componentOf(Text("hi"))

	for _, payload := range []any{Module{Default: comp}, &Module{Default: comp}} {
		r, err := NewResolvable(Spec{
			NormalizeDefault: true,
			Resolve:          func(ctx context.Context) (any, error) { return payload, nil },
		})
		require.NoError(t, err)

		n := r.NewNode()
		require.NoError(t, n.Resolve(context.Background()))
		require.Equal(t, StateResolved, n.State())
		require.NotNil(t, n.ResolvedComponent())
	}
}

func TestNodeResolve_RejectsNonComponentPayload(t *testing.T) {
	r, err := NewResolvable(Spec{
		Resolve: func(ctx context.Context) (any, error) { return 42, nil },
	})
	require.NoError(t, err)

	n := r.NewNode()
	err = n.Resolve(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a Component")
	require.Equal(t, StateFailed, n.State())
}

func TestNodeResolve_Reentrancy(t *testing.T) {
	r := MustResolvable(Spec{
		Resolve: func(ctx context.Context) (any, error) { return componentOf(), nil },
	})

	n := r.NewNode()
	require.NoError(t, n.Resolve(context.Background()))
	require.ErrorIs(t, n.Resolve(context.Background()), ErrReentrantResolve)
	require.ErrorIs(t, n.SeedResolved(componentOf()), ErrReentrantResolve)
	require.ErrorIs(t, n.SeedFailed(errors.New("x")), ErrReentrantResolve)
	// The node stays resolved; failed seeding must not regress the state.
	require.Equal(t, StateResolved, n.State())
}

func TestResolvable_PayloadCacheSkipsSecondInvocation(t *testing.T) {
	calls := 0
	r := MustResolvable(Spec{
		Resolve: func(ctx context.Context) (any, error) {
			calls++
			return componentOf(), nil
		},
	})

	first := r.NewNode()
	require.NoError(t, first.Resolve(context.Background()))
	second := r.NewNode()
	require.NoError(t, second.Resolve(context.Background()))

	require.Equal(t, 1, calls, "second instance must resolve from the shared cache")
	require.NotNil(t, first.ResolvedComponent())
	require.NotNil(t, second.ResolvedComponent())
}

func TestResolvable_FailureIsNotCached(t *testing.T) {
	calls := 0
	r := MustResolvable(Spec{
		Resolve: func(ctx context.Context) (any, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("transient")
			}
			return componentOf(), nil
		},
	})

	bad := r.NewNode()
	require.Error(t, bad.Resolve(context.Background()))
	require.False(t, r.NewNode().SeedFromCache(), "a failure must not warm the cache")

	good := r.NewNode()
	require.NoError(t, good.Resolve(context.Background()))
	require.Equal(t, 2, calls)
}

func TestNodeRender_StandaloneBehavior(t *testing.T) {
	fallbackSeen := Props(nil)
	fallback := ComponentFunc(func(props Props) []*Element {
		fallbackSeen = props
		return []*Element{Text("loading")}
	})
	r := MustResolvable(Spec{
		LoadingFallback: fallback,
		Resolve: func(ctx context.Context) (any, error) {
			return componentOf(Text("ready")), nil
		},
	})
	props := Props{"userID": 42}

	// Pending: the fallback renders with the same props.
	n := r.NewNode()
	out, err := n.Render(props)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "loading", out[0].Text)
	require.Equal(t, props, fallbackSeen)

	// Resolved: the resolved component renders with the props forwarded.
	require.NoError(t, n.Resolve(context.Background()))
	out, err = n.Render(props)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "ready", out[0].Text)

	// Failed: the error propagates instead of being swallowed.
	boom := errors.New("boom")
	failed := r.NewNode()
	require.NoError(t, failed.SeedFailed(boom))
	out, err = failed.Render(props)
	require.Nil(t, out)
	require.ErrorIs(t, err, boom)
}

func TestNodeRender_PendingWithoutFallbackRendersNothing(t *testing.T) {
	r := MustResolvable(Spec{
		Resolve: func(ctx context.Context) (any, error) { return componentOf(), nil },
	})
	out, err := r.NewNode().Render(nil)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestRenderComponent_MountHookRunsFirst(t *testing.T) {
	var order []string
	c := hooked{order: &order}
	RenderComponent(c, nil)
	require.Equal(t, []string{"mount", "render"}, order)
}

type hooked struct{ order *[]string }

func (h hooked) WillMount(props Props) { *h.order = append(*h.order, "mount") }

func (h hooked) Render(props Props) []*Element {
	*h.order = append(*h.order, "render")
	return nil
}

func TestDisplayNameAndPolicyStrings(t *testing.T) {
	r := MustResolvable(Spec{
		Resolve: func(ctx context.Context) (any, error) { return componentOf(), nil },
	})
	require.Equal(t, "resolvable", r.DisplayName())
	require.Equal(t, "render", PolicyRender.String())
	require.Equal(t, "boundary", PolicyBoundary.String())
	require.Equal(t, "defer", PolicyDefer.String())
	require.Equal(t, "pending", StatePending.String())
	require.Equal(t, "resolved", StateResolved.String())
	require.Equal(t, "failed", StateFailed.String())
}
