package walker

import (
	"context"
	"errors"
	"testing"

	manifest "github.com/hanpama/asynctree/manifest"
	tree "github.com/hanpama/asynctree/tree"
)

// stub is a host component returning fixed child output.
type stub struct {
	children []*tree.Element
}

func (s stub) Render(props tree.Props) []*tree.Element { return s.children }

// mountStub records lifecycle invocation order.
type mountStub struct {
	log      *[]string
	name     string
	children []*tree.Element
}

func (m mountStub) WillMount(props tree.Props) { *m.log = append(*m.log, m.name+".mount") }

func (m mountStub) Render(props tree.Props) []*tree.Element {
	*m.log = append(*m.log, m.name+".render")
	return m.children
}

// resolveLog records resolver invocations in order. Walks are
// single-threaded, so no locking is needed.
type resolveLog struct {
	calls []string
}

// resolvable returns a wrapper whose resolver records its invocation and
// resolves to a component with the given child output.
func (l *resolveLog) resolvable(t *testing.T, name string, policy tree.Policy, children ...*tree.Element) *tree.Resolvable {
	t.Helper()
	r, err := tree.NewResolvable(tree.Spec{
		DisplayName: name,
		Policy:      policy,
		Resolve: func(ctx context.Context) (any, error) {
			l.calls = append(l.calls, name)
			return stub{children: children}, nil
		},
	})
	if err != nil {
		t.Fatalf("NewResolvable(%s): %v", name, err)
	}
	return r
}

// failing returns a wrapper whose resolver records its invocation and fails.
func (l *resolveLog) failing(t *testing.T, name string, policy tree.Policy, msg string) *tree.Resolvable {
	t.Helper()
	r, err := tree.NewResolvable(tree.Spec{
		DisplayName: name,
		Policy:      policy,
		Resolve: func(ctx context.Context) (any, error) {
			l.calls = append(l.calls, name)
			return nil, errors.New(msg)
		},
	})
	if err != nil {
		t.Fatalf("NewResolvable(%s): %v", name, err)
	}
	return r
}

// walk runs a fresh walk and returns the result together with the drained
// entries.
func walk(ctx context.Context, root *tree.Element) (*Result, []manifest.Entry) {
	reg := NewRegistry()
	res := New().Walk(ctx, root, reg, nil)
	return res, reg.Drain()
}
