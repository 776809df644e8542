package tree

// Kind is the element discriminant. The set is closed; the walker switches
// over it exhaustively.
type Kind int

const (
	// KindText is a leaf carrying literal content.
	KindText Kind = iota
	// KindFragment groups statically declared children without a component.
	KindFragment
	// KindHost is an ordinary component-backed node.
	KindHost
	// KindResolvable wraps a Resolvable produced by NewResolvable.
	KindResolvable
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFragment:
		return "fragment"
	case KindHost:
		return "host"
	case KindResolvable:
		return "resolvable"
	default:
		return "unknown"
	}
}

// Element is one node of a declarative component tree. Which fields are
// meaningful depends on Kind: Text for KindText, Children for KindFragment,
// Component+Props for KindHost, Resolvable+Props for KindResolvable.
//
// Instance and Output are set only on elements of a decorated tree returned
// by a walk: Instance is the walk-created node holding resolved state, and
// Output is the child output obtained during the walk, so a synchronous
// render pass over the decorated tree needs no further asynchronous work.
type Element struct {
	Kind       Kind
	Text       string
	Component  Component
	Resolvable *Resolvable
	Props      Props
	Children   []*Element

	Instance *Node
	Output   []*Element
}

// Text returns a leaf element with literal content.
func Text(s string) *Element { return &Element{Kind: KindText, Text: s} }

// Fragment groups children under a component-less node. Children keep their
// declaration order.
func Fragment(children ...*Element) *Element {
	return &Element{Kind: KindFragment, Children: children}
}

// Host returns a component-backed element.
func Host(c Component, props Props) *Element {
	return &Element{Kind: KindHost, Component: c, Props: props}
}

// Async returns an element wrapping a resolvable node.
func Async(r *Resolvable, props Props) *Element {
	return &Element{Kind: KindResolvable, Resolvable: r, Props: props}
}

// CloneWithProps returns a shallow copy of e carrying the given props.
// Walk-time decorations (Instance, Output) are not carried over.
func (e *Element) CloneWithProps(props Props) *Element {
	clone := *e
	clone.Props = props
	clone.Instance = nil
	clone.Output = nil
	return &clone
}

// Clone returns a shallow copy of e with its own props preserved.
func (e *Element) Clone() *Element {
	return e.CloneWithProps(e.Props)
}
