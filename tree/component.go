package tree

// Props carries the named values an element forwards to its component.
type Props map[string]any

// Component is the host integration surface for obtaining a node's child
// output. Implementations render synchronously; any asynchronous work
// belongs behind a resolvable node's Resolve, not inside Render.
//
// Render must not mutate props. Returning nil means the node has no child
// output (a leaf from the walker's point of view).
type Component interface {
	Render(props Props) []*Element
}

// Mounter is the optional pre-render lifecycle hook. When a component
// implements it, the walker (and the standalone render path) invokes
// WillMount immediately before Render with the same props.
type Mounter interface {
	WillMount(props Props)
}

// ComponentFunc adapts a plain function to the Component interface.
type ComponentFunc func(props Props) []*Element

// Render implements Component.
func (f ComponentFunc) Render(props Props) []*Element { return f(props) }

// Module is the conventional container a loader returns when the resolved
// payload travels under a default export. A Spec with NormalizeDefault set
// unwraps it to the inner Component.
type Module struct {
	Default Component
}
