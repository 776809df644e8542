package walker

import (
	"fmt"

	tree "github.com/hanpama/asynctree/tree"
)

// Path locates a node within the walked tree: int elements are child
// positions, string elements are resolvable display names.
type Path []PathElement

// PathElement is one step of a Path.
type PathElement any

func (p Path) String() string {
	out := ""
	for i, elem := range p {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				out += "."
			}
			out += v
		case int:
			out += fmt.Sprintf("[%d]", v)
		}
	}
	return out
}

func appendPath(p Path, elem PathElement) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = elem
	return next
}

// WalkError is a located failure recorded during a walk. Walk errors do not
// abort the walk; they accumulate on the Result.
type WalkError struct {
	Message string
	Path    Path
}

func (e WalkError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return e.Message + " at " + e.Path.String()
}

// Result is the outcome of one walk: the decorated tree and any located
// errors from fresh resolution failures.
type Result struct {
	Tree   *tree.Element
	Errors []WalkError
}
