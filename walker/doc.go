// Package walker implements the depth-first tree walk that discovers
// resolvable nodes, resolves them according to their declared policy, and
// records their outcomes in a walk-scoped registry.
//
// # Execution model
//
// The walk is a pre-order, depth-first traversal driven on one goroutine.
// At each node:
//
//   - Text elements are kept as-is.
//   - Fragment elements recurse into their declared children in order.
//   - Host elements obtain child output through the host lifecycle (the
//     optional mount hook, then render) and recurse into it in order.
//   - Resolvable elements are classified by policy. PolicyDefer nodes are
//     skipped entirely: no resolution, no descent, no registry entry, and no
//     manifest consultation (a deferred node can never have contributed an
//     entry on a previous pass). Otherwise, if the rehydration source holds
//     an unconsumed entry at the current traversal index, the node is seeded
//     from it without invoking its resolver. Otherwise the resolver runs and
//     is awaited before the walk moves on.
//
// Each resolution is fully awaited before the next sibling's begins. This
// serializes resolver latency on purpose: it is what makes the registry's
// entry order deterministic and therefore identical between a server pass
// and the corresponding client pass over the same tree shape. Callers who
// want parallel fetching can pre-warm caches behind their resolver closures;
// the walk still awaits them in order.
//
// # Indices
//
// A traversal index is assigned when a node completes resolution, not when
// it is visited, and deferred nodes consume no index. Because resolutions
// are awaited in traversal order, indices equal visit order among resolved
// nodes on every pass.
//
// # Failures
//
// A resolver failure transitions only that node to its failed state: a
// failed entry is recorded at the node's index (keeping indices aligned on
// the next pass), the node's subtree is pruned, and the walk continues over
// unrelated siblings. Failures accumulate on the Result as located errors;
// the walk itself never aborts because of a resolver error. The failed node
// surfaces its error through its own render behavior, where the host's
// error boundary takes over.
//
// # Decoration
//
// The walk returns a decorated clone of the input tree: every visited
// resolvable element carries its walk-created node instance, and elements
// the walk descended through carry the child output obtained along the way.
// A synchronous render pass over the decorated tree needs no further
// asynchronous work.
package walker
