// Package tree defines the element model shared by the walker and the host
// framework: a tagged-variant element tree, the narrow capability interfaces
// the host must satisfy (Component, Mounter), and the resolvable node
// wrapper produced by NewResolvable.
//
// Elements carry an explicit Kind discriminant so consumers branch on a
// closed tag set instead of probing runtime types. The walker in package
// walker depends on the host framework only through the Component and
// Mounter interfaces declared here.
package tree
