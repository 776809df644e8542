// Package events defines the walk lifecycle event payloads published through
// the internal eventbus. Subscribers (telemetry, logging) observe walks
// without coupling the walker to any exporter.
package events

import "time"

// WalkStart is emitted before a walk begins traversal.
type WalkStart struct {
	Rehydrating bool
}

// WalkFinish is emitted after a walk completes and its registry is drained.
type WalkFinish struct {
	Entries  int
	Errors   []error
	Duration time.Duration
}

// ResolveStart is emitted before a node's resolver is invoked or the node is
// seeded from an incoming manifest.
type ResolveStart struct {
	DisplayName string
	Index       int
	Policy      string
}

// ResolveFinish is emitted after a node's resolution completes.
type ResolveFinish struct {
	DisplayName string
	Index       int
	Source      string
	Err         error
	Duration    time.Duration
}
