// Package node implements the unit of the texture graph.
//
// A Node is built from a Descriptor (title, ordered input names, ordered
// properties, sampling function body). Initialize assembles and compiles the
// node's program and allocates its output image; Evaluate binds the upstream
// images and the node's uniforms and draws once into that image.
//
// # Lifecycle
//
//	New ──► Unconfigured ──Initialize──► Dirty ──Evaluate──► Ready
//	                                       ▲                   │
//	                                       └── SetPropertyValue, Invalidate, Resize
//	any state ──Dispose──► Disposed
//
// A freshly initialized node reports StateDirty: its image holds no result
// until the first successful Evaluate.
//
// # Invalidation
//
// Every transition to dirty calls Runtime.Updates.RequestUpdate with the
// node. The orchestrator owns propagation to downstream nodes and decides
// when to evaluate; a node must only be evaluated after the nodes feeding its
// inputs have been evaluated since they were last invalidated.
//
// # Threading
//
// Nodes are not safe for concurrent use. All methods run to completion on the
// goroutine that owns the graphics context.
package node
