package node

import "errors"

var (
	// ErrNotInitialized is returned by Evaluate when the node has no compiled
	// program, either because Initialize was never called or because it
	// failed.
	ErrNotInitialized = errors.New("node has no compiled program")

	// ErrAlreadyInitialized is returned by a second successful Initialize.
	ErrAlreadyInitialized = errors.New("node is already initialized")

	// ErrDisposed is returned by operations on a disposed node.
	ErrDisposed = errors.New("node is disposed")

	// ErrMissingInput is returned by Evaluate when the resolved inputs lack a
	// declared input slot.
	ErrMissingInput = errors.New("missing resolved input")

	// ErrDuplicateName is returned by Initialize when two inputs or two
	// properties share a name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrEmptyName is returned by Initialize for an unnamed input or property.
	ErrEmptyName = errors.New("empty name")
)
