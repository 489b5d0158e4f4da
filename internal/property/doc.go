// Package property implements the typed, named settings attached to a node.
//
// A Property pairs a name with a Value. Value is a closed union over the six
// supported kinds (Float, Int, Bool, Enum, Color, String); each variant knows
// how to accept a new Go value, which shader uniform type it maps to, and how
// to push itself into a set of uniforms. Callers never switch on the concrete
// type to bind a property.
//
// Kind to uniform mapping, fixed for every node:
//
//	Float  -> float
//	Int    -> int
//	Bool   -> bool
//	Enum   -> int  (selected index)
//	Color  -> vec4
//	String -> (none, editor-only)
//
// Values are stored as given. Min, Max and Step on numeric kinds describe the
// editing range only and are never enforced by SetValue.
package property
