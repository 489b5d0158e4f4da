// Package shader assembles the vertex and fragment source for a node.
//
// A node author only writes
//
//	vec4 sample(vec2 uv) { ... }
//
// Assemble wraps that body in a fixed layout so every body can use the
// surface size uniform, the shared random functions, its own input samplers
// and its prop_* uniforms without declaring any of them:
//
//	preamble          varying, forward declarations, _textureSize, main()
//	random library    _seed, randomFloat, randomInt, randomBool, randomVec2
//	inputs            uniform sampler2D <input>;      (declaration order)
//	properties        uniform <type> prop_<name>;     (declaration order)
//	#line 0
//	body              verbatim
//
// The input order is also the texture unit order used at evaluation time.
package shader
