// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package manifest decodes node-type manifests: files that declare a node
// type's inputs, properties and sampling function without any Go code.
//
// Two formats are accepted and decode to the same Definition:
//
//	# noise.hcl
//	node_type "noise" {
//	  title = "Noise"
//	  input "mask" {}
//	  property "scale" {
//	    type    = float
//	    default = 4
//	    min     = 0
//	    max     = 16
//	    step    = 0.5
//	  }
//	  property "tint" {
//	    type    = color
//	    default = "#ff8800"
//	  }
//	  shader = <<-GLSL
//	    vec4 sample(vec2 uv) { ... }
//	  GLSL
//	}
//
//	# noise.yaml
//	node_types:
//	  - name: noise
//	    title: Noise
//	    inputs: [mask]
//	    properties:
//	      - {name: scale, type: float, default: 4, min: 0, max: 16, step: 0.5}
//	      - {name: tint, type: color, default: "#ff8800"}
//	    shader: |
//	      vec4 sample(vec2 uv) { ... }
//
// Property types are float, int, bool, enum, color and string. Numeric
// properties that omit default, min, max or step get 1, 1, 100 and 1. Enum
// properties require options; their default may be an option or an index.
// Color defaults are a hex string or a list of three or four channels.
package manifest
