// Package layout computes WGSL buffer layouts for structbuf specifications.
//
// This package computes leaf field offsets, sizes, alignment and array
// strides per the WGSL memory layout rules. These calculations determine
// how a record is represented in a uniform or storage buffer.
//
// # Layout Rules
//
//   - Primitives: aligned to their own alignment (vec3 aligns to 16)
//   - Structs: members laid out in declaration order with padding; size
//     rounded up to the largest member alignment
//   - Arrays: start aligned to the element alignment; stride is the element
//     size raised to at least 16 and rounded to the element alignment
//   - Uniform records: record alignment raised to at least 16
//
// # Usage
//
//	c := layout.NewCalculator()
//	info, err := c.Record(spec, uniform)
//	// info.Fields, info.Size, info.Align available
//
// This package is internal to structbuf.
package layout
