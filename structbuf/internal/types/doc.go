// Package types defines the layout specification model and the compiled
// field descriptors produced from it.
//
// # Key Types
//
//   - Descriptor: size/alignment/component table entry for a WGSL primitive
//   - Type: closed union of Primitive, *Struct and Array specifications
//   - Field: a compiled leaf with its absolute offset and path
//
// This package is internal to structbuf.
package types
