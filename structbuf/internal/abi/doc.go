// Package abi provides alignment arithmetic and numeric value coercion
// shared by the layout compiler and the typed accessors.
//
// # Coercion
//
// Values arrive from Go callers and decoded JSON as any numeric type.
// CoerceToFloat32, CoerceToInt32 and CoerceToUint32 accept every Go numeric
// kind and reject values that would lose integral meaning. Numbers flattens
// slices and arrays of numbers for vector and matrix writes.
//
// This package is internal to structbuf.
package abi
