// Package structbuf lays out WGSL structs in host memory and reads and
// writes them by field name.
//
// A layout specification is a tree of Primitive tags, nested *Struct values
// and fixed-length Arrays. Compiling it yields an immutable Layout: every
// leaf field with its absolute byte offset, plus the padded record size. A
// Record pairs a Layout with a zeroed backing buffer whose bytes can be
// uploaded to a GPU buffer as they are.
//
// # Memory Layout
//
// Primitive sizes and alignments follow WGSL host-shareable rules:
//
//	Type                Size    Alignment
//	──────────────────────────────────────
//	f32/i32/u32         4       4
//	vec2<T>             8       8
//	vec3<T>             12      16
//	vec4<T>             16      16
//	mat2x2f             16      8
//	mat3x3f             48      16  (three padded vec3 columns)
//	mat4x4f             64      16
//	struct              padded  max member alignment
//	array<E, N>         N*stride  alignment of E
//
// The array stride is max(size(E), 16) rounded up to the alignment of E, so
// array elements always start on a 16-byte boundary. In uniform mode the
// record alignment is raised to 16.
//
// # Usage
//
//	spec := structbuf.NewStruct().
//		Add("viewProj", structbuf.Mat4x4f).
//		Add("position", structbuf.Vec3f).
//		Add("time", structbuf.F32)
//
//	rec, err := structbuf.New(spec, structbuf.WithUniform())
//	if err != nil {
//		return err
//	}
//	_ = rec.Set("time", 1.5)
//	_ = rec.Upload(buffer)
//
// Array slots and struct members are addressed by dot-separated paths such
// as "agents.3.pos". Get copies values out; the only view of the live
// buffer is Bytes.
//
// # Errors
//
// Every failure is an *errors.Error carrying a phase and kind. Set and
// SetAll validate a leaf completely before writing it, so a rejected write
// leaves the field unchanged.
//
// # Key Types
//
//	Struct, Array, Primitive  - layout specification
//	Compiler                  - layout compiler
//	Layout                    - compiled field index
//	Record                    - layout plus backing buffer
//	Batch                     - chained writes with one error
package structbuf
