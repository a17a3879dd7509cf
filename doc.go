// Package webgpudemos provides the buffer layout engine behind the WebGPU
// demo gallery.
//
// The gallery's simulations (cellular automata, slime-mold agents, a rotating
// triangle) all talk to their shaders through uniform and storage buffers.
// This module computes byte-exact WGSL layouts for those buffers and gives
// typed field access into a single backing byte slice per record.
//
// # Architecture Overview
//
//	webgpudemos/         Root package with the Sink interface
//	├── structbuf/       Layout compiler, field index and typed accessors
//	│   └── presets/     Record shapes used by the demos
//	├── sink/            In-memory and wazero linear memory sinks
//	├── gpu/             WebGPU buffer sink (cogentcore/webgpu)
//	├── errors/          Structured error types for debugging
//	└── cmd/layout/      Layout inspection CLI
//
// # Quick Start
//
//	spec := structbuf.NewStruct().
//		Add("time", structbuf.F32).
//		Add("color", structbuf.Vec4f)
//
//	rec, err := structbuf.New(spec, structbuf.WithUniform())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := rec.Set("color", []float32{1, 0, 0, 1}); err != nil {
//	    log.Fatal(err)
//	}
//	rec.Upload(queueSink) // writes rec.Bytes() at offset 0
//
// # Layout Rules
//
// Offsets follow the WGSL alignment rules: vec3 aligns to 16, structs round
// up to their largest member alignment, array elements are at least 16 bytes
// apart, and uniform records are padded to a multiple of 16.
//
// # Thread Safety
//
// Compilers are safe for concurrent use. A Record is not: concurrent writes
// to the same record must be serialized by the caller. Separate records
// share no mutable state.
package webgpudemos
