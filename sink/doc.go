// Package sink provides byte destinations for finished records.
//
// A sink receives a record's bytes at a byte offset. Memory writes into a
// WASM linear memory through wazero, so a guest module can read the same
// layout a shader would. Buffer is an in-process sink for tests and tools.
//
//	mem := sink.WrapMemory(mod.ExportedMemory("memory"), 1024)
//	if err := rec.Upload(mem); err != nil {
//		return err
//	}
package sink
