package webgpudemos

// Sink receives finished record bytes, typically a GPU queue write or a
// WASM linear memory region.
type Sink interface {
	WriteBuffer(offset uint64, data []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(offset uint64, data []byte) error

// WriteBuffer calls f(offset, data).
func (f SinkFunc) WriteBuffer(offset uint64, data []byte) error {
	return f(offset, data)
}
