package sink

import (
	"math"
	"sync"

	"github.com/isaiahaiasi/webgpu-demos/errors"
)

// MaxBufferSize caps Buffer growth at the 32-bit address space shared by
// record sizes and wasm linear memory.
const MaxBufferSize = math.MaxUint32

// Buffer is a growable in-memory sink. Safe for concurrent use.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

// WriteBuffer copies data to offset, growing the buffer as needed. Writes
// ending past MaxBufferSize fail with an out-of-bounds error.
func (b *Buffer) WriteBuffer(offset uint64, data []byte) error {
	if offset > MaxBufferSize || uint64(len(data)) > MaxBufferSize-offset {
		return errors.New(errors.PhaseUpload, errors.KindOutOfBounds).
			Detail("buffer write out of bounds: offset=%d, length=%d", offset, len(data)).
			Build()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	end := int(offset) + len(data)
	if end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}
	copy(b.data[offset:], data)
	b.writes++
	return nil
}

// Bytes returns a copy of the buffer contents.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.data...)
}

// Len returns the buffer length.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Writes returns the number of WriteBuffer calls.
func (b *Buffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = b.data[:0]
	b.writes = 0
}
