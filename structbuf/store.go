package structbuf

import "unsafe"

// store is the record's backing buffer. The byte slice and the three
// numeric views alias one word-aligned allocation; views are in host byte
// order, which is little-endian on every platform WebGPU runs on.
type store struct {
	bytes []byte
	f32   []float32
	i32   []int32
	u32   []uint32
}

func newStore(size uint32) store {
	words := make([]uint32, size/4)
	return viewsOf(words)
}

func viewsOf(words []uint32) store {
	if len(words) == 0 {
		return store{}
	}
	p := unsafe.Pointer(unsafe.SliceData(words))
	n := len(words)
	return store{
		bytes: unsafe.Slice((*byte)(p), n*4),
		f32:   unsafe.Slice((*float32)(p), n),
		i32:   unsafe.Slice((*int32)(p), n),
		u32:   words,
	}
}

func (s *store) clone() store {
	words := make([]uint32, len(s.u32))
	copy(words, s.u32)
	return viewsOf(words)
}

func (s *store) zero() {
	clear(s.u32)
}
