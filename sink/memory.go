package sink

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/isaiahaiasi/webgpu-demos/errors"
	"github.com/isaiahaiasi/webgpu-demos/structbuf"
)

// Memory adapts a wazero api.Memory to a record sink. Offsets are relative
// to Base.
type Memory struct {
	Mem  api.Memory
	Base uint32
}

// WrapMemory wraps mem with writes starting at base. Returns nil for a nil
// memory.
func WrapMemory(mem api.Memory, base uint32) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{Mem: mem, Base: base}
}

func (m *Memory) addr(offset uint64) (uint32, bool) {
	a := uint64(m.Base) + offset
	if a > math.MaxUint32 {
		return 0, false
	}
	return uint32(a), true
}

// WriteBuffer writes data at Base+offset.
func (m *Memory) WriteBuffer(offset uint64, data []byte) error {
	a, ok := m.addr(offset)
	if !ok || !m.Mem.Write(a, data) {
		return errors.New(errors.PhaseUpload, errors.KindOutOfBounds).
			Detail("memory write out of bounds: offset=%d, length=%d", uint64(m.Base)+offset, len(data)).
			Build()
	}
	return nil
}

// ReadBuffer copies length bytes starting at Base+offset.
func (m *Memory) ReadBuffer(offset uint64, length uint32) ([]byte, error) {
	a, ok := m.addr(offset)
	var data []byte
	if ok {
		data, ok = m.Mem.Read(a, length)
	}
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Detail("memory read out of bounds: offset=%d, length=%d", uint64(m.Base)+offset, length).
			Build()
	}
	return append([]byte(nil), data...), nil
}

// Pull replaces rec's bytes with the Size() bytes at Base, picking up
// changes a guest made to the shared region.
func (m *Memory) Pull(rec *structbuf.Record) error {
	data, err := m.ReadBuffer(0, rec.Size())
	if err != nil {
		return err
	}
	return rec.CopyFrom(data)
}
