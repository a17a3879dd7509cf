// Package gpu binds records to WebGPU buffers.
//
// A Buffer is sized from a record's layout, created with uniform or storage
// usage to match how the record was compiled, and rewritten through the
// device queue whenever the record changes.
package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/isaiahaiasi/webgpu-demos/errors"
	"github.com/isaiahaiasi/webgpu-demos/structbuf"
)

// Usage returns the buffer usage for a record: uniform records bind as
// uniform buffers, everything else as storage. Both can be written from
// the queue.
func Usage(uniform bool) wgpu.BufferUsage {
	if uniform {
		return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	}
	return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
}

// Buffer is a GPU buffer holding one record.
type Buffer struct {
	label string
	size  uint64
	usage wgpu.BufferUsage
	buf   *wgpu.Buffer
	write func(buf *wgpu.Buffer, offset uint64, data []byte)
}

// NewBuffer creates a buffer on device sized for rec and uploads rec's
// current bytes. extra is OR-ed into the usage, e.g. wgpu.BufferUsageCopySrc
// for read-back.
func NewBuffer(device *wgpu.Device, label string, rec *structbuf.Record, extra wgpu.BufferUsage) (*Buffer, error) {
	usage := Usage(rec.Uniform()) | extra
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(rec.Size()),
		Usage: usage,
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseUpload, errors.KindInvalidData, err, "create buffer "+label)
	}

	queue := device.GetQueue()
	b := newBuffer(label, uint64(rec.Size()), usage, buf, func(buf *wgpu.Buffer, offset uint64, data []byte) {
		queue.WriteBuffer(buf, offset, data)
	})

	Logger().Debug("buffer created",
		zap.String("label", label),
		zap.Uint32("size", rec.Size()),
		zap.Bool("uniform", rec.Uniform()),
	)

	if err := rec.Upload(b); err != nil {
		buf.Release()
		return nil, err
	}
	return b, nil
}

func newBuffer(label string, size uint64, usage wgpu.BufferUsage, buf *wgpu.Buffer, write func(*wgpu.Buffer, uint64, []byte)) *Buffer {
	return &Buffer{
		label: label,
		size:  size,
		usage: usage,
		buf:   buf,
		write: write,
	}
}

// WriteBuffer queues a write of data at offset. Queue writes must be
// 4-byte aligned in both offset and length and stay inside the buffer.
func (b *Buffer) WriteBuffer(offset uint64, data []byte) error {
	if b.write == nil {
		return errors.New(errors.PhaseUpload, errors.KindInvalidData).
			Detail("buffer %q has been released", b.label).
			Build()
	}
	if offset%4 != 0 || len(data)%4 != 0 {
		return errors.New(errors.PhaseUpload, errors.KindInvalidData).
			Detail("unaligned write: offset=%d, length=%d", offset, len(data)).
			Build()
	}
	if offset+uint64(len(data)) > b.size {
		return errors.New(errors.PhaseUpload, errors.KindOutOfBounds).
			Detail("write past end of %q: offset=%d, length=%d, size=%d", b.label, offset, len(data), b.size).
			Build()
	}
	b.write(b.buf, offset, data)
	return nil
}

// Upload writes all of rec. rec must fit the buffer.
func (b *Buffer) Upload(rec *structbuf.Record) error {
	return rec.Upload(b)
}

// Entry returns a bind group entry covering the whole buffer.
func (b *Buffer) Entry(binding uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  b.buf,
		Offset:  0,
		Size:    wgpu.WholeSize,
	}
}

func (b *Buffer) Label() string           { return b.label }
func (b *Buffer) Size() uint64            { return b.size }
func (b *Buffer) Usage() wgpu.BufferUsage { return b.usage }
func (b *Buffer) Raw() *wgpu.Buffer       { return b.buf }

// Release frees the GPU buffer. Later writes fail.
func (b *Buffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
	b.write = nil
}
