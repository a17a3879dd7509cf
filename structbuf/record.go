package structbuf

import (
	"fmt"

	webgpudemos "github.com/isaiahaiasi/webgpu-demos"
	"github.com/isaiahaiasi/webgpu-demos/errors"
)

type options struct {
	compiler *Compiler
	uniform  bool
}

// Option configures record construction.
type Option func(*options)

// WithUniform applies the uniform address space rules: the record
// alignment is raised to 16 and the size padded to a multiple of 16.
func WithUniform() Option {
	return func(o *options) { o.uniform = true }
}

// WithCompiler compiles through c instead of the package default.
func WithCompiler(c *Compiler) Option {
	return func(o *options) { o.compiler = c }
}

// Record is one instance of a compiled layout with its own backing buffer.
// The layout is immutable; only the bytes change. A Record is not safe for
// concurrent writes.
type Record struct {
	layout *Layout
	store
}

// New compiles spec and allocates a zeroed record. Construction either
// fully succeeds or returns an error; no partial record is produced.
func New(spec *Struct, opts ...Option) (*Record, error) {
	o := options{compiler: defaultCompiler}
	for _, opt := range opts {
		opt(&o)
	}

	l, err := o.compiler.Compile(spec, o.uniform)
	if err != nil {
		return nil, err
	}
	return FromLayout(l), nil
}

// MustNew is like New but panics on error. Intended for package-level
// record declarations whose specs are known to be valid.
func MustNew(spec *Struct, opts ...Option) *Record {
	r, err := New(spec, opts...)
	if err != nil {
		panic(fmt.Sprintf("structbuf: %v", err))
	}
	return r
}

// FromLayout allocates a zeroed record for an already compiled layout.
func FromLayout(l *Layout) *Record {
	return &Record{
		layout: l,
		store:  newStore(l.size),
	}
}

// Layout returns the record's compiled layout.
func (r *Record) Layout() *Layout { return r.layout }

// Spec returns the specification the record was compiled from. It can be
// reused as an array element in another specification.
func (r *Record) Spec() *Struct { return r.layout.spec }

// Size returns the padded byte size of the record.
func (r *Record) Size() uint32 { return r.layout.size }

// Uniform reports whether the record was compiled in uniform mode.
func (r *Record) Uniform() bool { return r.layout.uniform }

// Fields returns copies of all leaf descriptors in layout order.
func (r *Record) Fields() []Field { return r.layout.Fields() }

// Lookup resolves a path to its field descriptor.
func (r *Record) Lookup(path ...string) (Field, bool) { return r.layout.Lookup(path...) }

// Bytes returns the live backing buffer, Size() bytes long. The slice
// aliases the record: it is meant to be handed straight to a queue write.
func (r *Record) Bytes() []byte { return r.bytes }

// CopyBytes returns a copy of the backing buffer.
func (r *Record) CopyBytes() []byte {
	return append([]byte(nil), r.bytes...)
}

// CopyFrom replaces the backing buffer contents. data must be exactly
// Size() bytes long.
func (r *Record) CopyFrom(data []byte) error {
	if len(data) != len(r.bytes) {
		return errors.InvalidData(errors.PhaseEncode, nil,
			fmt.Sprintf("got %d bytes, want %d", len(data), len(r.bytes)))
	}
	copy(r.bytes, data)
	return nil
}

// Reset zero-fills the backing buffer.
func (r *Record) Reset() {
	r.zero()
}

// Clone returns a record sharing this layout with an independent copy of
// the bytes.
func (r *Record) Clone() *Record {
	return &Record{
		layout: r.layout,
		store:  r.clone(),
	}
}

// Upload hands the whole record to sink at offset 0.
func (r *Record) Upload(sink webgpudemos.Sink) error {
	if err := sink.WriteBuffer(0, r.bytes); err != nil {
		return errors.Wrap(errors.PhaseUpload, errors.KindInvalidData, err,
			fmt.Sprintf("write %d bytes", len(r.bytes)))
	}
	return nil
}
