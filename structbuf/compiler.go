package structbuf

import (
	"go.uber.org/zap"

	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/layout"
	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/types"
)

// Compiler turns layout specifications into immutable layouts. Each
// Compile lays the spec out from scratch: an element struct repeated within
// one spec is laid out once, but nothing is remembered between calls, so a
// spec changed after compiling compiles to its new layout. Safe for
// concurrent use.
type Compiler struct{}

func NewCompiler() *Compiler {
	return &Compiler{}
}

var defaultCompiler = NewCompiler()

// DefaultCompiler returns the compiler used when no WithCompiler option is given.
func DefaultCompiler() *Compiler {
	return defaultCompiler
}

// Compile lays out spec. The result is shared by every record built from it
// and does not follow later changes to spec.
func (c *Compiler) Compile(spec *Struct, uniform bool) (*Layout, error) {
	info, err := layout.NewCalculator().Record(spec, uniform)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		spec:    spec,
		fields:  info.Fields,
		index:   make(map[string]int, len(info.Fields)),
		groups:  make(map[string]struct{}),
		size:    info.Size,
		align:   info.Align,
		uniform: uniform,
	}
	for i := range l.fields {
		path := l.fields[i].Path
		l.index[types.JoinPath(path)] = i
		for n := 1; n < len(path); n++ {
			l.groups[types.JoinPath(path[:n])] = struct{}{}
		}
	}

	Logger().Debug("record compiled",
		zap.Int("fields", len(l.fields)),
		zap.Uint32("size", l.size),
		zap.Uint32("align", l.align),
		zap.Bool("uniform", uniform),
	)
	return l, nil
}

// Layout is a compiled, immutable record layout: ordered leaf fields, the
// path index and the padded size.
type Layout struct {
	spec    *Struct
	index   map[string]int
	groups  map[string]struct{}
	fields  []types.Field
	size    uint32
	align   uint32
	uniform bool
}

// Size returns the padded byte size of the record.
func (l *Layout) Size() uint32 { return l.size }

// Align returns the record alignment, including the uniform floor.
func (l *Layout) Align() uint32 { return l.align }

// Uniform reports whether the 16-byte uniform floor was applied.
func (l *Layout) Uniform() bool { return l.uniform }

// Spec returns the specification the layout was compiled from. Changes made
// to it after compiling are not reflected in the layout.
func (l *Layout) Spec() *Struct { return l.spec }

// Len returns the number of leaf fields.
func (l *Layout) Len() int { return len(l.fields) }

// Lookup resolves a path to its field descriptor. Segments are joined with
// '.', so Lookup("a.b") and Lookup("a", "b") are equivalent.
func (l *Layout) Lookup(path ...string) (Field, bool) {
	f := l.field(types.JoinPath(path))
	if f == nil {
		return Field{}, false
	}
	return cloneField(f), true
}

// Fields returns copies of all leaf descriptors in layout order.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	for i := range l.fields {
		out[i] = cloneField(&l.fields[i])
	}
	return out
}

func (l *Layout) field(key string) *types.Field {
	i, ok := l.index[key]
	if !ok {
		return nil
	}
	return &l.fields[i]
}

func cloneField(f *types.Field) Field {
	c := *f
	c.Path = append([]string(nil), f.Path...)
	return c
}
