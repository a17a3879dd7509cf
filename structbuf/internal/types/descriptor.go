package types

import "sort"

// Descriptor describes the memory footprint of one WGSL primitive type.
// Components are stored column-major; Columns is 1 for scalars and vectors.
type Descriptor struct {
	Tag          string
	Size         uint32
	Align        uint32
	Components   int
	Columns      int
	ColumnStride uint32
	Scalar       Kind
}

// Rows returns the number of components per column.
func (d Descriptor) Rows() int {
	if d.Columns <= 1 {
		return d.Components
	}
	return d.Components / d.Columns
}

// IsScalar reports whether the type holds a single component.
func (d Descriptor) IsScalar() bool {
	return d.Components == 1
}

// IsMatrix reports whether the type has more than one column.
func (d Descriptor) IsMatrix() bool {
	return d.Columns > 1
}

// Contiguous reports whether the components occupy consecutive 4-byte words
// with no inner padding, so they can be bulk-copied in one slice operation.
func (d Descriptor) Contiguous() bool {
	return d.Columns <= 1 || d.ColumnStride == uint32(d.Rows())*4
}

var (
	descriptors = map[string]Descriptor{}
	aliases     = map[string]string{}
)

func init() {
	for _, k := range []Kind{KindF32, KindI32, KindU32} {
		scalar := k.String()
		register(Descriptor{Tag: scalar, Size: 4, Align: 4, Components: 1, Columns: 1, Scalar: k})

		vectors := []Descriptor{
			{Size: 8, Align: 8, Components: 2},
			{Size: 12, Align: 16, Components: 3},
			{Size: 16, Align: 16, Components: 4},
		}
		for _, v := range vectors {
			n := string(rune('0' + v.Components))
			v.Tag = "vec" + n + k.Suffix()
			v.Columns = 1
			v.Scalar = k
			register(v)
			aliases["vec"+n+"<"+scalar+">"] = v.Tag
		}
	}

	matrices := []Descriptor{
		{Tag: "mat2x2f", Size: 16, Align: 8, Components: 4, Columns: 2, ColumnStride: 8},
		{Tag: "mat3x3f", Size: 48, Align: 16, Components: 9, Columns: 3, ColumnStride: 16},
		{Tag: "mat4x4f", Size: 64, Align: 16, Components: 16, Columns: 4, ColumnStride: 16},
	}
	for _, m := range matrices {
		m.Scalar = KindF32
		register(m)
		aliases[m.Tag[:len(m.Tag)-1]+"<f32>"] = m.Tag
	}
}

func register(d Descriptor) {
	descriptors[d.Tag] = d
}

// Lookup resolves a type tag, accepting both the shorthand (vec3f) and the
// long form (vec3<f32>).
func Lookup(tag string) (Descriptor, bool) {
	if canonical, ok := aliases[tag]; ok {
		tag = canonical
	}
	d, ok := descriptors[tag]
	return d, ok
}

// Tags returns every canonical type tag in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(descriptors))
	for tag := range descriptors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
