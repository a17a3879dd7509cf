package structbuf

import (
	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/types"
)

type (
	Type       = types.Type
	Primitive  = types.Primitive
	Struct     = types.Struct
	Member     = types.Member
	Array      = types.Array
	ScalarKind = types.Kind
)

// Field describes one compiled leaf of a record.
type Field = types.Field

const (
	KindF32 = types.KindF32
	KindI32 = types.KindI32
	KindU32 = types.KindU32
)

const (
	F32     Primitive = "f32"
	I32     Primitive = "i32"
	U32     Primitive = "u32"
	Vec2f   Primitive = "vec2f"
	Vec3f   Primitive = "vec3f"
	Vec4f   Primitive = "vec4f"
	Vec2i   Primitive = "vec2i"
	Vec3i   Primitive = "vec3i"
	Vec4i   Primitive = "vec4i"
	Vec2u   Primitive = "vec2u"
	Vec3u   Primitive = "vec3u"
	Vec4u   Primitive = "vec4u"
	Mat2x2f Primitive = "mat2x2f"
	Mat3x3f Primitive = "mat3x3f"
	Mat4x4f Primitive = "mat4x4f"
)

// NewStruct creates a struct specification from members.
func NewStruct(members ...Member) *Struct {
	return types.NewStruct(members...)
}

// ArrayOf creates a fixed-length array specification.
func ArrayOf(elem Type, length int) Array {
	return types.ArrayOf(elem, length)
}

// TypeTags returns every supported primitive type tag.
func TypeTags() []string {
	return types.Tags()
}
