package structbuf

import (
	"go.bytecodealliance.org/wit"

	"github.com/isaiahaiasi/webgpu-demos/errors"
)

// FromWIT converts a WIT record into a layout specification so host code
// described by a component interface can share a buffer layout with a shader.
//
// Mapping:
//
//	f32, s32, u32               -> f32, i32, u32
//	tuple of 2-4 equal scalars  -> vecNf, vecNi, vecNu
//	tuple of N tuple<f32 x N>   -> matNxNf (N = 2..4, column-major)
//	record                      -> nested struct
//
// Type aliases are followed. Anything else is reported as unsupported.
func FromWIT(t wit.Type) (*Struct, error) {
	r, ok := witRecord(t)
	if !ok {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("top-level WIT type must be a record, got %T", t).
			Build()
	}
	return fromWITRecord(r, nil)
}

func witRecord(t wit.Type) (*wit.Record, bool) {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return nil, false
	}
	switch k := td.Kind.(type) {
	case *wit.Record:
		return k, true
	case wit.Type:
		return witRecord(k)
	}
	return nil, false
}

func fromWITRecord(r *wit.Record, path []string) (*Struct, error) {
	s := NewStruct()
	for _, f := range r.Fields {
		fieldPath := childPath(path, f.Name)
		t, err := fromWITType(f.Type, fieldPath)
		if err != nil {
			return nil, err
		}
		s.Add(f.Name, t)
	}
	return s, nil
}

func fromWITType(t wit.Type, path []string) (Type, error) {
	switch v := t.(type) {
	case wit.F32:
		return F32, nil
	case wit.S32:
		return I32, nil
	case wit.U32:
		return U32, nil
	case *wit.TypeDef:
		switch k := v.Kind.(type) {
		case *wit.Record:
			return fromWITRecord(k, path)
		case *wit.Tuple:
			return fromWITTuple(k, path)
		case wit.Type:
			return fromWITType(k, path)
		}
		return nil, unsupportedWIT(path, v.Kind)
	}
	return nil, unsupportedWIT(path, t)
}

func fromWITTuple(tup *wit.Tuple, path []string) (Type, error) {
	n := len(tup.Types)
	if n < 2 || n > 4 {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("tuple of %d elements has no vector equivalent", n).
			Build()
	}

	elems := make([]Type, n)
	for i, et := range tup.Types {
		e, err := fromWITType(et, path)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	for _, e := range elems[1:] {
		if e != elems[0] {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(path...).
				Detail("tuple elements must share one type").
				Build()
		}
	}

	if tag, ok := elems[0].(Primitive); ok {
		if p, ok := witVector(tag, n); ok {
			return p, nil
		}
	}
	return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
		Path(path...).
		Detail("tuple<%v x %d> has no vector or matrix equivalent", elems[0], n).
		Build()
}

// witVector maps n components of tag to the WGSL vector, or n columns of a
// vecNf to the square matrix.
func witVector(tag Primitive, n int) (Primitive, bool) {
	vectors := map[Primitive][3]Primitive{
		F32:   {Vec2f, Vec3f, Vec4f},
		I32:   {Vec2i, Vec3i, Vec4i},
		U32:   {Vec2u, Vec3u, Vec4u},
		Vec2f: {Mat2x2f, "", ""},
		Vec3f: {"", Mat3x3f, ""},
		Vec4f: {"", "", Mat4x4f},
	}
	row, ok := vectors[tag]
	if !ok || row[n-2] == "" {
		return "", false
	}
	return row[n-2], true
}

func unsupportedWIT(path []string, t any) *errors.Error {
	return errors.New(errors.PhaseCompile, errors.KindUnsupported).
		Path(path...).
		Detail("unsupported WIT type: %T", t).
		Build()
}
