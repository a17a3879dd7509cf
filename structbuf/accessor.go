package structbuf

import (
	"fmt"
	"math"

	"github.com/isaiahaiasi/webgpu-demos/errors"
	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/abi"
	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/types"
)

func (r *Record) resolve(phase errors.Phase, path []string) (*types.Field, error) {
	f := r.layout.field(types.JoinPath(path))
	if f == nil {
		return nil, errors.FieldUnknown(phase, path)
	}
	return f, nil
}

// Get reads a field. Scalars are returned as float32, int32 or uint32
// according to the field type; vectors and matrices as a freshly allocated
// []float32, []int32 or []uint32 that never aliases the record.
func (r *Record) Get(path ...string) (any, error) {
	f, err := r.resolve(errors.PhaseDecode, path)
	if err != nil {
		return nil, err
	}

	if f.IsScalar() {
		w := f.Word(0)
		switch f.Scalar {
		case types.KindI32:
			return r.i32[w], nil
		case types.KindU32:
			return r.u32[w], nil
		default:
			return r.f32[w], nil
		}
	}

	switch f.Scalar {
	case types.KindI32:
		return gather(r.i32, f), nil
	case types.KindU32:
		return gather(r.u32, f), nil
	default:
		return gather(r.f32, f), nil
	}
}

// Float32 reads a scalar f32 field.
func (r *Record) Float32(path ...string) (float32, error) {
	return scalarOf(r, r.f32, types.KindF32, path)
}

// Int32 reads a scalar i32 field.
func (r *Record) Int32(path ...string) (int32, error) {
	return scalarOf(r, r.i32, types.KindI32, path)
}

// Uint32 reads a scalar u32 field.
func (r *Record) Uint32(path ...string) (uint32, error) {
	return scalarOf(r, r.u32, types.KindU32, path)
}

// Float32s reads a float vector or matrix field into a new slice.
// Matrices are returned column-major without column padding.
func (r *Record) Float32s(path ...string) ([]float32, error) {
	return vectorOf(r, r.f32, types.KindF32, path)
}

// Int32s reads an i32 vector field into a new slice.
func (r *Record) Int32s(path ...string) ([]int32, error) {
	return vectorOf(r, r.i32, types.KindI32, path)
}

// Uint32s reads a u32 vector field into a new slice.
func (r *Record) Uint32s(path ...string) ([]uint32, error) {
	return vectorOf(r, r.u32, types.KindU32, path)
}

func scalarOf[T any](r *Record, view []T, kind types.Kind, path []string) (T, error) {
	var zero T
	f, err := r.resolve(errors.PhaseDecode, path)
	if err != nil {
		return zero, err
	}
	if !f.IsScalar() || f.Scalar != kind {
		return zero, errors.TypeMismatch(errors.PhaseDecode, path, fmt.Sprintf("%T", zero), f.Tag)
	}
	return view[f.Word(0)], nil
}

func vectorOf[T any](r *Record, view []T, kind types.Kind, path []string) ([]T, error) {
	f, err := r.resolve(errors.PhaseDecode, path)
	if err != nil {
		return nil, err
	}
	if f.IsScalar() || f.Scalar != kind {
		return nil, errors.TypeMismatch(errors.PhaseDecode, path, fmt.Sprintf("[]%T", *new(T)), f.Tag)
	}
	return gather(view, f), nil
}

func gather[T any](view []T, f *types.Field) []T {
	out := make([]T, f.Components)
	if f.Contiguous() {
		w := f.Word(0)
		copy(out, view[w:w+f.Components])
		return out
	}
	for i := range out {
		out[i] = view[f.Word(i)]
	}
	return out
}

func scatter[T any](view []T, f *types.Field, values []T) {
	if f.Contiguous() {
		copy(view[f.Word(0):], values)
		return
	}
	for i, v := range values {
		view[f.Word(i)] = v
	}
}

// Set writes value to the field at path (dot-separated). Scalar fields take
// a single number; vector and matrix fields take a numeric slice or array
// with exactly as many components as the type. The value is validated in
// full before anything is written.
func (r *Record) Set(path string, value any) error {
	f := r.layout.field(path)
	if f == nil {
		return errors.FieldUnknown(errors.PhaseEncode, splitKey(path))
	}
	return r.set(f, value)
}

// SetAt is Set with the path given as segments.
func (r *Record) SetAt(path []string, value any) error {
	f, err := r.resolve(errors.PhaseEncode, path)
	if err != nil {
		return err
	}
	return r.set(f, value)
}

func (r *Record) set(f *types.Field, value any) error {
	if f.IsScalar() {
		if !abi.IsNumber(value) {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(f.Path...).
				GoType(abi.TypeName(value)).
				WGSLType(f.Tag).
				Detail("expected a single number").
				Build()
		}
		bits, err := encodeComponent(f, value)
		if err != nil {
			return err
		}
		r.u32[f.Word(0)] = bits
		return nil
	}

	if abi.IsNumber(value) {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(f.Path...).
			GoType(abi.TypeName(value)).
			WGSLType(f.Tag).
			Detail("expected %d components, got a scalar", f.Components).
			Build()
	}

	switch v := value.(type) {
	case []float32:
		if f.Scalar == types.KindF32 {
			return setTyped(r.f32, f, v)
		}
	case []int32:
		if f.Scalar == types.KindI32 {
			return setTyped(r.i32, f, v)
		}
	case []uint32:
		if f.Scalar == types.KindU32 {
			return setTyped(r.u32, f, v)
		}
	}

	seq, ok := abi.Sequence(value)
	if !ok {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(f.Path...).
			GoType(abi.TypeName(value)).
			WGSLType(f.Tag).
			Detail("expected a numeric sequence").
			Build()
	}
	if len(seq) != f.Components {
		return errors.ComponentCountMismatch(errors.PhaseEncode, f.Path, f.Tag, len(seq), f.Components)
	}

	words := make([]uint32, len(seq))
	for i, c := range seq {
		bits, err := encodeComponent(f, c)
		if err != nil {
			return err
		}
		words[i] = bits
	}
	scatter(r.u32, f, words)
	return nil
}

func setTyped[T any](view []T, f *types.Field, values []T) error {
	if len(values) != f.Components {
		return errors.ComponentCountMismatch(errors.PhaseEncode, f.Path, f.Tag, len(values), f.Components)
	}
	scatter(view, f, values)
	return nil
}

// encodeComponent converts one number to the raw bits of the field's
// scalar kind.
func encodeComponent(f *types.Field, value any) (uint32, error) {
	var (
		bits uint32
		ok   bool
	)
	switch f.Scalar {
	case types.KindI32:
		var v int32
		v, ok = abi.CoerceToInt32(value)
		bits = uint32(v)
	case types.KindU32:
		bits, ok = abi.CoerceToUint32(value)
	default:
		var v float32
		v, ok = abi.CoerceToFloat32(value)
		bits = math.Float32bits(v)
	}
	if !ok {
		return 0, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(f.Path...).
			GoType(abi.TypeName(value)).
			WGSLType(f.Tag).
			Value(value).
			Detail("value %v is not representable as %s", value, f.Scalar).
			Build()
	}
	return bits, nil
}
