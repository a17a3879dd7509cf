package structbuf

import (
	"encoding/binary"
	stderrors "errors"
	"math"
	"reflect"
	"testing"

	webgpudemos "github.com/isaiahaiasi/webgpu-demos"
	"github.com/isaiahaiasi/webgpu-demos/errors"
)

func f32At(t *testing.T, b []byte, offset int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(b[offset:]))
}

func TestNew_ScalarThenVec3(t *testing.T) {
	rec, err := New(NewStruct().Add("a", F32).Add("b", Vec3f))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a, _ := rec.Lookup("a")
	b, _ := rec.Lookup("b")
	if a.Offset != 0 || b.Offset != 16 {
		t.Errorf("offsets a=%d b=%d, want 0 and 16", a.Offset, b.Offset)
	}
	if rec.Size() != 32 {
		t.Errorf("Size = %d, want 32", rec.Size())
	}
	if len(rec.Bytes()) != 32 {
		t.Errorf("len(Bytes) = %d, want 32", len(rec.Bytes()))
	}
}

func TestNew_SpecChangedAfterCompile(t *testing.T) {
	spec := NewStruct().Add("a", F32)
	first, err := New(spec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	spec.Add("b", Vec4f)
	second, err := New(spec)
	if err != nil {
		t.Fatalf("New after Add failed: %v", err)
	}
	fresh := MustNew(NewStruct().Add("a", F32).Add("b", Vec4f))

	if second.Size() != fresh.Size() || second.Size() != 32 {
		t.Errorf("Size after Add = %d, want %d", second.Size(), fresh.Size())
	}
	if b, ok := second.Lookup("b"); !ok || b.Offset != 16 {
		t.Errorf("Lookup b = %+v, %v; want offset 16", b, ok)
	}

	if first.Size() != 4 {
		t.Errorf("earlier record Size = %d, want 4", first.Size())
	}
	if _, ok := first.Lookup("b"); ok {
		t.Error("earlier record picked up a field added later")
	}
}

func TestNew_UniformPadding(t *testing.T) {
	spec := NewStruct().Add("value", F32)

	storage, err := New(spec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if storage.Size() != 4 {
		t.Errorf("storage Size = %d, want 4", storage.Size())
	}

	uniform, err := New(spec, WithUniform())
	if err != nil {
		t.Fatalf("New uniform failed: %v", err)
	}
	if uniform.Size() != 16 {
		t.Errorf("uniform Size = %d, want 16", uniform.Size())
	}
	if !uniform.Uniform() || storage.Uniform() {
		t.Error("Uniform flag not carried to the record")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec *Struct
		kind errors.Kind
	}{
		{"nil spec", nil, errors.KindInvalidLayout},
		{"empty spec", NewStruct(), errors.KindInvalidLayout},
		{"unknown tag", NewStruct().Add("x", Primitive("vec5f")), errors.KindUnknownType},
		{"zero length array", NewStruct().Add("x", ArrayOf(F32, 0)), errors.KindInvalidArrayLength},
		{"negative length array", NewStruct().Add("x", ArrayOf(F32, -2)), errors.KindInvalidArrayLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := New(tt.spec)
			if err == nil {
				t.Fatal("expected error")
			}
			if rec != nil {
				t.Error("expected no record on failure")
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustNew(NewStruct())
}

func TestSetGet_Scalars(t *testing.T) {
	rec := MustNew(NewStruct().
		Add("f", F32).
		Add("i", I32).
		Add("u", U32))

	if err := rec.Set("f", 1.5); err != nil {
		t.Fatalf("Set f: %v", err)
	}
	if err := rec.Set("i", -7); err != nil {
		t.Fatalf("Set i: %v", err)
	}
	if err := rec.Set("u", float64(42)); err != nil {
		t.Fatalf("Set u: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"f", float32(1.5)},
		{"i", int32(-7)},
		{"u", uint32(42)},
	}
	for _, tt := range tests {
		got, err := rec.Get(tt.path)
		if err != nil {
			t.Fatalf("Get %s: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Get %s = %v (%T), want %v (%T)", tt.path, got, got, tt.want, tt.want)
		}
	}

	if v, err := rec.Float32("f"); err != nil || v != 1.5 {
		t.Errorf("Float32 = %v, %v", v, err)
	}
	if v, err := rec.Int32("i"); err != nil || v != -7 {
		t.Errorf("Int32 = %v, %v", v, err)
	}
	if v, err := rec.Uint32("u"); err != nil || v != 42 {
		t.Errorf("Uint32 = %v, %v", v, err)
	}
	if binary.LittleEndian.Uint32(rec.Bytes()[4:]) != uint32(0xFFFFFFF9) {
		t.Error("i32 not stored as two's complement")
	}
}

func TestSetGet_Vectors(t *testing.T) {
	rec := MustNew(NewStruct().
		Add("pos", Vec2f).
		Add("cell", Vec3i).
		Add("flags", Vec4u))

	if err := rec.Set("pos", []float64{0.25, -4}); err != nil {
		t.Fatalf("Set pos: %v", err)
	}
	if err := rec.Set("cell", []int32{1, -2, 3}); err != nil {
		t.Fatalf("Set cell: %v", err)
	}
	if err := rec.Set("flags", [4]int{1, 2, 3, 4}); err != nil {
		t.Fatalf("Set flags: %v", err)
	}

	pos, err := rec.Float32s("pos")
	if err != nil || !reflect.DeepEqual(pos, []float32{0.25, -4}) {
		t.Errorf("pos = %v, %v", pos, err)
	}
	cell, err := rec.Int32s("cell")
	if err != nil || !reflect.DeepEqual(cell, []int32{1, -2, 3}) {
		t.Errorf("cell = %v, %v", cell, err)
	}
	flags, err := rec.Uint32s("flags")
	if err != nil || !reflect.DeepEqual(flags, []uint32{1, 2, 3, 4}) {
		t.Errorf("flags = %v, %v", flags, err)
	}
}

func TestSet_ComponentCountMismatch(t *testing.T) {
	rec := MustNew(NewStruct().Add("color", Vec4f))
	before := rec.CopyBytes()

	err := rec.Set("color", []float32{1, 0, 0})
	if err == nil {
		t.Fatal("expected error")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindComponentCountMismatch}) {
		t.Errorf("error = %v, want component count mismatch", err)
	}
	if !reflect.DeepEqual(before, rec.Bytes()) {
		t.Error("rejected write modified the buffer")
	}

	err = rec.Set("color", []any{1, 0, 0})
	if !errors.IsKind(err, errors.KindComponentCountMismatch) {
		t.Errorf("[]any error = %v, want component count mismatch", err)
	}
}

func TestSet_TypeMismatch(t *testing.T) {
	rec := MustNew(NewStruct().
		Add("f", F32).
		Add("u", U32).
		Add("v", Vec3f).
		Add("iv", Vec2i))

	tests := []struct {
		name  string
		path  string
		value any
	}{
		{"string into scalar", "f", "1.0"},
		{"slice into scalar", "f", []float32{1}},
		{"scalar into vector", "v", 1.0},
		{"string into vector", "v", "abc"},
		{"negative into u32", "u", -1},
		{"fraction into u32", "u", 1.5},
		{"fraction into i32 vector", "iv", []float64{1, 2.5}},
		{"non-number element", "v", []any{1, "x", 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := rec.CopyBytes()
			err := rec.Set(tt.path, tt.value)
			if !errors.IsKind(err, errors.KindTypeMismatch) {
				t.Fatalf("error = %v, want type mismatch", err)
			}
			if !reflect.DeepEqual(before, rec.Bytes()) {
				t.Error("rejected write modified the buffer")
			}
		})
	}
}

func TestSet_PartialVectorNotWritten(t *testing.T) {
	rec := MustNew(NewStruct().Add("v", Vec3u))
	if err := rec.Set("v", []uint32{7, 8, 9}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Set("v", []int{1, 2, -3}); err == nil {
		t.Fatal("expected error")
	}
	got, _ := rec.Uint32s("v")
	if !reflect.DeepEqual(got, []uint32{7, 8, 9}) {
		t.Errorf("v = %v, want previous value kept", got)
	}
}

func TestGet_UnknownField(t *testing.T) {
	rec := MustNew(NewStruct().Add("a", F32))

	_, err := rec.Get("nonexistent")
	if err == nil {
		t.Fatal("expected error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error type %T", err)
	}
	if e.Kind != errors.KindFieldUnknown || e.Phase != errors.PhaseDecode {
		t.Errorf("got %s/%s, want decode/field_unknown", e.Phase, e.Kind)
	}
	if !reflect.DeepEqual(e.Path, []string{"nonexistent"}) {
		t.Errorf("Path = %v", e.Path)
	}

	if err := rec.Set("a.b", 1); !errors.IsKind(err, errors.KindFieldUnknown) {
		t.Errorf("Set error = %v, want field unknown", err)
	}
}

func TestGet_TypedMismatch(t *testing.T) {
	rec := MustNew(NewStruct().Add("f", F32).Add("v", Vec2u))

	if _, err := rec.Int32("f"); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("Int32 on f32: %v", err)
	}
	if _, err := rec.Float32s("f"); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("Float32s on f32: %v", err)
	}
	if _, err := rec.Float32s("v"); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("Float32s on vec2u: %v", err)
	}
	if _, err := rec.Uint32("v"); !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Errorf("Uint32 on vec2u: %v", err)
	}
}

func TestGet_DoesNotAlias(t *testing.T) {
	rec := MustNew(NewStruct().Add("v", Vec4f))
	_ = rec.Set("v", []float32{1, 2, 3, 4})

	got, _ := rec.Get("v")
	got.([]float32)[0] = 99

	again, _ := rec.Float32s("v")
	if again[0] != 1 {
		t.Errorf("mutating Get result changed the record: %v", again)
	}
}

func TestRecord_BytesLittleEndian(t *testing.T) {
	rec := MustNew(NewStruct().Add("a", F32).Add("b", Vec3f))
	_ = rec.Set("a", 2)
	_ = rec.Set("b", []float32{1, 2, 3})

	b := rec.Bytes()
	if f32At(t, b, 0) != 2 {
		t.Errorf("a = %v", f32At(t, b, 0))
	}
	for i, want := range []float32{1, 2, 3} {
		if got := f32At(t, b, 16+4*i); got != want {
			t.Errorf("b[%d] = %v, want %v", i, got, want)
		}
	}
	for _, off := range []int{4, 8, 12, 28} {
		if binary.LittleEndian.Uint32(b[off:]) != 0 {
			t.Errorf("padding at %d is not zero", off)
		}
	}
}

func TestMat3x3_ColumnPadding(t *testing.T) {
	rec := MustNew(NewStruct().Add("m", Mat3x3f))
	if rec.Size() != 48 {
		t.Fatalf("Size = %d, want 48", rec.Size())
	}

	values := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if err := rec.Set("m", values); err != nil {
		t.Fatalf("Set: %v", err)
	}

	b := rec.Bytes()
	want := []float32{1, 2, 3, 0, 4, 5, 6, 0, 7, 8, 9, 0}
	for i, w := range want {
		if got := f32At(t, b, 4*i); got != w {
			t.Errorf("word %d = %v, want %v", i, got, w)
		}
	}

	got, err := rec.Float32s("m")
	if err != nil || !reflect.DeepEqual(got, values) {
		t.Errorf("Float32s = %v, %v", got, err)
	}
}

func TestMat4x4_Contiguous(t *testing.T) {
	rec := MustNew(NewStruct().Add("m", Mat4x4f))
	identity := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if err := rec.Set("m", identity); err != nil {
		t.Fatal(err)
	}
	for i, w := range identity {
		if got := f32At(t, rec.Bytes(), 4*i); got != w {
			t.Errorf("word %d = %v, want %v", i, got, w)
		}
	}
}

func TestSet_ArrayElements(t *testing.T) {
	elem := NewStruct().Add("pos", Vec2f).Add("angle", F32)
	rec := MustNew(NewStruct().Add("agents", ArrayOf(elem, 3)))

	if err := rec.Set("agents.2.angle", 0.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := rec.SetAt([]string{"agents", "1", "pos"}, []float32{3, 4}); err != nil {
		t.Fatalf("SetAt: %v", err)
	}

	f, ok := rec.Lookup("agents", "2", "angle")
	if !ok {
		t.Fatal("agents.2.angle not found")
	}
	if f.Offset != 40 {
		t.Errorf("agents.2.angle offset = %d, want 40", f.Offset)
	}
	if !f.IsArray || f.ArrayLength != 3 || f.ArrayStride != 16 {
		t.Errorf("array metadata = %v %d %d", f.IsArray, f.ArrayLength, f.ArrayStride)
	}
	if got := f32At(t, rec.Bytes(), 40); got != 0.5 {
		t.Errorf("agents.2.angle = %v", got)
	}
	if got := f32At(t, rec.Bytes(), 16); got != 3 {
		t.Errorf("agents.1.pos.x = %v", got)
	}

	if _, ok := rec.Lookup("agents", "3", "angle"); ok {
		t.Error("slot past the array length resolved")
	}
}

func TestClone_Independent(t *testing.T) {
	rec := MustNew(NewStruct().Add("a", F32).Add("v", Vec2f))
	_ = rec.Set("a", 1)

	c := rec.Clone()
	if c.Layout() != rec.Layout() {
		t.Error("clone should share the layout")
	}
	if !reflect.DeepEqual(c.Bytes(), rec.Bytes()) {
		t.Error("clone bytes differ")
	}

	_ = c.Set("a", 2)
	_ = rec.Set("v", []float32{5, 6})

	if v, _ := rec.Float32("a"); v != 1 {
		t.Errorf("original a = %v, want 1", v)
	}
	if v, _ := c.Float32s("v"); !reflect.DeepEqual(v, []float32{0, 0}) {
		t.Errorf("clone v = %v, want zeros", v)
	}
}

func TestReset(t *testing.T) {
	rec := MustNew(NewStruct().Add("a", F32).Add("m", Mat2x2f))
	_ = rec.Set("a", 3)
	_ = rec.Set("m", []float32{1, 2, 3, 4})

	rec.Reset()
	for i, b := range rec.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d = %d after Reset", i, b)
		}
	}
	if rec.Size() != 24 {
		t.Errorf("Size changed to %d", rec.Size())
	}
}

func TestCopyBytes_CopyFrom(t *testing.T) {
	rec := MustNew(NewStruct().Add("a", F32).Add("b", U32))
	_ = rec.Set("a", 1.25)
	_ = rec.Set("b", 9)

	snapshot := rec.CopyBytes()
	snapshot[0] ^= 0xFF
	if v, _ := rec.Float32("a"); v != 1.25 {
		t.Error("CopyBytes aliases the record")
	}
	snapshot[0] ^= 0xFF

	other := FromLayout(rec.Layout())
	if err := other.CopyFrom(snapshot); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if v, _ := other.Uint32("b"); v != 9 {
		t.Errorf("b = %d after CopyFrom", v)
	}

	err := other.CopyFrom(snapshot[:4])
	if !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("short CopyFrom error = %v", err)
	}
}

func TestUpload(t *testing.T) {
	rec := MustNew(NewStruct().Add("time", F32), WithUniform())
	_ = rec.Set("time", 4)

	var (
		gotOffset uint64
		gotData   []byte
	)
	sink := webgpudemos.SinkFunc(func(offset uint64, data []byte) error {
		gotOffset = offset
		gotData = append([]byte(nil), data...)
		return nil
	})
	if err := rec.Upload(sink); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotOffset != 0 || len(gotData) != 16 {
		t.Errorf("got offset %d len %d", gotOffset, len(gotData))
	}
	if f32At(t, gotData, 0) != 4 {
		t.Error("uploaded bytes do not hold the value")
	}

	lost := stderrors.New("device lost")
	err := rec.Upload(webgpudemos.SinkFunc(func(uint64, []byte) error { return lost }))
	if !stderrors.Is(err, lost) {
		t.Errorf("Upload error %v does not wrap cause", err)
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseUpload, Kind: errors.KindInvalidData}) {
		t.Errorf("Upload error %v has wrong phase", err)
	}
}

func TestRecord_SpecReuse(t *testing.T) {
	agent := MustNew(NewStruct().Add("pos", Vec2f).Add("vel", Vec2f))
	world := MustNew(NewStruct().
		Add("count", U32).
		Add("agents", ArrayOf(agent.Spec(), 2)))

	f, ok := world.Lookup("agents.1.vel")
	if !ok {
		t.Fatal("agents.1.vel not found")
	}
	if f.Offset != 32 {
		t.Errorf("offset = %d, want 32", f.Offset)
	}
	if world.Size() != 40 {
		t.Errorf("Size = %d, want 40", world.Size())
	}
}

func TestFields_Copies(t *testing.T) {
	rec := MustNew(NewStruct().Add("light", NewStruct().Add("color", Vec3f)))
	fields := rec.Fields()
	if len(fields) != 1 {
		t.Fatalf("got %d fields", len(fields))
	}
	fields[0].Path[0] = "mutated"
	if _, ok := rec.Lookup("light.color"); !ok {
		t.Error("mutating Fields result changed the index")
	}
	if rec.Fields()[0].Path[0] != "light" {
		t.Error("Fields returned shared path slices")
	}
}

func TestRoundTrip_AllTags(t *testing.T) {
	for _, tag := range TypeTags() {
		t.Run(tag, func(t *testing.T) {
			rec := MustNew(NewStruct().Add("pad", F32).Add("v", Primitive(tag)))
			f, _ := rec.Lookup("v")

			values := make([]float64, f.Components)
			for i := range values {
				values[i] = float64(i + 1)
				if f.Scalar == KindI32 {
					values[i] = -values[i]
				}
			}
			var in any = values
			if f.IsScalar() {
				in = values[0]
			}
			if err := rec.Set("v", in); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got, err := rec.Get("v")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			out := float64s(got)
			for i, want := range values {
				if out[i] != want {
					t.Errorf("component %d = %v, want %v", i, out[i], want)
				}
			}
		})
	}
}

func TestGet_UnknownFieldLeavesRecordUsable(t *testing.T) {
	rec := MustNew(NewStruct().Add("color", Vec4f))
	if _, err := rec.Get("nonexistent"); !errors.IsKind(err, errors.KindFieldUnknown) {
		t.Fatalf("error = %v", err)
	}
	if err := rec.Set("color", []float32{1, 0, 0, 1}); err != nil {
		t.Fatalf("Set after failed Get: %v", err)
	}
	got, _ := rec.Get("color")
	if !reflect.DeepEqual(got, []float32{1, 0, 0, 1}) {
		t.Errorf("color = %v", got)
	}
}

func float64s(v any) []float64 {
	switch x := v.(type) {
	case float32:
		return []float64{float64(x)}
	case int32:
		return []float64{float64(x)}
	case uint32:
		return []float64{float64(x)}
	case []float32:
		out := make([]float64, len(x))
		for i, c := range x {
			out[i] = float64(c)
		}
		return out
	case []int32:
		out := make([]float64, len(x))
		for i, c := range x {
			out[i] = float64(c)
		}
		return out
	case []uint32:
		out := make([]float64, len(x))
		for i, c := range x {
			out[i] = float64(c)
		}
		return out
	}
	return nil
}
