package structbuf

import (
	"reflect"
	"testing"

	"github.com/isaiahaiasi/webgpu-demos/errors"
)

const simJSON = `{
	"time": "f32",
	"light": {"color": "vec3f", "power": "f32"},
	"agents": [{"pos": "vec2f", "angle": "f32"}, 4]
}`

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec([]byte(simJSON))
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if !reflect.DeepEqual(spec, simSpec()) {
		t.Errorf("ParseSpec = %#v, want %#v", spec, simSpec())
	}
}

func TestParseSpec_TrailingWhitespace(t *testing.T) {
	spec, err := ParseSpec([]byte("{\"a\": \"f32\"}\n\t "))
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if len(spec.Members) != 1 || spec.Members[0].Name != "a" {
		t.Errorf("ParseSpec = %#v", spec)
	}
}

func TestParseSpec_KeepsOrder(t *testing.T) {
	spec, err := ParseSpec([]byte(`{"z": "f32", "a": "vec3f", "m": "u32"}`))
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	var names []string
	for _, m := range spec.Members {
		names = append(names, m.Name)
	}
	if !reflect.DeepEqual(names, []string{"z", "a", "m"}) {
		t.Errorf("member order = %v", names)
	}

	rec := MustNew(spec)
	a, _ := rec.Lookup("a")
	if a.Offset != 16 {
		t.Errorf("a offset = %d, want 16", a.Offset)
	}
}

func TestParseSpec_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  []string
	}{
		{"not an object", `["f32", 2]`, nil},
		{"number member", `{"a": 1}`, []string{"a"}},
		{"array missing length", `{"a": ["f32"]}`, []string{"a"}},
		{"array length not a number", `{"a": ["f32", "4"]}`, []string{"a"}},
		{"array extra element", `{"a": ["f32", 4, 1]}`, []string{"a"}},
		{"nested bad member", `{"a": {"b": true}}`, []string{"a", "b"}},
		{"truncated", `{"a": "f32"`, nil},
		{"trailing garbage", `{"a": "f32"} garbage`, nil},
		{"second object", `{"a": "f32"}{"b": "u32"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			e, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("error type %T", err)
			}
			if e.Phase != errors.PhaseParse {
				t.Errorf("Phase = %s, want parse", e.Phase)
			}
			if tt.path != nil && !reflect.DeepEqual(e.Path, tt.path) {
				t.Errorf("Path = %v, want %v", e.Path, tt.path)
			}
		})
	}
}

func TestParseSpec_DefersTypeChecks(t *testing.T) {
	spec, err := ParseSpec([]byte(`{"a": "vec5f", "b": ["f32", 0]}`))
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if _, err := New(spec); !errors.IsKind(err, errors.KindUnknownType) {
		t.Errorf("New error = %v, want unknown type", err)
	}
}

func TestMarshalSpec_RoundTrip(t *testing.T) {
	data, err := MarshalSpec(simSpec())
	if err != nil {
		t.Fatalf("MarshalSpec: %v", err)
	}
	want := `{"time":"f32","light":{"color":"vec3f","power":"f32"},"agents":[{"pos":"vec2f","angle":"f32"},4]}`
	if string(data) != want {
		t.Errorf("MarshalSpec = %s\nwant %s", data, want)
	}

	spec, err := ParseSpec(data)
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if !reflect.DeepEqual(spec, simSpec()) {
		t.Error("round trip changed the spec")
	}
}

func TestParseValues(t *testing.T) {
	values, err := ParseValues([]byte(`{"time": 2, "light": {"color": [1, 0, 0]}, "agents": {"1": {"angle": 0.5}}}`))
	if err != nil {
		t.Fatalf("ParseValues: %v", err)
	}

	rec := MustNew(simSpec())
	if err := rec.SetAll(values); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	if v, _ := rec.Float32("agents", "1", "angle"); v != 0.5 {
		t.Errorf("agents.1.angle = %v", v)
	}
	if v, _ := rec.Float32s("light", "color"); !reflect.DeepEqual(v, []float32{1, 0, 0}) {
		t.Errorf("light.color = %v", v)
	}

	if _, err := ParseValues([]byte(`[1, 2]`)); !errors.IsKind(err, errors.KindInvalidData) {
		t.Errorf("ParseValues array error = %v", err)
	}
}
