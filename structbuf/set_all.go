package structbuf

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/isaiahaiasi/webgpu-demos/errors"
	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/types"
)

// SetAll writes every leaf of a value tree shaped like the specification.
// Nested structs are maps keyed by member name; array slots are maps keyed
// by index (string or int) or slices. A node whose accumulated path names a
// field is written with Set, anything else is descended into. Keys are
// visited in sorted order and the walk stops at the first failing leaf;
// leaves written before the failure stay written.
//
//	rec.SetAll(map[string]any{
//		"time":   1.5,
//		"light":  map[string]any{"color": []float32{1, 1, 1}},
//		"agents": map[int]any{3: map[string]any{"angle": 0.25}},
//	})
func (r *Record) SetAll(values map[string]any) error {
	return r.setNode(nil, values)
}

func (r *Record) setNode(path []string, node any) error {
	if len(path) > 0 {
		if f := r.layout.field(types.JoinPath(path)); f != nil {
			return r.set(f, node)
		}
	}

	switch n := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := r.setNode(childPath(path, k), n[k]); err != nil {
				return err
			}
		}
		return nil
	case map[int]any:
		keys := make([]int, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			if err := r.setNode(childPath(path, strconv.Itoa(k)), n[k]); err != nil {
				return err
			}
		}
		return nil
	}

	if len(path) > 0 && r.hasPrefix(path) {
		rv := reflect.ValueOf(node)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				if err := r.setNode(childPath(path, strconv.Itoa(i)), rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil
		}
	}

	return errors.FieldUnknown(errors.PhaseEncode, path)
}

// hasPrefix reports whether any field lives under path.
func (r *Record) hasPrefix(path []string) bool {
	_, ok := r.layout.groups[types.JoinPath(path)]
	return ok
}

func childPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}

func splitKey(key string) []string {
	return strings.Split(key, ".")
}
