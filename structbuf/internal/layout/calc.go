package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/isaiahaiasi/webgpu-demos/errors"
	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/abi"
	"github.com/isaiahaiasi/webgpu-demos/structbuf/internal/types"
)

// Info is the layout of one struct or array: leaf fields with offsets and
// paths relative to its own start, its padded size and its alignment.
type Info struct {
	Fields []types.Field
	Size   uint32
	Align  uint32
}

// Calculator compiles layout specifications. Within one Record call struct
// layouts are memoized by pointer, so an element struct used by several
// arrays is only laid out once. Nothing is kept between Record calls. Not
// safe for concurrent use.
type Calculator struct {
	cache  map[*types.Struct]*Info
	active map[*types.Struct]struct{}
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache:  make(map[*types.Struct]*Info),
		active: make(map[*types.Struct]struct{}),
	}
}

// Record lays out a top-level struct. In uniform mode the record alignment
// is raised to 16 before the final size is rounded.
func (c *Calculator) Record(s *types.Struct, uniform bool) (Info, error) {
	if s == nil || len(s.Members) == 0 {
		return Info{}, errors.InvalidLayout(nil, "layout has no fields")
	}

	// specs are mutable, so the memo only lives for this call
	clear(c.cache)
	clear(c.active)
	defer clear(c.cache)

	info, err := c.Struct(s, nil)
	if err != nil {
		return Info{}, err
	}

	align := info.Align
	if uniform && align < abi.MinStructAlign {
		align = abi.MinStructAlign
	}

	size, ok := abi.SafeAlignTo(info.Size, align)
	if !ok {
		return Info{}, errors.InvalidLayout(nil, "record size overflows uint32")
	}

	return Info{
		Fields: info.Fields,
		Size:   size,
		Align:  align,
	}, nil
}

// Struct lays out s starting at local offset 0. The returned Info is shared
// with the memo and must not be modified. path is used for error reporting.
func (c *Calculator) Struct(s *types.Struct, path []string) (*Info, error) {
	if cached, ok := c.cache[s]; ok {
		return cached, nil
	}

	if len(s.Members) == 0 {
		return nil, errors.InvalidLayout(path, "struct has no fields")
	}
	if _, ok := c.active[s]; ok {
		return nil, errors.InvalidLayout(path, "struct contains itself")
	}
	c.active[s] = struct{}{}
	defer delete(c.active, s)

	var fields []types.Field
	seen := make(map[string]struct{}, len(s.Members))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, m := range s.Members {
		memberPath := appendPath(path, m.Name)
		if err := validateName(m.Name, memberPath); err != nil {
			return nil, err
		}
		if _, dup := seen[m.Name]; dup {
			return nil, errors.InvalidLayout(memberPath, fmt.Sprintf("duplicate field %q", m.Name))
		}
		seen[m.Name] = struct{}{}

		member, err := c.member(m.Type, m.Name, memberPath)
		if err != nil {
			return nil, err
		}

		start, ok := abi.SafeAlignTo(offset, member.Align)
		if ok {
			offset, ok = abi.SafeAddU32(start, member.Size)
		}
		if !ok {
			return nil, errors.InvalidLayout(memberPath, "struct size overflows uint32")
		}
		fields = appendRebased(fields, member.Fields, start, m.Name)

		if member.Align > maxAlign {
			maxAlign = member.Align
		}
	}

	size, ok := abi.SafeAlignTo(offset, maxAlign)
	if !ok {
		return nil, errors.InvalidLayout(path, "struct size overflows uint32")
	}

	info := &Info{
		Fields: fields,
		Size:   size,
		Align:  maxAlign,
	}
	c.cache[s] = info
	return info, nil
}

// member returns the layout of a single member relative to its own start,
// with leaf paths relative to the member (a primitive has an empty path).
func (c *Calculator) member(t types.Type, name string, path []string) (*Info, error) {
	switch typ := t.(type) {
	case types.Primitive:
		return primitive(typ, name, path)
	case *types.Struct:
		if typ == nil {
			return nil, errors.InvalidLayout(path, "nil struct")
		}
		return c.Struct(typ, path)
	case types.Array:
		return c.array(typ, name, path)
	default:
		return nil, errors.InvalidLayout(path, fmt.Sprintf("unsupported member type %T", t))
	}
}

func primitive(p types.Primitive, name string, path []string) (*Info, error) {
	desc, ok := types.Lookup(string(p))
	if !ok {
		return nil, errors.UnknownType(path, string(p))
	}
	return &Info{
		Fields: []types.Field{{Descriptor: desc, Name: name}},
		Size:   desc.Size,
		Align:  desc.Align,
	}, nil
}

// array replicates the element layout Len times at the array stride. The
// element start is aligned to the element alignment only; the stride is
// raised to at least 16 bytes.
func (c *Calculator) array(a types.Array, name string, path []string) (*Info, error) {
	if a.Len <= 0 {
		return nil, errors.InvalidArrayLength(path, a.Len)
	}
	if uint64(a.Len) > math.MaxUint32 {
		return nil, arrayTooLarge(path, a.Len)
	}
	if a.Elem == nil {
		return nil, errors.InvalidLayout(path, "array has no element type")
	}

	elem, err := c.member(a.Elem, name, path)
	if err != nil {
		return nil, err
	}

	stride, ok := abi.SafeAlignTo(max(elem.Size, abi.MinStructAlign), elem.Align)
	var size uint32
	if ok {
		size, ok = abi.SafeMulU32(uint32(a.Len), stride)
	}
	if !ok {
		return nil, arrayTooLarge(path, a.Len)
	}
	fields := make([]types.Field, 0, len(elem.Fields)*a.Len)

	for i := 0; i < a.Len; i++ {
		base := uint32(i) * stride
		index := strconv.Itoa(i)
		for _, ef := range elem.Fields {
			f := ef
			f.Offset = base + ef.Offset
			f.Path = prependPath(index, ef.Path)
			if !ef.IsArray {
				f.IsArray = true
				f.ArrayLength = a.Len
				f.ArrayStride = stride
			}
			fields = append(fields, f)
		}
	}

	return &Info{
		Fields: fields,
		Size:   size,
		Align:  elem.Align,
	}, nil
}

func arrayTooLarge(path []string, length int) *errors.Error {
	return errors.New(errors.PhaseCompile, errors.KindInvalidArrayLength).
		Path(path...).
		Value(length).
		Detail("array of %d elements overflows uint32", length).
		Build()
}

func validateName(name string, path []string) error {
	if name == "" {
		return errors.InvalidLayout(path, "empty field name")
	}
	if strings.Contains(name, ".") {
		return errors.InvalidLayout(path, fmt.Sprintf("field name %q contains '.'", name))
	}
	return nil
}

// appendRebased copies src into dst, shifting offsets by base and prefixing
// each path with name. src may be memoized and is never modified.
func appendRebased(dst, src []types.Field, base uint32, name string) []types.Field {
	for _, sf := range src {
		f := sf
		f.Offset = base + sf.Offset
		f.Path = prependPath(name, sf.Path)
		dst = append(dst, f)
	}
	return dst
}

func appendPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}

func prependPath(head string, tail []string) []string {
	out := make([]string, 0, len(tail)+1)
	out = append(out, head)
	return append(out, tail...)
}
