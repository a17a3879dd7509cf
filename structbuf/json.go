package structbuf

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/isaiahaiasi/webgpu-demos/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseSpec decodes a JSON layout specification. Object key order is
// preserved and becomes member order:
//
//	{
//	  "time":   "f32",
//	  "light":  {"color": "vec3f", "power": "f32"},
//	  "agents": [{"pos": "vec2f", "angle": "f32"}, 256]
//	}
//
// A string is a primitive tag, an object a nested struct and a two-element
// array an [element, length] array. Tags and lengths are checked when the
// spec is compiled, not here.
func ParseSpec(data []byte) (*Struct, error) {
	iter := jsoniter.ParseBytes(json, data)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, errors.InvalidData(errors.PhaseParse, nil, "layout spec must be a JSON object")
	}

	s, err := readStruct(iter, nil)
	if err != nil {
		return nil, err
	}
	if iter.Error != nil {
		return nil, errors.ParseFailed("layout spec", iter.Error)
	}

	// only whitespace may follow; reaching the end sets io.EOF
	iter.WhatIsNext()
	if iter.Error != io.EOF {
		return nil, errors.InvalidData(errors.PhaseParse, nil, "unexpected data after layout spec")
	}
	return s, nil
}

func readType(iter *jsoniter.Iterator, path []string) (Type, error) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return Primitive(iter.ReadString()), nil
	case jsoniter.ObjectValue:
		return readStruct(iter, path)
	case jsoniter.ArrayValue:
		return readArray(iter, path)
	default:
		iter.Skip()
		return nil, errors.InvalidData(errors.PhaseParse, path,
			"expected a type tag, an object or an [element, length] array")
	}
}

func readStruct(iter *jsoniter.Iterator, path []string) (*Struct, error) {
	s := NewStruct()
	var err error
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		var t Type
		t, err = readType(it, childPath(path, key))
		if err != nil {
			return false
		}
		s.Add(key, t)
		return true
	})
	if err != nil {
		return nil, err
	}
	if iter.Error != nil {
		return nil, errors.ParseFailed("layout spec", iter.Error)
	}
	return s, nil
}

func readArray(iter *jsoniter.Iterator, path []string) (Type, error) {
	var (
		elem   Type
		length int
		n      int
		err    error
	)
	iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		switch n {
		case 0:
			elem, err = readType(it, path)
		case 1:
			if it.WhatIsNext() != jsoniter.NumberValue {
				err = errors.InvalidData(errors.PhaseParse, path, "array length must be a number")
				return false
			}
			length = it.ReadInt()
		default:
			err = errors.InvalidData(errors.PhaseParse, path, "array must be [element, length]")
		}
		n++
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	if iter.Error != nil {
		return nil, errors.ParseFailed("layout spec", iter.Error)
	}
	if n != 2 {
		return nil, errors.InvalidData(errors.PhaseParse, path, "array must be [element, length]")
	}
	return ArrayOf(elem, length), nil
}

// MarshalSpec encodes a specification in the ParseSpec format, keeping
// member order.
func MarshalSpec(s *Struct) ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	if err := writeType(stream, s); err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, stream.Error, "encode layout spec")
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func writeType(stream *jsoniter.Stream, t Type) error {
	switch typ := t.(type) {
	case Primitive:
		stream.WriteString(string(typ))
	case *Struct:
		if typ == nil {
			return errors.InvalidLayout(nil, "nil struct")
		}
		stream.WriteObjectStart()
		for i, m := range typ.Members {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(m.Name)
			if err := writeType(stream, m.Type); err != nil {
				return err
			}
		}
		stream.WriteObjectEnd()
	case Array:
		stream.WriteArrayStart()
		if err := writeType(stream, typ.Elem); err != nil {
			return err
		}
		stream.WriteMore()
		stream.WriteInt(typ.Len)
		stream.WriteArrayEnd()
	default:
		return errors.InvalidLayout(nil, fmt.Sprintf("unsupported member type %T", t))
	}
	return nil
}

// ParseValues decodes a JSON value tree for SetAll. Numbers decode as
// float64 and are range-checked when written.
func ParseValues(data []byte) (map[string]any, error) {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.ParseFailed("values", err)
	}
	return values, nil
}
