package types

// Kind is the numeric interpretation of a primitive's 32-bit components.
type Kind uint8

const (
	KindF32 Kind = iota
	KindI32
	KindU32
)

var kindNames = [...]string{
	KindF32: "f32",
	KindI32: "i32",
	KindU32: "u32",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsFloat() bool {
	return k == KindF32
}

// Suffix returns the WGSL shorthand suffix (f, i, u) used by vector tags.
func (k Kind) Suffix() string {
	switch k {
	case KindF32:
		return "f"
	case KindI32:
		return "i"
	case KindU32:
		return "u"
	default:
		return ""
	}
}
