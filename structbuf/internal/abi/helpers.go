package abi

import (
	"math"
	"reflect"
)

// MinStructAlign is the uniform address space floor for struct alignment and
// array element stride.
const MinStructAlign = 16

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// SafeAlignTo is AlignTo that reports wraparound past math.MaxUint32.
func SafeAlignTo(offset, align uint32) (uint32, bool) {
	if align == 0 {
		return offset, true
	}
	end, ok := SafeAddU32(offset, align-1)
	if !ok {
		return 0, false
	}
	return end &^ (align - 1), true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}
