package types

import "strings"

// Field is a compiled leaf: one scalar, vector or matrix at an absolute
// byte offset from the start of its record.
type Field struct {
	Descriptor
	Name        string
	Path        []string
	Offset      uint32
	IsArray     bool
	ArrayLength int
	ArrayStride uint32
}

// Key returns the dot-joined path used by the field index.
func (f *Field) Key() string {
	return JoinPath(f.Path)
}

// End returns the first byte offset past the field.
func (f *Field) End() uint32 {
	return f.Offset + f.Size
}

// Word returns the 4-byte word index of component i, honouring the column
// stride of matrix types.
func (f *Field) Word(i int) int {
	base := int(f.Offset / 4)
	if f.Columns <= 1 {
		return base + i
	}
	rows := f.Rows()
	return base + (i/rows)*int(f.ColumnStride/4) + i%rows
}

// JoinPath joins path segments into an index key.
func JoinPath(path []string) string {
	return strings.Join(path, ".")
}
