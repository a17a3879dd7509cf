package types

// Type is a layout specification node. It is closed over exactly three
// variants: Primitive, *Struct and Array.
type Type interface {
	isType()
}

// Primitive names a built-in scalar, vector or matrix type by tag.
type Primitive string

// Struct is an ordered list of named members. Declaration order is layout
// order. Changing a Struct does not affect layouts already compiled from it.
type Struct struct {
	Members []Member
}

// Member is one named entry of a Struct.
type Member struct {
	Type Type
	Name string
}

// Array is a fixed-length sequence of Elem.
type Array struct {
	Elem Type
	Len  int
}

func (Primitive) isType() {}
func (*Struct) isType()   {}
func (Array) isType()     {}

// NewStruct creates a struct specification from members.
func NewStruct(members ...Member) *Struct {
	return &Struct{Members: members}
}

// Add appends a member and returns the struct for chaining.
func (s *Struct) Add(name string, t Type) *Struct {
	s.Members = append(s.Members, Member{Name: name, Type: t})
	return s
}

// ArrayOf creates an array specification.
func ArrayOf(elem Type, length int) Array {
	return Array{Elem: elem, Len: length}
}
