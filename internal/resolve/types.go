package resolve

import "github.com/bierbaumtim/genphi/internal/ir"

// DocumentName is the name of the synthetic root class built from the
// top-level schema elements.
const DocumentName = "Document"

// DataKind enumerates the resolved data type categories.
type DataKind int

const (
	KindBoolean DataKind = iota
	KindDateTime
	KindDate
	KindDouble
	KindBinaryHex
	KindBinaryBase64
	KindShortInteger
	KindSmallInteger
	KindInteger
	KindLongInteger
	KindUnsignedShortInteger
	KindUnsignedSmallInteger
	KindUnsignedInteger
	KindUnsignedLongInteger
	KindString
	KindTime
	KindURI

	// KindAlias references a type alias by name.
	KindAlias

	// KindClass references a class by name.
	KindClass

	// KindEnumeration references an enumeration by name.
	KindEnumeration

	// KindUnion references a union type by name.
	KindUnion

	// KindList is a variable-length list of Item.
	KindList

	// KindFixedList is a list with exactly Size elements.
	KindFixedList

	// KindInlineList is a list declared via xs:list on a simple type.
	KindInlineList
)

// DataType is a resolved data type. Name is set for the reference kinds
// (alias, class, enumeration, union); Item for the list kinds; Size for
// fixed-size lists only.
type DataType struct {
	Kind DataKind
	Name string
	Item *DataType
	Size int64
}

// IsList reports whether the type is any of the list kinds.
func (d DataType) IsList() bool {
	return d.Kind == KindList || d.Kind == KindFixedList || d.Kind == KindInlineList
}

// RequiresFree reports whether a variable of this type owns memory that
// a destructor must release.
func (d DataType) RequiresFree() bool {
	return d.Kind == KindClass || d.IsList() || d.Kind == KindURI
}

// Source tells the emitter where a variable comes from in the document.
type Source int

const (
	SourceElement Source = iota
	SourceAttribute
)

// Variable is one resolved member of a class.
type Variable struct {
	Name          string
	XMLName       string
	Type          DataType
	Required      bool
	RequiresFree  bool
	IsConst       bool
	DefaultValue  *string
	Source        Source
	Documentation []string
}

// Class is a resolved class type.
type Class struct {
	Name          string
	Qualified     string
	SuperType     string
	Variables     []Variable
	Documentation []string
	ID            ir.TypeID
}

// Key implements ir.Dependable.
func (c Class) Key() string { return c.Name }

// Dependencies implements ir.Dependable; a class depends on its super
// type.
func (c Class) Dependencies() []string {
	if c.SuperType == "" {
		return nil
	}
	return []string{c.SuperType}
}

// EnumerationValue is one resolved enum member.
type EnumerationValue struct {
	VariantName   string
	XMLValue      string
	Documentation []string
}

// Enumeration is a resolved enumeration type.
type Enumeration struct {
	Name          string
	Qualified     string
	Values        []EnumerationValue
	Documentation []string
	ID            ir.TypeID
}

// TypeAlias maps a name onto another resolved type.
type TypeAlias struct {
	Name          string
	Qualified     string
	For           DataType
	Pattern       string
	Documentation []string
	ID            ir.TypeID
}

// Key implements ir.Dependable.
func (a TypeAlias) Key() string { return a.Name }

// Dependencies implements ir.Dependable; an alias depends on the class
// it renames, if any.
func (a TypeAlias) Dependencies() []string {
	if a.For.Kind == KindClass {
		return []string{a.For.Name}
	}
	return nil
}

// UnionMember is one resolved member of a union type.
type UnionMember struct {
	Name string
	Type DataType
}

// UnionType is a resolved union type.
type UnionType struct {
	Name          string
	Qualified     string
	Members       []UnionMember
	Documentation []string
	ID            ir.TypeID
}

// Key implements ir.Dependable.
func (u UnionType) Key() string { return u.Name }

// Dependencies implements ir.Dependable; a union depends on the unions
// it embeds.
func (u UnionType) Dependencies() []string {
	var deps []string
	for _, m := range u.Members {
		if m.Type.Kind == KindUnion {
			deps = append(deps, m.Type.Name)
		}
	}
	return deps
}

// Representation is the resolved form of one generation input: the
// synthetic document class plus every named type, each list ordered so
// dependencies come first.
type Representation struct {
	Document     Class
	Classes      []Class
	Aliases      []TypeAlias
	Enumerations []Enumeration
	Unions       []UnionType
}
