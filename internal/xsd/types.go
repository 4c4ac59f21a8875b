package xsd

import "github.com/bierbaumtim/genphi/internal/ir"

// Occurrence bounds carried on xs:element and xs:choice.
const (
	// UnboundedOccurs is the xsd value for maxOccurs="unbounded".
	UnboundedOccurs int64 = -1

	// DefaultOccurs is the xsd default for minOccurs and maxOccurs.
	DefaultOccurs int64 = 1
)

// BaseType enumerates the supported xsd built-in types.
type BaseType int

const (
	BaseNone BaseType = iota
	BaseBoolean
	BaseDateTime
	BaseDate
	BaseDecimal
	BaseDouble
	BaseFloat
	BaseHexBinary
	BaseBase64Binary
	BaseByte
	BaseShort
	BaseInteger
	BaseLong
	BaseUnsignedByte
	BaseUnsignedShort
	BaseUnsignedInteger
	BaseUnsignedLong
	BaseString
	BaseTime
	BaseURI
)

// NodeType is the declared type of an element: either an xsd built-in or
// a reference to a custom type by qualified name.
type NodeType struct {
	Base   BaseType
	Custom string
}

// IsCustom reports whether the type references a custom type.
func (t NodeType) IsCustom() bool { return t.Base == BaseNone && t.Custom != "" }

// IsZero reports whether no type was declared at all.
func (t NodeType) IsZero() bool { return t.Base == BaseNone && t.Custom == "" }

// BaseAttributes are the occurrence bounds declared on an element. They
// are captured as opaque pass-through payload; cardinality validation is
// not performed here.
type BaseAttributes struct {
	MinOccurs *int64
	MaxOccurs *int64
	Nillable  bool
}

// Member is one entry in an element body: either a single Node or a
// nested NodeGroup. It is a sealed interface.
type Member interface {
	isMember()
}

// Node is the AST produced for one xs:element declaration: its declared
// type, name, occurrence attributes, and the annotation metadata
// harvested from nested xs:annotation blocks in encounter order.
type Node struct {
	Type        NodeType
	Name        string
	Attrs       BaseAttributes
	Annotations []string
}

func (Node) isMember() {}

// OrderKind tags a compositor: xs:sequence, xs:all or xs:choice.
type OrderKind int

const (
	OrderSequence OrderKind = iota
	OrderAll
	OrderChoice
)

// Order is the compositor of a complex type or node group. Choice
// carries its own occurrence attributes.
type Order struct {
	Kind  OrderKind
	Attrs BaseAttributes
}

// NodeGroup is a nested compositor inside a complex type body.
type NodeGroup struct {
	Children []Member
	Order    Order
}

func (NodeGroup) isMember() {}

// TypeDefinition is the sealed union of custom types a schema document
// can declare. Both variants satisfy the IR lookup capability, so the
// shared registry can hand out identities and resolve references.
type TypeDefinition interface {
	ir.LookupType

	isTypeDefinition()
}

// EnumerationVariant is one xs:enumeration value, with any documentation
// attached to the variant rather than the owning type.
type EnumerationVariant struct {
	Name          string
	Documentation []string
}

// UnionVariant is one member of an xs:union: an xsd built-in, a named
// custom type, or an inline simple type.
type UnionVariant struct {
	Base   BaseType
	Named  string
	Inline *SimpleType
}

// SimpleType is the parsed form of xs:simpleType.
type SimpleType struct {
	// Name is the name attribute, the identifier used at reference
	// sites.
	Name string

	// Qualified is namespace plus name, the registry key.
	Qualified string

	Documentation []string

	// Base is the xs:restriction base, if any.
	Base NodeType

	// Enumeration holds the possible values when the type restricts to
	// an enumeration.
	Enumeration []EnumerationVariant

	// ListItem is the item type when the type is an xs:list.
	ListItem NodeType

	// Pattern is the xs:pattern facet, captured opaquely.
	Pattern string

	// Variants are the members when the type is an xs:union.
	Variants []UnionVariant

	id ir.TypeID
}

func (*SimpleType) isTypeDefinition() {}

// QualifiedName implements ir.Registered.
func (t *SimpleType) QualifiedName() string { return t.Qualified }

// LookupName implements ir.LookupType.
func (t *SimpleType) LookupName() string { return t.Name }

// SetID implements ir.LookupType.
func (t *SimpleType) SetID(id ir.TypeID) { t.id = id }

// ID implements ir.LookupType.
func (t *SimpleType) ID() ir.TypeID { return t.id }

// CustomAttribute is the parsed form of xs:attribute.
type CustomAttribute struct {
	Name          string
	Qualified     string
	Documentation []string
	Type          NodeType
	DefaultValue  *string
	FixedValue    *string
	Required      bool
}

// ComplexType is the parsed form of xs:complexType.
type ComplexType struct {
	Name          string
	Qualified     string
	Documentation []string

	// BaseTypeName is the qualified name of the extended type when the
	// body is an xs:complexContent/xs:extension.
	BaseTypeName string

	Children   []Member
	Attributes []CustomAttribute
	Order      Order

	id ir.TypeID
}

func (*ComplexType) isTypeDefinition() {}

// QualifiedName implements ir.Registered.
func (t *ComplexType) QualifiedName() string { return t.Qualified }

// LookupName implements ir.LookupType.
func (t *ComplexType) LookupName() string { return t.Name }

// SetID implements ir.LookupType.
func (t *ComplexType) SetID(id ir.TypeID) { t.id = id }

// ID implements ir.LookupType.
func (t *ComplexType) ID() ir.TypeID { return t.id }

// Registry is the shared type registry instantiated for schema types.
type Registry = ir.TypeRegistry[TypeDefinition]

// NewRegistry creates an empty schema type registry.
func NewRegistry() *Registry { return ir.NewTypeRegistry[TypeDefinition]() }

// ParsedData is the output of parsing one or more schema documents:
// the top-level element nodes plus document-level documentation.
type ParsedData struct {
	Nodes         []Member
	Documentation []string
}
