package model

// ClassType describes a resolved class or record to emit.
type ClassType struct {
	Name string `json:"name"`

	// Properties are ordered as declared in the source schema.
	Properties []Property `json:"properties"`

	// NeedsDestructor is true iff at least one property requires
	// non-trivial cleanup in the target language. It is derived from
	// Properties; use SetProperties to keep the two in sync.
	NeedsDestructor bool `json:"needs_destructor"`
}

// Property describes one resolved member of a class.
type Property struct {
	Name string `json:"name"`

	// TypeName is the resolved target-language-neutral type name.
	TypeName string `json:"type_name"`

	// Key is the serialization key, the name as it appears on the wire.
	Key string `json:"key"`

	IsReferenceType bool `json:"is_reference_type"`
	IsListType      bool `json:"is_list_type"`
	IsEnumType      bool `json:"is_enum_type"`
}

// EnumType describes a resolved enumeration.
type EnumType struct {
	Name string `json:"name"`

	// Variants are ordered as declared in the source schema.
	Variants []EnumVariant `json:"variants"`
}

// EnumVariant is one enumeration member.
type EnumVariant struct {
	Name string `json:"name"`

	// Key is the serialization key, the value as it appears on the wire.
	Key string `json:"key"`
}

// SetProperties replaces the property set and recomputes NeedsDestructor.
// This is the only supported way to mutate Properties after construction.
func (c *ClassType) SetProperties(props []Property) {
	c.Properties = props
	c.Recompute()
}

// Recompute re-derives NeedsDestructor from the current property set.
// A class needs a destructor iff any property holds a reference type.
func (c *ClassType) Recompute() {
	c.NeedsDestructor = false
	for _, p := range c.Properties {
		if p.IsReferenceType {
			c.NeedsDestructor = true
			return
		}
	}
}

// NewClassType builds a class descriptor with derived facts computed.
func NewClassType(name string, props []Property) ClassType {
	c := ClassType{Name: name}
	c.SetProperties(props)
	return c
}

// Equal reports whether two class types are structurally identical. The
// OpenAPI collector uses it to deduplicate classes shared between
// schemas.
func (c ClassType) Equal(other ClassType) bool {
	if c.Name != other.Name || c.NeedsDestructor != other.NeedsDestructor ||
		len(c.Properties) != len(other.Properties) {
		return false
	}
	for i, p := range c.Properties {
		if p != other.Properties[i] {
			return false
		}
	}
	return true
}

// Equal reports whether two enum types are structurally identical. The
// OpenAPI collector uses it to deduplicate enums shared between schemas.
func (e EnumType) Equal(other EnumType) bool {
	if e.Name != other.Name || len(e.Variants) != len(other.Variants) {
		return false
	}
	for i, v := range e.Variants {
		if v != other.Variants[i] {
			return false
		}
	}
	return true
}
