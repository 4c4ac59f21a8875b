package resolve

import (
	"strings"

	"github.com/bierbaumtim/genphi/internal/xsd"
)

// baseDataType maps an xsd built-in to its resolved data type.
func baseDataType(b xsd.BaseType) DataType {
	switch b {
	case xsd.BaseBoolean:
		return DataType{Kind: KindBoolean}
	case xsd.BaseDateTime:
		return DataType{Kind: KindDateTime}
	case xsd.BaseDate:
		return DataType{Kind: KindDate}
	case xsd.BaseDecimal, xsd.BaseDouble, xsd.BaseFloat:
		return DataType{Kind: KindDouble}
	case xsd.BaseHexBinary:
		return DataType{Kind: KindBinaryHex}
	case xsd.BaseBase64Binary:
		return DataType{Kind: KindBinaryBase64}
	case xsd.BaseByte:
		return DataType{Kind: KindShortInteger}
	case xsd.BaseShort:
		return DataType{Kind: KindSmallInteger}
	case xsd.BaseInteger:
		return DataType{Kind: KindInteger}
	case xsd.BaseLong:
		return DataType{Kind: KindLongInteger}
	case xsd.BaseUnsignedByte:
		return DataType{Kind: KindUnsignedShortInteger}
	case xsd.BaseUnsignedShort:
		return DataType{Kind: KindUnsignedSmallInteger}
	case xsd.BaseUnsignedInteger:
		return DataType{Kind: KindUnsignedInteger}
	case xsd.BaseUnsignedLong:
		return DataType{Kind: KindUnsignedLongInteger}
	case xsd.BaseTime:
		return DataType{Kind: KindTime}
	case xsd.BaseURI:
		return DataType{Kind: KindURI}
	default:
		return DataType{Kind: KindString}
	}
}

// customDataType resolves a registered type definition to the data type
// a variable of that type carries.
func customDataType(def xsd.TypeDefinition) DataType {
	switch t := def.(type) {
	case *xsd.SimpleType:
		switch {
		case len(t.Enumeration) > 0:
			return DataType{Kind: KindEnumeration, Name: t.Name}
		case !t.Base.IsZero(), !t.ListItem.IsZero():
			return DataType{Kind: KindAlias, Name: t.Name}
		case len(t.Variants) > 0:
			return DataType{Kind: KindUnion, Name: t.Name}
		default:
			return DataType{Kind: KindClass, Name: t.Name}
		}
	default:
		return DataType{Kind: KindClass, Name: def.LookupName()}
	}
}

// customRequiresFree reports whether a variable of the given registered
// type owns heap memory.
func customRequiresFree(def xsd.TypeDefinition) bool {
	if t, ok := def.(*xsd.SimpleType); ok {
		return !t.ListItem.IsZero()
	}
	return true
}

// listItemDataType resolves the item type of an xs:list. A list of
// lists resolves to nothing.
func listItemDataType(item xsd.NodeType, reg *xsd.Registry) (DataType, bool) {
	if !item.IsCustom() {
		return baseDataType(item.Base), true
	}

	def, ok := reg.Lookup(item.Custom)
	if !ok {
		return DataType{}, false
	}
	if st, ok := def.(*xsd.SimpleType); ok && !st.ListItem.IsZero() {
		return DataType{}, false
	}
	return customDataType(def), true
}

// lastSegment strips the namespace part off a qualified name.
func lastSegment(qualified string) string {
	if i := strings.LastIndex(qualified, "/"); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
