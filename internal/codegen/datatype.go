package codegen

import (
	"github.com/bierbaumtim/genphi/internal/resolve"
)

// typeRepr returns the Delphi spelling of a resolved data type.
func typeRepr(dt resolve.DataType, prefix string) string {
	switch dt.Kind {
	case resolve.KindBoolean:
		return "Boolean"
	case resolve.KindDateTime:
		return "TDateTime"
	case resolve.KindDate:
		return "TDate"
	case resolve.KindDouble:
		return "Double"
	case resolve.KindBinaryHex, resolve.KindBinaryBase64:
		return "TBytes"
	case resolve.KindShortInteger:
		return "ShortInt"
	case resolve.KindSmallInteger:
		return "SmallInt"
	case resolve.KindInteger:
		return "Integer"
	case resolve.KindLongInteger:
		return "Int64"
	case resolve.KindUnsignedShortInteger:
		return "Byte"
	case resolve.KindUnsignedSmallInteger:
		return "Word"
	case resolve.KindUnsignedInteger:
		return "Cardinal"
	case resolve.KindUnsignedLongInteger:
		return "UInt64"
	case resolve.KindTime:
		return "TTime"
	case resolve.KindURI:
		return "TURI"
	case resolve.KindAlias, resolve.KindClass, resolve.KindEnumeration, resolve.KindUnion:
		return TypeName(dt.Name, prefix)
	case resolve.KindList, resolve.KindInlineList:
		return listRepr(*dt.Item, prefix)
	case resolve.KindFixedList:
		// Fixed-size lists expand into one field per slot, each of the
		// item type.
		return typeRepr(*dt.Item, prefix)
	default:
		return "String"
	}
}

// listRepr spells the container for a list item type. Object items go
// into an owning TObjectList, everything else into a plain TList.
func listRepr(item resolve.DataType, prefix string) string {
	repr := typeRepr(item, prefix)
	if item.Kind == resolve.KindClass {
		return "TObjectList<" + repr + ">"
	}
	return "TList<" + repr + ">"
}
