package xsd

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
)

// isDecoderEOF reports whether err is the tokenizer's end-of-input
// condition. The decoder reports io.EOF at a clean end of input and a
// syntax error for input that ends inside an open element; both mean
// the same thing to a parser waiting for its closing tag.
func isDecoderEOF(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var se *xml.SyntaxError
	return errors.As(err, &se) && se.Msg == "unexpected EOF"
}

// schemaNS is the XML Schema namespace; the tokenizer resolves xs:
// prefixes to it.
const schemaNS = "http://www.w3.org/2001/XMLSchema"

// isSchema reports whether n is the schema element with the given local
// name. Documents without a proper xmlns:xs declaration surface the raw
// prefix as the space, so that spelling is accepted too.
func isSchema(n xml.Name, local string) bool {
	if n.Local != local {
		return false
	}
	return n.Space == schemaNS || n.Space == "xs" || n.Space == ""
}

// attrValue returns the value of the named attribute on start, or a
// missing-attribute error. Prefixed schema attributes are matched on
// their local name.
func attrValue(start xml.StartElement, name string) (string, error) {
	for _, a := range start.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value, nil
		}
	}
	return "", NewMissingAttributeError(name)
}

// optionalAttr returns the attribute value and whether it was present.
func optionalAttr(start xml.StartElement, name string) (string, bool) {
	v, err := attrValue(start, name)
	if err != nil {
		return "", false
	}
	return v, true
}

// baseAttributes extracts the minOccurs/maxOccurs bounds from start.
func baseAttributes(start xml.StartElement) (BaseAttributes, error) {
	minOccurs, err := occursValue(start, "minOccurs")
	if err != nil {
		return BaseAttributes{}, err
	}
	maxOccurs, err := occursValue(start, "maxOccurs")
	if err != nil {
		return BaseAttributes{}, err
	}
	nillable, _ := optionalAttr(start, "nillable")
	return BaseAttributes{
		MinOccurs: minOccurs,
		MaxOccurs: maxOccurs,
		Nillable:  nillable == "true",
	}, nil
}

// occursValue parses one occurrence attribute. Absent attributes yield
// nil; "unbounded" yields UnboundedOccurs.
func occursValue(start xml.StartElement, name string) (*int64, error) {
	raw, ok := optionalAttr(start, name)
	if !ok {
		return nil, nil
	}
	if raw == "unbounded" {
		v := UnboundedOccurs
		return &v, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, NewMalformedAttributeError(name, err)
	}
	return &v, nil
}

// baseTypeFromString maps a resolved type reference to a NodeType. The
// zero NodeType is returned for an empty reference; anything that is not
// a supported xsd built-in becomes a custom reference by name.
func baseTypeFromString(typeName string) NodeType {
	switch typeName {
	case "xs:base64Binary":
		return NodeType{Base: BaseBase64Binary}
	case "xs:boolean":
		return NodeType{Base: BaseBoolean}
	case "xs:date":
		return NodeType{Base: BaseDate}
	case "xs:dateTime":
		return NodeType{Base: BaseDateTime}
	case "xs:decimal":
		return NodeType{Base: BaseDecimal}
	case "xs:double":
		return NodeType{Base: BaseDouble}
	case "xs:float":
		return NodeType{Base: BaseFloat}
	case "xs:hexBinary":
		return NodeType{Base: BaseHexBinary}
	case "xs:string":
		return NodeType{Base: BaseString}
	case "xs:time":
		return NodeType{Base: BaseTime}
	case "xs:anyURI":
		return NodeType{Base: BaseURI}
	case "xs:byte":
		return NodeType{Base: BaseByte}
	case "xs:short":
		return NodeType{Base: BaseShort}
	case "xs:int", "xs:integer", "xs:nonNegativeInteger", "xs:negativeInteger",
		"xs:positiveInteger", "xs:nonPositiveInteger":
		return NodeType{Base: BaseInteger}
	case "xs:long":
		return NodeType{Base: BaseLong}
	case "xs:unsignedByte":
		return NodeType{Base: BaseUnsignedByte}
	case "xs:unsignedShort":
		return NodeType{Base: BaseUnsignedShort}
	case "xs:unsignedInt":
		return NodeType{Base: BaseUnsignedInteger}
	case "xs:unsignedLong":
		return NodeType{Base: BaseUnsignedLong}
	case "":
		return NodeType{}
	default:
		return NodeType{Custom: typeName}
	}
}
