package xsd

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// parseSimpleType consumes one xs:simpleType body from just past its
// start tag through its end tag. name is the declared or generated type
// name; parentQualified, when non-empty, is the qualified name of the
// enclosing type and prefixes the qualified name of this one.
//
// Supported content: xs:restriction with xs:enumeration and xs:pattern
// facets, xs:list, xs:union with both referenced and inline members,
// and xs:annotation at type and enumeration level.
func (p *Parser) parseSimpleType(dec *xml.Decoder, reg *Registry, name, parentQualified string) (*SimpleType, error) {
	qualified := p.asQualifiedName(name)
	if parentQualified != "" {
		qualified = parentQualified + "." + name
	}

	var (
		baseRef      string
		listRef      string
		annotations  []string
		enumerations []EnumerationVariant
		pattern      string
		variants     []UnionVariant
		haveUnion    bool
		current      *EnumerationVariant
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			if isDecoderEOF(err) {
				return nil, NewEOFError("xs:simpleType")
			}
			return nil, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isSchema(t.Name, "restriction"):
				baseRef, err = attrValue(t, "base")
				if err != nil {
					return nil, err
				}
			case isSchema(t.Name, "union"):
				if haveUnion {
					return nil, NewUnexpectedNodeError("union")
				}
				haveUnion = true
				variants, err = p.parseUnionVariants(dec, reg, t, name, qualified)
				if err != nil {
					return nil, err
				}
			case isSchema(t.Name, "enumeration"):
				if current != nil {
					return nil, NewUnexpectedNodeError("enumeration")
				}
				value, err := attrValue(t, "value")
				if err != nil {
					return nil, err
				}
				current = &EnumerationVariant{Name: value}
			case isSchema(t.Name, "list"):
				itemRef, err := attrValue(t, "itemType")
				if err != nil {
					return nil, err
				}
				listRef, err = p.resolveNamespace(itemRef)
				if err != nil {
					return nil, err
				}
			case isSchema(t.Name, "pattern"):
				pattern, err = attrValue(t, "value")
				if err != nil {
					return nil, err
				}
			case isSchema(t.Name, "annotation"):
				values, err := ParseAnnotations(dec)
				if err != nil {
					return nil, err
				}
				if current != nil {
					current.Documentation = append(current.Documentation, values...)
				} else {
					annotations = append(annotations, values...)
				}
			}
		case xml.EndElement:
			switch {
			case isSchema(t.Name, "enumeration"):
				if current == nil {
					return nil, NewUnexpectedNodeError("enumeration")
				}
				enumerations = append(enumerations, *current)
				current = nil
			case isSchema(t.Name, "simpleType"):
				base := NodeType{}
				if baseRef != "" {
					resolved, err := p.resolveNamespace(baseRef)
					if err != nil {
						return nil, err
					}
					base = baseTypeFromString(resolved)
				}

				return &SimpleType{
					Name:          name,
					Qualified:     qualified,
					Documentation: annotations,
					Base:          base,
					Enumeration:   enumerations,
					ListItem:      baseTypeFromString(listRef),
					Pattern:       pattern,
					Variants:      variants,
				}, nil
			}
		}
	}
}

// parseUnionVariants consumes an xs:union body. Members referenced via
// the memberTypes attribute come first; inline xs:simpleType members
// follow in source order and are registered under generated variant
// names.
func (p *Parser) parseUnionVariants(dec *xml.Decoder, reg *Registry, start xml.StartElement, name, qualified string) ([]UnionVariant, error) {
	var variants []UnionVariant
	if members, ok := optionalAttr(start, "memberTypes"); ok {
		for _, member := range strings.Fields(members) {
			nodeType := baseTypeFromString(member)
			if !nodeType.IsCustom() {
				variants = append(variants, UnionVariant{Base: nodeType.Base})
				continue
			}
			resolved, err := p.resolveNamespace(member)
			if err != nil {
				return nil, err
			}
			variants = append(variants, UnionVariant{Named: resolved})
		}
	}

	variantCount := len(variants) + 1

	for {
		tok, err := dec.Token()
		if err != nil {
			if isDecoderEOF(err) {
				return nil, NewEOFError("xs:union")
			}
			return nil, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isSchema(t.Name, "simpleType") {
				variantName := fmt.Sprintf("%sVariant%d", name, variantCount)
				sType, err := p.parseSimpleType(dec, reg, variantName, qualified)
				if err != nil {
					return nil, err
				}
				reg.Register(sType)
				variants = append(variants, UnionVariant{Inline: sType})
				variantCount++
			}
		case xml.EndElement:
			if isSchema(t.Name, "union") {
				return variants, nil
			}
		}
	}
}
