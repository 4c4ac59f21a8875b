package xsd

import "encoding/xml"

// parseCustomAttribute parses one xs:attribute declaration. The
// declared values all live on the start tag; the body contributes only
// annotations and is consumed through the closing tag.
func (p *Parser) parseCustomAttribute(dec *xml.Decoder, start xml.StartElement, parentQualified string) (CustomAttribute, error) {
	name, err := attrValue(start, "name")
	if err != nil {
		return CustomAttribute{}, err
	}

	qualified := p.asQualifiedName(name)
	if parentQualified != "" {
		qualified = parentQualified + "." + name
	}

	typeRef, err := attrValue(start, "type")
	if err != nil {
		return CustomAttribute{}, err
	}
	resolved, err := p.resolveNamespace(typeRef)
	if err != nil {
		return CustomAttribute{}, err
	}
	attrType := baseTypeFromString(resolved)
	if attrType.IsZero() {
		return CustomAttribute{}, NewUnsupportedBaseTypeError(resolved)
	}

	var defaultValue, fixedValue *string
	if v, ok := optionalAttr(start, "default"); ok {
		defaultValue = &v
	}
	if v, ok := optionalAttr(start, "fixed"); ok {
		fixedValue = &v
	}

	useValue, ok := optionalAttr(start, "use")
	if !ok {
		useValue = "optional"
	}

	var documentation []string
	for {
		tok, err := dec.Token()
		if err != nil {
			if isDecoderEOF(err) {
				return CustomAttribute{}, NewEOFError("xs:attribute")
			}
			return CustomAttribute{}, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isSchema(t.Name, "annotation") {
				values, err := ParseAnnotations(dec)
				if err != nil {
					return CustomAttribute{}, err
				}
				documentation = append(documentation, values...)
			}
		case xml.EndElement:
			if isSchema(t.Name, "attribute") {
				return CustomAttribute{
					Name:          name,
					Qualified:     qualified,
					Documentation: documentation,
					Type:          attrType,
					DefaultValue:  defaultValue,
					FixedValue:    fixedValue,
					Required:      useValue == "required",
				}, nil
			}
		}
	}
}
