package xsd

import "encoding/xml"

// parseComplexType consumes one xs:complexType body from just past its
// start tag through its end tag. The first compositor becomes the order
// of the type itself; further compositors nest as node groups. Inline
// child type definitions are registered with reg under the qualified
// name of this type.
func (p *Parser) parseComplexType(dec *xml.Decoder, reg *Registry, name, parentQualified string) (*ComplexType, error) {
	qualified := p.asQualifiedName(name)
	if parentQualified != "" {
		qualified = parentQualified + "." + name
	}

	var (
		children     []Member
		attributes   []CustomAttribute
		annotations  []string
		baseTypeName string
		pending      *pendingElement
		inCompositor bool
		inExtension  bool
		order        = Order{Kind: OrderSequence}
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			if isDecoderEOF(err) {
				return nil, NewEOFError("xs:complexType")
			}
			return nil, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isSchema(t.Name, "sequence"), isSchema(t.Name, "all"), isSchema(t.Name, "choice"):
				if inCompositor {
					group, err := p.parseNodeGroup(dec, reg, t, qualified)
					if err != nil {
						return nil, err
					}
					children = append(children, group)
					continue
				}

				inCompositor = true
				switch t.Name.Local {
				case "all":
					order = Order{Kind: OrderAll}
				case "choice":
					attrs, err := baseAttributes(t)
					if err != nil {
						return nil, err
					}
					order = Order{Kind: OrderChoice, Attrs: attrs}
				case "sequence":
					order = Order{Kind: OrderSequence}
				}
			case isSchema(t.Name, "element"):
				elemName, err := attrValue(t, "name")
				if err != nil {
					return nil, err
				}
				attrs, err := baseAttributes(t)
				if err != nil {
					return nil, err
				}

				typeRef, ok := optionalAttr(t, "type")
				if !ok {
					pending = &pendingElement{name: elemName, attrs: attrs}
					continue
				}

				resolved, err := p.resolveNamespace(typeRef)
				if err != nil {
					return nil, err
				}
				nodeType := baseTypeFromString(resolved)
				if nodeType.IsZero() {
					return nil, NewUnsupportedBaseTypeError(resolved)
				}

				pending = nil
				node, err := ParseElementNode(dec, nodeType, elemName, attrs)
				if err != nil {
					return nil, err
				}
				children = append(children, node)
			case isSchema(t.Name, "complexContent"):
				if inExtension {
					return nil, NewUnexpectedNodeError("complexContent")
				}
				inExtension = true
			case isSchema(t.Name, "extension"):
				if !inExtension {
					return nil, NewUnexpectedNodeError("extension")
				}
				baseRef, err := attrValue(t, "base")
				if err != nil {
					return nil, err
				}
				baseTypeName, err = p.resolveNamespace(baseRef)
				if err != nil {
					return nil, err
				}
			case isSchema(t.Name, "complexType"):
				if pending != nil {
					cType, err := p.parseComplexType(dec, reg, pending.name, qualified)
					if err != nil {
						return nil, err
					}
					reg.Register(cType)

					children = append(children, Node{
						Type:  NodeType{Custom: cType.Qualified},
						Name:  pending.name,
						Attrs: pending.attrs,
					})
					pending = nil
					continue
				}

				childName, ok := optionalAttr(t, "name")
				if !ok {
					childName = reg.GenerateTypeName()
				}
				cType, err := p.parseComplexType(dec, reg, childName, qualified)
				if err != nil {
					return nil, err
				}
				reg.Register(cType)
			case isSchema(t.Name, "simpleType"):
				if pending != nil {
					sType, err := p.parseSimpleType(dec, reg, pending.name, qualified)
					if err != nil {
						return nil, err
					}
					reg.Register(sType)

					children = append(children, Node{
						Type:  NodeType{Custom: sType.Qualified},
						Name:  pending.name,
						Attrs: pending.attrs,
					})
					pending = nil
					continue
				}

				childName, ok := optionalAttr(t, "name")
				if !ok {
					childName = reg.GenerateTypeName()
				}
				sType, err := p.parseSimpleType(dec, reg, childName, qualified)
				if err != nil {
					return nil, err
				}
				reg.Register(sType)
			case isSchema(t.Name, "annotation") && pending == nil:
				values, err := ParseAnnotations(dec)
				if err != nil {
					return nil, err
				}
				annotations = append(annotations, values...)
			case isSchema(t.Name, "attribute"):
				attr, err := p.parseCustomAttribute(dec, t, qualified)
				if err != nil {
					return nil, err
				}
				attributes = append(attributes, attr)
			}
		case xml.EndElement:
			switch {
			case isSchema(t.Name, "complexType"):
				return &ComplexType{
					Name:          name,
					Qualified:     qualified,
					Documentation: annotations,
					BaseTypeName:  baseTypeName,
					Children:      children,
					Attributes:    attributes,
					Order:         order,
				}, nil
			case isSchema(t.Name, "element"):
				pending = nil
			}
		}
	}
}
