package xsd

import "encoding/xml"

// ParseElementNode consumes the body of an xs:element whose type was
// declared through the type attribute. Nested xs:annotation blocks are
// collected in encounter order; every other token before the closing tag
// is ignored.
func ParseElementNode(dec *xml.Decoder, nodeType NodeType, name string, attrs BaseAttributes) (Node, error) {
	var annotations []string

	for {
		tok, err := dec.Token()
		if err != nil {
			if isDecoderEOF(err) {
				return Node{}, NewEOFError("xs:element")
			}
			return Node{}, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isSchema(t.Name, "annotation") {
				values, err := ParseAnnotations(dec)
				if err != nil {
					return Node{}, err
				}
				annotations = append(annotations, values...)
			}
		case xml.EndElement:
			if isSchema(t.Name, "element") {
				return Node{
					Type:        nodeType,
					Name:        name,
					Attrs:       attrs,
					Annotations: annotations,
				}, nil
			}
		}
	}
}

// pendingElement is an xs:element without a type attribute whose type is
// expected as an inline xs:simpleType or xs:complexType child.
type pendingElement struct {
	name  string
	attrs BaseAttributes
}

// parseNodeGroup consumes one compositor (xs:sequence, xs:all or
// xs:choice) from just past its start tag through its end tag. Inline
// type definitions encountered along the way are registered with reg,
// named after the owning element or with a generated name when
// anonymous.
func (p *Parser) parseNodeGroup(dec *xml.Decoder, reg *Registry, start xml.StartElement, parentQualified string) (NodeGroup, error) {
	var order Order
	switch start.Name.Local {
	case "all":
		order = Order{Kind: OrderAll}
	case "choice":
		attrs, err := baseAttributes(start)
		if err != nil {
			return NodeGroup{}, err
		}
		order = Order{Kind: OrderChoice, Attrs: attrs}
	case "sequence":
		order = Order{Kind: OrderSequence}
	default:
		return NodeGroup{}, NewUnexpectedNodeError(start.Name.Local)
	}

	var (
		children []Member
		pending  *pendingElement
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			if isDecoderEOF(err) {
				return NodeGroup{}, NewEOFError("xs:" + start.Name.Local)
			}
			return NodeGroup{}, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isSchema(t.Name, "element"):
				name, err := attrValue(t, "name")
				if err != nil {
					return NodeGroup{}, err
				}
				attrs, err := baseAttributes(t)
				if err != nil {
					return NodeGroup{}, err
				}

				typeRef, ok := optionalAttr(t, "type")
				if !ok {
					// The type arrives as an inline child definition.
					pending = &pendingElement{name: name, attrs: attrs}
					continue
				}

				resolved, err := p.resolveNamespace(typeRef)
				if err != nil {
					return NodeGroup{}, err
				}
				nodeType := baseTypeFromString(resolved)
				if nodeType.IsZero() {
					return NodeGroup{}, NewUnsupportedBaseTypeError(resolved)
				}

				pending = nil
				node, err := ParseElementNode(dec, nodeType, name, attrs)
				if err != nil {
					return NodeGroup{}, err
				}
				children = append(children, node)
			case isSchema(t.Name, "complexType"):
				if pending != nil {
					cType, err := p.parseComplexType(dec, reg, pending.name, parentQualified)
					if err != nil {
						return NodeGroup{}, err
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

				name, ok := optionalAttr(t, "name")
				if !ok {
					name = reg.GenerateTypeName()
				}
				cType, err := p.parseComplexType(dec, reg, name, "")
				if err != nil {
					return NodeGroup{}, err
				}
				reg.Register(cType)
			case isSchema(t.Name, "simpleType"):
				if pending != nil {
					sType, err := p.parseSimpleType(dec, reg, pending.name, parentQualified)
					if err != nil {
						return NodeGroup{}, err
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

				name, ok := optionalAttr(t, "name")
				if !ok {
					name = reg.GenerateTypeName()
				}
				sType, err := p.parseSimpleType(dec, reg, name, "")
				if err != nil {
					return NodeGroup{}, err
				}
				reg.Register(sType)
			}
		case xml.EndElement:
			if isSchema(t.Name, start.Name.Local) {
				return NodeGroup{Children: children, Order: order}, nil
			}
		}
	}
}
