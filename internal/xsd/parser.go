package xsd

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// Parser reads XML Schema documents into the untyped AST and the shared
// type registry. The zero value is ready to use; namespace state is
// reset per document, so one Parser can process a whole schema set.
type Parser struct {
	// currentNamespace is the targetNamespace of the document being
	// parsed, when declared.
	currentNamespace string

	// namespaceAliases maps xmlns prefixes to namespace URIs.
	namespaceAliases map[string]string
}

// NewParser creates a Parser with empty namespace state.
func NewParser() *Parser {
	return &Parser{namespaceAliases: make(map[string]string)}
}

// ParseFile parses a single schema file.
func (p *Parser) ParseFile(path string, reg *Registry) (ParsedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParsedData{}, NewUnreadableFileError(path, err)
	}
	defer f.Close()

	return p.Parse(f, reg)
}

// ParseFiles parses a set of schema files into one combined result.
// Namespace state is per-document, so files with different target
// namespaces can be combined; all types land in the same registry.
func (p *Parser) ParseFiles(paths []string, reg *Registry) (ParsedData, error) {
	var combined ParsedData

	for _, path := range paths {
		data, err := p.ParseFile(path, reg)
		if err != nil {
			return ParsedData{}, err
		}
		combined.Nodes = append(combined.Nodes, data.Nodes...)
		combined.Documentation = append(combined.Documentation, data.Documentation...)
	}

	return combined, nil
}

// Parse parses one schema document from r. Top-level elements become
// nodes; top-level type definitions are registered; document-level
// annotations are collected as documentation.
func (p *Parser) Parse(r io.Reader, reg *Registry) (ParsedData, error) {
	p.currentNamespace = ""
	p.namespaceAliases = make(map[string]string)

	dec := xml.NewDecoder(r)

	var (
		nodes         []Member
		documentation []string
		pending       *pendingElement
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ParsedData{Nodes: nodes, Documentation: documentation}, nil
			}
			if isDecoderEOF(err) {
				return ParsedData{}, NewEOFError("xs:schema")
			}
			return ParsedData{}, NewUnexpectedError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isSchema(t.Name, "schema"):
				if ns, ok := optionalAttr(t, "targetNamespace"); ok {
					p.currentNamespace = ns
				}
				p.collectNamespaceAliases(t)
			case isSchema(t.Name, "element"):
				name, err := attrValue(t, "name")
				if err != nil {
					return ParsedData{}, err
				}
				attrs, err := baseAttributes(t)
				if err != nil {
					return ParsedData{}, err
				}

				typeRef, ok := optionalAttr(t, "type")
				if !ok {
					pending = &pendingElement{name: name, attrs: attrs}
					continue
				}

				resolved, err := p.resolveNamespace(typeRef)
				if err != nil {
					return ParsedData{}, err
				}
				nodeType := baseTypeFromString(resolved)
				if nodeType.IsZero() {
					return ParsedData{}, NewUnsupportedBaseTypeError(resolved)
				}

				pending = nil
				node, err := ParseElementNode(dec, nodeType, name, attrs)
				if err != nil {
					return ParsedData{}, err
				}
				nodes = append(nodes, node)
			case isSchema(t.Name, "complexType"):
				if pending != nil {
					cType, err := p.parseComplexType(dec, reg, pending.name, "")
					if err != nil {
						return ParsedData{}, err
					}
					reg.Register(cType)

					nodes = append(nodes, Node{
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
					return ParsedData{}, err
				}
				reg.Register(cType)
			case isSchema(t.Name, "simpleType"):
				if pending != nil {
					sType, err := p.parseSimpleType(dec, reg, pending.name, "")
					if err != nil {
						return ParsedData{}, err
					}
					reg.Register(sType)

					nodes = append(nodes, Node{
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
					return ParsedData{}, err
				}
				reg.Register(sType)
			case isSchema(t.Name, "annotation"):
				values, err := ParseAnnotations(dec)
				if err != nil {
					return ParsedData{}, err
				}
				documentation = append(documentation, values...)
			}
		case xml.EndElement:
			if isSchema(t.Name, "element") {
				pending = nil
			}
		}
	}
}

// collectNamespaceAliases records every xmlns:prefix declaration on the
// xs:schema element.
func (p *Parser) collectNamespaceAliases(start xml.StartElement) {
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" && a.Name.Local != "" {
			p.namespaceAliases[a.Name.Local] = a.Value
		}
	}
}

// asQualifiedName prefixes name with the current target namespace,
// separated by a slash.
func (p *Parser) asQualifiedName(name string) string {
	if p.currentNamespace == "" {
		return name
	}
	ns := p.currentNamespace
	if !strings.HasSuffix(ns, "/") {
		ns += "/"
	}
	return ns + name
}

// resolveNamespace expands a possibly prefixed type reference into its
// qualified form. Schema built-ins keep their xs: prefix; unprefixed
// references qualify against the target namespace; unknown prefixes are
// an error.
func (p *Parser) resolveNamespace(ref string) (string, error) {
	if ref == "" || strings.HasPrefix(ref, "xs:") {
		return ref, nil
	}

	alias, local, found := strings.Cut(ref, ":")
	if !found {
		return p.asQualifiedName(ref), nil
	}

	ns, ok := p.namespaceAliases[alias]
	if !ok {
		return "", NewUnresolvedNamespaceError(alias)
	}
	if !strings.HasSuffix(ns, "/") {
		ns += "/"
	}
	return ns + local, nil
}
