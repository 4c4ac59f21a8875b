package openapi

import "strings"

// schemaRefPrefix is the only reference form the collector resolves;
// everything in scope lives under components.schemas.
const schemaRefPrefix = "#/components/schemas/"

// Document is the subset of an OpenAPI 3.x document the generator
// consumes: metadata, reusable schemas and path operations.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

// Info is the document metadata block.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
}

// Components holds the reusable schema definitions.
type Components struct {
	Schemas map[string]*Schema `json:"schemas" yaml:"schemas"`
}

// PathItem carries the operations of one path.
type PathItem struct {
	Get    *Operation `json:"get" yaml:"get"`
	Post   *Operation `json:"post" yaml:"post"`
	Put    *Operation `json:"put" yaml:"put"`
	Delete *Operation `json:"delete" yaml:"delete"`
}

// Operation is one HTTP operation on a path.
type Operation struct {
	OperationID string              `json:"operationId" yaml:"operationId"`
	Summary     string              `json:"summary" yaml:"summary"`
	RequestBody *RequestBody        `json:"requestBody" yaml:"requestBody"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

// RequestBody describes an operation's request payload.
type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// Response describes one response status of an operation.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content" yaml:"content"`
}

// MediaType binds a content type to its payload schema.
type MediaType struct {
	Schema *Schema `json:"schema" yaml:"schema"`
}

// Schema is a JSON Schema node as OpenAPI uses it. A node is either a
// reference (Ref set, everything else ignored) or an inline schema.
type Schema struct {
	Ref string `json:"$ref" yaml:"$ref"`

	Type       string             `json:"type" yaml:"type"`
	Format     string             `json:"format" yaml:"format"`
	Title      string             `json:"title" yaml:"title"`
	Enum       []any              `json:"enum" yaml:"enum"`
	Properties map[string]*Schema `json:"properties" yaml:"properties"`
	Items      *Schema            `json:"items" yaml:"items"`
	Required   []string           `json:"required" yaml:"required"`
}

// IsRef reports whether the node is a reference.
func (s *Schema) IsRef() bool { return s != nil && s.Ref != "" }

// RefName returns the schema name a reference points at, or "" when the
// reference is not a local components.schemas path.
func (s *Schema) RefName() string {
	if !s.IsRef() || !strings.HasPrefix(s.Ref, schemaRefPrefix) {
		return ""
	}
	return strings.TrimPrefix(s.Ref, schemaRefPrefix)
}

// ResolveSchema follows a schema node to its definition. Inline nodes
// resolve to themselves; references resolve through components.schemas.
func (d *Document) ResolveSchema(s *Schema) (*Schema, error) {
	if s == nil {
		return nil, NewUnresolvedRefError("")
	}
	if !s.IsRef() {
		return s, nil
	}

	name := s.RefName()
	if name == "" {
		return nil, NewUnresolvedRefError(s.Ref)
	}
	target, ok := d.Components.Schemas[name]
	if !ok || target == nil {
		return nil, NewUnresolvedRefError(s.Ref)
	}
	if target.IsRef() {
		// One indirection is enough for the documents in scope; a ref
		// chain is treated as dangling.
		return nil, NewUnresolvedRefError(target.Ref)
	}
	return target, nil
}
