package openapi

import (
	"sort"

	"github.com/bierbaumtim/genphi/internal/model"
)

// Collector turns the reusable schemas of a document into emitter-facing
// descriptors: object schemas become classes, string schemas with enum
// values become enum types, arrays become list properties.
type Collector struct {
	doc        *Document
	typePrefix string

	classes []model.ClassType
	enums   []model.EnumType
}

// NewCollector creates a collector for doc. typePrefix participates in
// enum variant prefix derivation and may be empty.
func NewCollector(doc *Document, typePrefix string) *Collector {
	return &Collector{doc: doc, typePrefix: typePrefix}
}

// typeInfo is the resolved classification of one schema node.
type typeInfo struct {
	name    string
	isClass bool
	isEnum  bool
}

// Collect walks components.schemas in name order and returns the
// collected descriptors. Schemas that resolve to nothing usable are
// skipped; structurally broken schemas fail the whole collection.
func (c *Collector) Collect() ([]model.ClassType, []model.EnumType, error) {
	names := make([]string, 0, len(c.doc.Components.Schemas))
	for name := range c.doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s, err := c.doc.ResolveSchema(c.doc.Components.Schemas[name])
		if err != nil {
			continue
		}
		if _, _, err := c.schemaToType(s, name); err != nil {
			return nil, nil, err
		}
	}

	return c.classes, c.enums, nil
}

// schemaToType classifies one schema and records any descriptor it
// produces. The second result is false when the schema maps to no type
// at all (untyped nodes, top-level arrays).
func (c *Collector) schemaToType(s *Schema, name string) (typeInfo, bool, error) {
	switch {
	case s.Type == "string" && len(s.Enum) > 0:
		e := c.addEnum(name, s.Enum)
		return typeInfo{name: e.Name, isEnum: true}, true, nil

	case s.Type == "object":
		props, err := c.collectProperties(s)
		if err != nil {
			return typeInfo{}, false, err
		}

		class := model.NewClassType(model.Capitalize(name), props)
		c.addClass(class)
		return typeInfo{name: class.Name, isClass: true}, true, nil

	case s.Type == "array":
		return typeInfo{}, false, nil

	case s.Type != "":
		return typeInfo{name: baseTypeName(s.Type, s.Format)}, true, nil

	default:
		return typeInfo{}, false, nil
	}
}

// collectProperties builds the property set of an object schema, in key
// order. A property reference that resolves to nothing fails the whole
// collection.
func (c *Collector) collectProperties(s *Schema) ([]model.Property, error) {
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var props []model.Property
	for _, k := range keys {
		ps, err := c.doc.ResolveSchema(s.Properties[k])
		if err != nil {
			return nil, err
		}

		var info typeInfo
		switch {
		case ps.Type == "string" && len(ps.Enum) > 0:
			e := c.addEnum(k, ps.Enum)
			info = typeInfo{name: e.Name, isEnum: true}

		case ps.Type == "array":
			if ps.Items == nil {
				return nil, NewInvalidSchemaError(k, "array without items")
			}
			itemSchema, err := c.doc.ResolveSchema(ps.Items)
			if err != nil {
				return nil, err
			}

			itemName := ps.Items.RefName()
			if itemName == "" {
				itemName = k + "Item"
			}

			itemInfo, ok, err := c.schemaToType(itemSchema, itemName)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, NewInvalidSchemaError(k, "array items map to no type")
			}
			info = itemInfo

		case ps.Type == "object":
			objName := ps.Title
			if objName == "" {
				objName = k
			}
			info = typeInfo{name: model.Capitalize(objName), isClass: true}

		case ps.Type != "":
			info = typeInfo{name: baseTypeName(ps.Type, ps.Format)}

		default:
			continue
		}

		isList := ps.Type == "array"
		props = append(props, model.Property{
			Name:            model.Capitalize(k),
			TypeName:        info.name,
			Key:             k,
			IsReferenceType: info.isClass || isList,
			IsListType:      isList,
			IsEnumType:      info.isEnum,
		})
	}

	return props, nil
}

// addEnum builds the enum descriptor for a string schema and records it
// unless an identical one exists already.
func (c *Collector) addEnum(name string, values []any) model.EnumType {
	capName := model.Capitalize(name)
	prefix := model.EnumVariantPrefix(capName, c.typePrefix)

	e := model.EnumType{Name: capName}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		e.Variants = append(e.Variants, model.EnumVariant{
			Name: prefix + model.SanitizeName(model.Capitalize(s)),
			Key:  s,
		})
	}

	for _, existing := range c.enums {
		if existing.Equal(e) {
			return e
		}
	}
	c.enums = append(c.enums, e)
	return e
}

// addClass records a class descriptor unless an identical one exists.
func (c *Collector) addClass(class model.ClassType) {
	for _, existing := range c.classes {
		if existing.Equal(class) {
			return
		}
	}
	c.classes = append(c.classes, class)
}

// baseTypeName maps a scalar schema type and format to the neutral type
// name the emitter understands.
func baseTypeName(schemaType, format string) string {
	switch schemaType {
	case "string":
		if format == "date" || format == "date-time" {
			return "datetime"
		}
		return "string"
	case "integer":
		return "integer"
	case "number":
		return "double"
	case "boolean":
		return "boolean"
	default:
		return ""
	}
}
