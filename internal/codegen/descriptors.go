package codegen

import (
	"sort"

	"github.com/bierbaumtim/genphi/internal/model"
)

// FromDescriptors turns the OpenAPI collector's descriptors into the
// render model. Classes are sorted by name; the collector already
// resolved every property to a target-neutral type name.
func FromDescriptors(classes []model.ClassType, enums []model.EnumType, opts Options) Unit {
	unit := Unit{
		Name:     opts.UnitName,
		RunToken: opts.RunToken,
	}

	for _, e := range enums {
		values := make([]EnumValue, 0, len(e.Variants))
		for _, v := range e.Variants {
			values = append(values, EnumValue{Name: v.Name, XMLValue: v.Key})
		}
		unit.Enums = append(unit.Enums, Enum{
			Name:          TypeName(e.Name, opts.TypePrefix),
			QualifiedName: e.Name,
			VariantPrefix: model.EnumVariantPrefix(e.Name, opts.TypePrefix),
			Values:        values,
		})
	}

	ordered := make([]model.ClassType, len(classes))
	copy(ordered, classes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	for _, c := range ordered {
		class := Class{
			Name:            TypeName(c.Name, opts.TypePrefix),
			QualifiedName:   c.Name,
			NeedsDestructor: c.NeedsDestructor,
		}
		for _, p := range c.Properties {
			f := descriptorField(p, opts)
			class.Fields = append(class.Fields, f)
		}
		unit.Forwards = append(unit.Forwards, class.Name)
		unit.Classes = append(unit.Classes, class)
	}

	unit.UsesInterface = interfaceUses(unit)
	return unit
}

func descriptorField(p model.Property, opts Options) Field {
	repr := descriptorTypeRepr(p.TypeName, p.IsEnumType, opts)
	if p.IsListType {
		if scalarTypeRepr(p.TypeName) == "" && !p.IsEnumType {
			repr = "TObjectList<" + repr + ">"
		} else {
			repr = "TList<" + repr + ">"
		}
	}

	f := Field{
		Name:         FieldName(p.Key),
		PropertyName: p.Name,
		TypeRepr:     repr,
		RequiresFree: p.IsReferenceType,
	}

	switch {
	case p.IsListType:
		f.Initializer = f.Name + " := " + repr + ".Create;"
	case p.IsReferenceType:
		f.Initializer = f.Name + " := " + repr + ".Create;"
	default:
		f.Initializer = f.Name + " := Default(" + repr + ");"
	}
	return f
}

// descriptorTypeRepr maps a collector type name to its Delphi spelling.
func descriptorTypeRepr(name string, isEnum bool, opts Options) string {
	if repr := scalarTypeRepr(name); repr != "" && !isEnum {
		return repr
	}
	return TypeName(name, opts.TypePrefix)
}

// scalarTypeRepr maps the collector's scalar names; it returns the
// empty string for custom type names.
func scalarTypeRepr(name string) string {
	switch name {
	case "string":
		return "String"
	case "datetime":
		return "TDateTime"
	case "integer":
		return "Integer"
	case "double":
		return "Double"
	case "boolean":
		return "Boolean"
	default:
		return ""
	}
}
