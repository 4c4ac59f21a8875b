package codegen

import (
	"strconv"
	"strings"

	"github.com/bierbaumtim/genphi/internal/model"
	"github.com/bierbaumtim/genphi/internal/resolve"
)

// Options control unit emission.
type Options struct {
	// UnitName is the Delphi unit name, without extension.
	UnitName string

	// TypePrefix is inserted between the T convention and the type
	// name, so a prefix "Api" turns "Order" into "TApiOrder".
	TypePrefix string

	// RunToken identifies the generation run in the unit header.
	RunToken string
}

// Unit is the render model of one Delphi unit.
type Unit struct {
	Name          string
	RunToken      string
	Documentation []string
	UsesInterface []string
	Forwards      []string
	Enums         []Enum
	Aliases       []Alias
	Unions        []Union
	Classes       []Class
}

// Enum is an enumeration with scoped, prefixed variants.
type Enum struct {
	Name           string
	QualifiedName  string
	VariantPrefix  string
	Values         []EnumValue
	Documentation  []string
	LinePerVariant bool
}

// EnumValue is one variant; Name is the final Delphi identifier.
type EnumValue struct {
	Name          string
	XMLValue      string
	Documentation []string
}

// Alias is a type alias declaration.
type Alias struct {
	Name          string
	QualifiedName string
	TypeRepr      string
	Pattern       string
	Documentation []string
}

// Union is a variant record with a nested discriminator enum.
type Union struct {
	Name          string
	QualifiedName string
	Variants      []UnionVariant
	Documentation []string
}

// UnionVariant is one case of a union record.
type UnionVariant struct {
	Name     string
	TypeRepr string
}

// Class is a class declaration plus the facts its implementation needs.
type Class struct {
	Name            string
	QualifiedName   string
	SuperType       string
	Documentation   []string
	Constants       []Constant
	Fields          []Field
	NeedsDestructor bool
}

// Field is one backing field with its public property.
type Field struct {
	Name          string
	PropertyName  string
	TypeRepr      string
	Initializer   string
	RequiresFree  bool
	Documentation []string
}

// Constant is a class constant from a fixed attribute.
type Constant struct {
	Name     string
	TypeRepr string
	Value    string
}

// BuildUnit turns a resolved representation into the render model.
func BuildUnit(rep *resolve.Representation, docs []string, opts Options) Unit {
	unit := Unit{
		Name:          opts.UnitName,
		RunToken:      opts.RunToken,
		Documentation: docLines(docs),
	}

	for _, e := range rep.Enumerations {
		unit.Enums = append(unit.Enums, buildEnum(e, opts))
	}
	for _, a := range rep.Aliases {
		unit.Aliases = append(unit.Aliases, Alias{
			Name:          TypeName(a.Name, opts.TypePrefix),
			QualifiedName: a.Qualified,
			TypeRepr:      typeRepr(a.For, opts.TypePrefix),
			Pattern:       a.Pattern,
			Documentation: docLines(a.Documentation),
		})
	}
	for _, u := range rep.Unions {
		variants := make([]UnionVariant, 0, len(u.Members))
		for _, m := range u.Members {
			variants = append(variants, UnionVariant{
				Name:     PropertyName(m.Name),
				TypeRepr: typeRepr(m.Type, opts.TypePrefix),
			})
		}
		unit.Unions = append(unit.Unions, Union{
			Name:          TypeName(u.Name, opts.TypePrefix),
			QualifiedName: u.Qualified,
			Variants:      variants,
			Documentation: docLines(u.Documentation),
		})
	}
	for _, c := range rep.Classes {
		class := buildClass(c, opts)
		unit.Forwards = append(unit.Forwards, class.Name)
		unit.Classes = append(unit.Classes, class)
	}

	unit.UsesInterface = interfaceUses(unit)
	return unit
}

func buildEnum(e resolve.Enumeration, opts Options) Enum {
	prefix := model.EnumVariantPrefix(e.Name, opts.TypePrefix)

	linePerVariant := false
	values := make([]EnumValue, 0, len(e.Values))
	for _, v := range e.Values {
		if len(v.Documentation) > 0 {
			linePerVariant = true
		}
		values = append(values, EnumValue{
			Name:          prefix + model.Capitalize(model.SanitizeName(v.VariantName)),
			XMLValue:      v.XMLValue,
			Documentation: docLines(v.Documentation),
		})
	}

	return Enum{
		Name:           TypeName(e.Name, opts.TypePrefix),
		QualifiedName:  e.Qualified,
		VariantPrefix:  prefix,
		Values:         values,
		Documentation:  docLines(e.Documentation),
		LinePerVariant: linePerVariant,
	}
}

func buildClass(c resolve.Class, opts Options) Class {
	class := Class{
		Name:          TypeName(c.Name, opts.TypePrefix),
		QualifiedName: c.Qualified,
		Documentation: docLines(c.Documentation),
	}
	if c.SuperType != "" {
		class.SuperType = TypeName(c.SuperType, opts.TypePrefix)
	}

	for _, v := range c.Variables {
		if v.IsConst {
			value := ""
			if v.DefaultValue != nil {
				value = defaultLiteral(v.Type, *v.DefaultValue)
			}
			class.Constants = append(class.Constants, Constant{
				Name:     PropertyName(v.Name),
				TypeRepr: typeRepr(v.Type, opts.TypePrefix),
				Value:    value,
			})
			continue
		}

		for _, f := range buildFields(v, opts) {
			if f.RequiresFree {
				class.NeedsDestructor = true
			}
			class.Fields = append(class.Fields, f)
		}
	}

	return class
}

// buildFields expands one variable into its backing fields. Fixed-size
// lists become one field per slot, numbered from one.
func buildFields(v resolve.Variable, opts Options) []Field {
	repr := typeRepr(v.Type, opts.TypePrefix)

	field := Field{
		Name:          FieldName(v.Name),
		PropertyName:  PropertyName(v.Name),
		TypeRepr:      repr,
		RequiresFree:  v.RequiresFree,
		Documentation: docLines(v.Documentation),
	}

	if v.Type.Kind == resolve.KindFixedList {
		itemFree := v.Type.Item.RequiresFree()
		fields := make([]Field, 0, v.Type.Size)
		for i := int64(1); i <= v.Type.Size; i++ {
			f := field
			f.Name = field.Name + strconv.FormatInt(i, 10)
			f.PropertyName = field.PropertyName + strconv.FormatInt(i, 10)
			f.RequiresFree = itemFree
			f.Initializer = initializer(f, *v.Type.Item, v)
			fields = append(fields, f)
		}
		return fields
	}

	field.Initializer = initializer(field, v.Type, v)
	return []Field{field}
}

// initializer returns the constructor statement for a field.
func initializer(f Field, dt resolve.DataType, v resolve.Variable) string {
	switch {
	case dt.Kind == resolve.KindClass && !v.Required:
		return f.Name + " := nil;"
	case dt.Kind == resolve.KindClass || dt.IsList():
		return f.Name + " := " + f.TypeRepr + ".Create;"
	case v.DefaultValue != nil:
		return f.Name + " := " + defaultLiteral(dt, *v.DefaultValue) + ";"
	default:
		return f.Name + " := Default(" + f.TypeRepr + ");"
	}
}

// defaultLiteral spells a schema default value as a Delphi literal.
func defaultLiteral(dt resolve.DataType, value string) string {
	switch dt.Kind {
	case resolve.KindString, resolve.KindAlias:
		return "'" + strings.ReplaceAll(value, "'", "''") + "'"
	default:
		return value
	}
}

// interfaceUses derives the interface uses clause from what the unit
// declares.
func interfaceUses(unit Unit) []string {
	var (
		hasList  bool
		hasURI   bool
		hasBytes bool
	)
	scan := func(repr string) {
		if strings.HasPrefix(repr, "TList<") || strings.HasPrefix(repr, "TObjectList<") {
			hasList = true
		}
		if repr == "TURI" || strings.Contains(repr, "<TURI>") {
			hasURI = true
		}
		if repr == "TBytes" || strings.Contains(repr, "<TBytes>") {
			hasBytes = true
		}
	}
	for _, a := range unit.Aliases {
		scan(a.TypeRepr)
	}
	for _, u := range unit.Unions {
		for _, v := range u.Variants {
			scan(v.TypeRepr)
		}
	}
	for _, c := range unit.Classes {
		for _, f := range c.Fields {
			scan(f.TypeRepr)
		}
	}

	var uses []string
	if hasList {
		uses = append(uses, "System.Generics.Collections")
	}
	if hasBytes {
		uses = append(uses, "System.SysUtils")
	}
	if hasURI {
		uses = append(uses, "System.Net.URLClient")
	}
	return uses
}

func docLines(docs []string) []string {
	var lines []string
	for _, d := range docs {
		lines = append(lines, strings.Split(d, "\n")...)
	}
	return lines
}
