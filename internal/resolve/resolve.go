package resolve

import (
	"sort"
	"strconv"

	"github.com/bierbaumtim/genphi/internal/ir"
	"github.com/bierbaumtim/genphi/internal/xsd"
)

// Build resolves the parsed schema data against the registry into the
// emitter-facing representation. Every registered type receives its
// TypeID from the run's allocator, exactly once; types that already
// carry an identity keep it.
func Build(run *ir.Run, data xsd.ParsedData, reg *xsd.Registry) *Representation {
	alloc := run.Allocator()

	classGraph := ir.NewDependencyGraph[string, Class]()
	aliasGraph := ir.NewDependencyGraph[string, TypeAlias]()
	unionGraph := ir.NewDependencyGraph[string, UnionType]()
	var enumerations []Enumeration

	for _, def := range sortedTypes(reg) {
		if def.ID() == ir.Unresolved {
			def.SetID(alloc.NextID())
		}

		switch t := def.(type) {
		case *xsd.SimpleType:
			switch {
			case len(t.Enumeration) > 0:
				enumerations = append(enumerations, buildEnumeration(t))
			case !t.Base.IsZero():
				aliasGraph.Push(buildAlias(t))
			case !t.ListItem.IsZero():
				if item, ok := listItemDataType(t.ListItem, reg); ok {
					aliasGraph.Push(TypeAlias{
						Name:          t.Name,
						Qualified:     t.Qualified,
						For:           DataType{Kind: KindInlineList, Item: &item},
						Pattern:       t.Pattern,
						Documentation: t.Documentation,
						ID:            t.ID(),
					})
				}
			case len(t.Variants) > 0:
				unionGraph.Push(buildUnion(t, reg))
			}
		case *xsd.ComplexType:
			classGraph.Push(buildClass(t, reg))
		}
	}

	document := Class{
		Name:      DocumentName,
		Qualified: DocumentName,
		Variables: collectVariables(data.Nodes, reg, xsd.Order{Kind: xsd.OrderSequence}),
		ID:        alloc.NextID(),
	}
	classGraph.Push(document)

	return &Representation{
		Document:     document,
		Classes:      classGraph.Sorted(),
		Aliases:      aliasGraph.Sorted(),
		Enumerations: enumerations,
		Unions:       unionGraph.Sorted(),
	}
}

// sortedTypes returns the registered types in qualified-name order, so
// identity assignment and output ordering are reproducible.
func sortedTypes(reg *xsd.Registry) []xsd.TypeDefinition {
	types := reg.Types()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]xsd.TypeDefinition, 0, len(names))
	for _, name := range names {
		out = append(out, types[name])
	}
	return out
}

func buildEnumeration(st *xsd.SimpleType) Enumeration {
	values := make([]EnumerationValue, 0, len(st.Enumeration))
	for _, v := range st.Enumeration {
		values = append(values, EnumerationValue{
			VariantName:   v.Name,
			XMLValue:      v.Name,
			Documentation: v.Documentation,
		})
	}

	return Enumeration{
		Name:          st.Name,
		Qualified:     st.Qualified,
		Values:        values,
		Documentation: st.Documentation,
		ID:            st.ID(),
	}
}

func buildAlias(st *xsd.SimpleType) TypeAlias {
	var forType DataType
	if st.Base.IsCustom() {
		forType = DataType{Kind: KindClass, Name: lastSegment(st.Base.Custom)}
	} else {
		forType = baseDataType(st.Base.Base)
	}

	return TypeAlias{
		Name:          st.Name,
		Qualified:     st.Qualified,
		For:           forType,
		Pattern:       st.Pattern,
		Documentation: st.Documentation,
		ID:            st.ID(),
	}
}

func buildUnion(st *xsd.SimpleType, reg *xsd.Registry) UnionType {
	var members []UnionMember

	simpleMember := func(member *xsd.SimpleType) (UnionMember, bool) {
		switch {
		case !member.ListItem.IsZero():
			item, ok := listItemDataType(member.ListItem, reg)
			if !ok {
				return UnionMember{}, false
			}
			return UnionMember{
				Name: member.Name,
				Type: DataType{Kind: KindInlineList, Item: &item},
			}, true
		case len(member.Enumeration) > 0:
			return UnionMember{
				Name: member.Name,
				Type: DataType{Kind: KindEnumeration, Name: member.Name},
			}, true
		default:
			return UnionMember{
				Name: member.Name,
				Type: DataType{Kind: KindAlias, Name: member.Name},
			}, true
		}
	}

	for i, v := range st.Variants {
		switch {
		case v.Inline != nil:
			if m, ok := simpleMember(v.Inline); ok {
				members = append(members, m)
			}
		case v.Named != "":
			def, ok := reg.Lookup(v.Named)
			if !ok {
				continue
			}
			member, ok := def.(*xsd.SimpleType)
			if !ok {
				continue
			}
			if m, ok := simpleMember(member); ok {
				members = append(members, m)
			}
		default:
			members = append(members, UnionMember{
				Name: "Variant" + strconv.Itoa(i),
				Type: baseDataType(v.Base),
			})
		}
	}

	return UnionType{
		Name:          st.Name,
		Qualified:     st.Qualified,
		Members:       members,
		Documentation: st.Documentation,
		ID:            st.ID(),
	}
}

func buildClass(ct *xsd.ComplexType, reg *xsd.Registry) Class {
	variables := collectVariables(ct.Children, reg, ct.Order)

	for _, attr := range ct.Attributes {
		v, ok := attributeVariable(attr, reg)
		if !ok {
			continue
		}
		variables = append(variables, v)
	}

	var superType string
	if ct.BaseTypeName != "" {
		if def, ok := reg.Lookup(ct.BaseTypeName); ok {
			superType = def.LookupName()
		}
	}

	return Class{
		Name:          ct.Name,
		Qualified:     ct.Qualified,
		SuperType:     superType,
		Variables:     variables,
		Documentation: ct.Documentation,
		ID:            ct.ID(),
	}
}

// attributeVariable turns an xs:attribute into a variable sourced from
// an attribute instead of a child element.
func attributeVariable(attr xsd.CustomAttribute, reg *xsd.Registry) (Variable, bool) {
	var (
		dataType DataType
		custFree bool
	)
	if attr.Type.IsCustom() {
		def, ok := reg.Lookup(attr.Type.Custom)
		if !ok {
			return Variable{}, false
		}
		dataType = customDataType(def)
		custFree = customRequiresFree(def)
	} else {
		dataType = baseDataType(attr.Type.Base)
	}

	defaultValue := attr.DefaultValue
	if attr.FixedValue != nil {
		defaultValue = attr.FixedValue
	}

	return Variable{
		Name:          attr.Name,
		XMLName:       attr.Name,
		Type:          dataType,
		Required:      attr.Required,
		RequiresFree:  custFree || dataType.IsList() || dataType.Kind == KindURI,
		IsConst:       attr.FixedValue != nil,
		DefaultValue:  defaultValue,
		Source:        SourceAttribute,
		Documentation: attr.Documentation,
	}, true
}

// collectVariables flattens the member tree of a complex type into the
// variable list of the class, recursing through nested compositors with
// their own order.
func collectVariables(members []xsd.Member, reg *xsd.Registry, order xsd.Order) []Variable {
	var out []Variable
	for _, m := range members {
		switch n := m.(type) {
		case xsd.Node:
			if v, ok := nodeVariable(n, reg, order); ok {
				out = append(out, v)
			}
		case xsd.NodeGroup:
			out = append(out, collectVariables(n.Children, reg, n.Order)...)
		}
	}
	return out
}

func nodeVariable(node xsd.Node, reg *xsd.Registry, order xsd.Order) (Variable, bool) {
	minOccurs, maxOccurs := occurrenceBounds(node.Attrs, order)

	required := minOccurs > 0 && !node.Attrs.Nillable
	if order.Kind == xsd.OrderChoice {
		required = false
	}

	var (
		dataType DataType
		custFree bool
	)
	if node.Type.IsCustom() {
		def, ok := reg.Lookup(node.Type.Custom)
		if !ok {
			return Variable{}, false
		}
		dataType = customDataType(def)
		custFree = customRequiresFree(def)
	} else {
		dataType = baseDataType(node.Type.Base)
	}

	switch {
	case maxOccurs == xsd.UnboundedOccurs,
		minOccurs != maxOccurs && maxOccurs > xsd.DefaultOccurs:
		item := dataType
		dataType = DataType{Kind: KindList, Item: &item}
	case minOccurs == maxOccurs && maxOccurs > xsd.DefaultOccurs:
		item := dataType
		dataType = DataType{Kind: KindFixedList, Item: &item, Size: maxOccurs}
	}

	return Variable{
		Name:          node.Name,
		XMLName:       node.Name,
		Type:          dataType,
		Required:      required,
		RequiresFree:  custFree || dataType.IsList() || dataType.Kind == KindURI,
		Source:        SourceElement,
		Documentation: node.Annotations,
	}, true
}

// occurrenceBounds applies the compositor's rules to a node's declared
// bounds: xs:all clamps to at most one, xs:choice bounds come from the
// choice itself.
func occurrenceBounds(attrs xsd.BaseAttributes, order xsd.Order) (minOccurs, maxOccurs int64) {
	pick := func(v *int64) int64 {
		if v == nil {
			return xsd.DefaultOccurs
		}
		return *v
	}

	switch order.Kind {
	case xsd.OrderAll:
		return clampOccurs(pick(attrs.MinOccurs)), clampOccurs(pick(attrs.MaxOccurs))
	case xsd.OrderChoice:
		return pick(order.Attrs.MinOccurs), pick(order.Attrs.MaxOccurs)
	default:
		return pick(attrs.MinOccurs), pick(attrs.MaxOccurs)
	}
}

func clampOccurs(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
