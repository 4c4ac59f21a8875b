package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bierbaumtim/genphi/internal/ir"
	"github.com/bierbaumtim/genphi/internal/xsd"
)

func parseSchema(t *testing.T, src string) (xsd.ParsedData, *xsd.Registry) {
	t.Helper()

	reg := xsd.NewRegistry()
	data, err := xsd.NewParser().Parse(strings.NewReader(src), reg)
	require.NoError(t, err, "schema must parse")
	return data, reg
}

func classByName(t *testing.T, classes []Class, name string) Class {
	t.Helper()

	for _, c := range classes {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("class %q not in representation", name)
	return Class{}
}

func TestBuildOrdersBaseClassBeforeDerived(t *testing.T) {
	const src = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:element name="root" type="DerivedType"/>
  <xs:complexType name="DerivedType">
    <xs:complexContent>
      <xs:extension base="BaseType">
        <xs:sequence>
          <xs:element name="extra" type="xs:integer"/>
        </xs:sequence>
      </xs:extension>
    </xs:complexContent>
  </xs:complexType>
  <xs:complexType name="BaseType">
    <xs:sequence>
      <xs:element name="id" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	data, reg := parseSchema(t, src)
	rep := Build(ir.NewRun(), data, reg)

	var base, derived int = -1, -1
	for i, c := range rep.Classes {
		switch c.Name {
		case "BaseType":
			base = i
		case "DerivedType":
			derived = i
		}
	}
	require.GreaterOrEqual(t, base, 0, "base class present")
	require.GreaterOrEqual(t, derived, 0, "derived class present")
	assert.Less(t, base, derived, "base class must be emitted before its subclass")

	assert.Equal(t, "BaseType", rep.Classes[derived].SuperType)

	require.Len(t, rep.Document.Variables, 1)
	root := rep.Document.Variables[0]
	assert.Equal(t, "root", root.Name)
	assert.Equal(t, DataType{Kind: KindClass, Name: "DerivedType"}, root.Type)
	assert.True(t, root.Required, "default occurrence bounds make the element required")
	assert.True(t, root.RequiresFree, "class-typed variables own memory")
	assert.Equal(t, SourceElement, root.Source)
}

func TestBuildClassifiesSimpleTypes(t *testing.T) {
	const src = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:simpleType name="StatusType">
    <xs:restriction base="xs:string">
      <xs:enumeration value="open"/>
      <xs:enumeration value="closed"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="SkuType">
    <xs:restriction base="xs:string">
      <xs:pattern value="[A-Z]{3}[0-9]+"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="ScoresType">
    <xs:list itemType="xs:double"/>
  </xs:simpleType>
  <xs:simpleType name="MixedType">
    <xs:union memberTypes="xs:string SkuType"/>
  </xs:simpleType>
</xs:schema>`

	data, reg := parseSchema(t, src)
	rep := Build(ir.NewRun(), data, reg)

	require.Len(t, rep.Enumerations, 1)
	enum := rep.Enumerations[0]
	assert.Equal(t, "StatusType", enum.Name)
	require.Len(t, enum.Values, 2)
	assert.Equal(t, "open", enum.Values[0].XMLValue)
	assert.Equal(t, "closed", enum.Values[1].XMLValue)

	require.Len(t, rep.Aliases, 2)
	byName := make(map[string]TypeAlias, len(rep.Aliases))
	for _, a := range rep.Aliases {
		byName[a.Name] = a
	}

	sku, ok := byName["SkuType"]
	require.True(t, ok, "restriction alias present")
	assert.Equal(t, KindString, sku.For.Kind)
	assert.Equal(t, "[A-Z]{3}[0-9]+", sku.Pattern)

	scores, ok := byName["ScoresType"]
	require.True(t, ok, "list alias present")
	assert.Equal(t, KindInlineList, scores.For.Kind)
	require.NotNil(t, scores.For.Item)
	assert.Equal(t, KindDouble, scores.For.Item.Kind)

	require.Len(t, rep.Unions, 1)
	union := rep.Unions[0]
	assert.Equal(t, "MixedType", union.Name)
	require.Len(t, union.Members, 2)
	assert.Equal(t, "Variant0", union.Members[0].Name)
	assert.Equal(t, KindString, union.Members[0].Type.Kind)
	assert.Equal(t, "SkuType", union.Members[1].Name)
	assert.Equal(t, DataType{Kind: KindAlias, Name: "SkuType"}, union.Members[1].Type)
}

func TestBuildAliasOfCustomBaseReferencesClass(t *testing.T) {
	const src = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:simpleType name="ItemRef">
    <xs:restriction base="ItemType"/>
  </xs:simpleType>
  <xs:complexType name="ItemType">
    <xs:sequence>
      <xs:element name="sku" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	data, reg := parseSchema(t, src)
	rep := Build(ir.NewRun(), data, reg)

	require.Len(t, rep.Aliases, 1)
	assert.Equal(t, DataType{Kind: KindClass, Name: "ItemType"}, rep.Aliases[0].For)
}

func TestBuildOccurrenceBounds(t *testing.T) {
	const src = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:complexType name="BasketType">
    <xs:sequence>
      <xs:element name="item" type="xs:string" maxOccurs="unbounded"/>
      <xs:element name="corner" type="xs:integer" minOccurs="4" maxOccurs="4"/>
      <xs:element name="note" type="xs:string" minOccurs="0"/>
      <xs:element name="comment" type="xs:string" nillable="true"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	data, reg := parseSchema(t, src)
	rep := Build(ir.NewRun(), data, reg)

	basket := classByName(t, rep.Classes, "BasketType")
	require.Len(t, basket.Variables, 4)

	item := basket.Variables[0]
	assert.Equal(t, KindList, item.Type.Kind)
	require.NotNil(t, item.Type.Item)
	assert.Equal(t, KindString, item.Type.Item.Kind)
	assert.True(t, item.RequiresFree, "lists own their backing memory")

	corner := basket.Variables[1]
	assert.Equal(t, KindFixedList, corner.Type.Kind)
	assert.Equal(t, int64(4), corner.Type.Size)

	note := basket.Variables[2]
	assert.Equal(t, KindString, note.Type.Kind)
	assert.False(t, note.Required, "minOccurs zero makes the element optional")

	comment := basket.Variables[3]
	assert.False(t, comment.Required, "nillable elements are optional")
}

func TestBuildChoiceMembersAreOptional(t *testing.T) {
	const src = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:complexType name="PaymentType">
    <xs:choice>
      <xs:element name="card" type="xs:string"/>
      <xs:element name="iban" type="xs:string"/>
    </xs:choice>
  </xs:complexType>
</xs:schema>`

	data, reg := parseSchema(t, src)
	rep := Build(ir.NewRun(), data, reg)

	payment := classByName(t, rep.Classes, "PaymentType")
	require.Len(t, payment.Variables, 2)
	for _, v := range payment.Variables {
		assert.False(t, v.Required, "choice member %q must not be required", v.Name)
	}
}

func TestBuildAttributesBecomeVariables(t *testing.T) {
	const src = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:complexType name="ItemType">
    <xs:sequence>
      <xs:element name="name" type="xs:string"/>
    </xs:sequence>
    <xs:attribute name="sku" type="xs:string" use="required"/>
    <xs:attribute name="version" type="xs:string" fixed="2"/>
  </xs:complexType>
</xs:schema>`

	data, reg := parseSchema(t, src)
	rep := Build(ir.NewRun(), data, reg)

	item := classByName(t, rep.Classes, "ItemType")
	require.Len(t, item.Variables, 3)

	sku := item.Variables[1]
	assert.Equal(t, "sku", sku.Name)
	assert.Equal(t, SourceAttribute, sku.Source)
	assert.True(t, sku.Required)
	assert.False(t, sku.IsConst)

	version := item.Variables[2]
	assert.True(t, version.IsConst, "fixed attributes are constants")
	require.NotNil(t, version.DefaultValue)
	assert.Equal(t, "2", *version.DefaultValue)
}

func TestBuildAssignsIdentitiesOnce(t *testing.T) {
	const src = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:complexType name="AType">
    <xs:sequence>
      <xs:element name="x" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:simpleType name="BType">
    <xs:restriction base="xs:string"/>
  </xs:simpleType>
</xs:schema>`

	data, reg := parseSchema(t, src)

	first := Build(ir.NewRun(), data, reg)

	ids := make(map[ir.TypeID]bool)
	for _, c := range first.Classes {
		require.True(t, c.ID.IsValid(), "class %q has an identity", c.Name)
		require.False(t, ids[c.ID], "identity of %q is unique", c.Name)
		ids[c.ID] = true
	}
	for _, a := range first.Aliases {
		require.True(t, a.ID.IsValid())
		require.False(t, ids[a.ID])
		ids[a.ID] = true
	}

	second := Build(ir.NewRun(), data, reg)
	firstA := classByName(t, first.Classes, "AType")
	secondA := classByName(t, second.Classes, "AType")
	assert.Equal(t, firstA.ID, secondA.ID, "an already assigned identity is kept")
}
