package xsd

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// advanceTo consumes tokens until the start of the named schema element
// and returns it.
func advanceTo(t *testing.T, dec *xml.Decoder, local string) xml.StartElement {
	t.Helper()
	for {
		tok, err := dec.Token()
		require.NoError(t, err, "expected a <xs:%s> start before end of input", local)
		if s, ok := tok.(xml.StartElement); ok && isSchema(s.Name, local) {
			return s
		}
	}
}

func TestParseElementNodeCollectsAnnotationsInOrder(t *testing.T) {
	const doc = `<xs:element name="order" type="xs:string">
		<xs:annotation>
			<xs:documentation>first</xs:documentation>
			<xs:appinfo>second</xs:appinfo>
		</xs:annotation>
		<xs:annotation>
			<xs:documentation>third</xs:documentation>
			<xs:documentation>fourth</xs:documentation>
			<xs:appinfo>fifth</xs:appinfo>
		</xs:annotation>
	</xs:element>`

	dec := xml.NewDecoder(strings.NewReader(doc))
	advanceTo(t, dec, "element")

	node, err := ParseElementNode(dec, NodeType{Base: BaseString}, "order", BaseAttributes{})
	require.NoError(t, err)

	assert.Equal(t, "order", node.Name)
	assert.Equal(t, BaseString, node.Type.Base)
	assert.Equal(t, []string{"first", "second", "third", "fourth", "fifth"}, node.Annotations,
		"annotations from separate blocks must merge in source order")
}

func TestParseElementNodeTruncatedInputIsEOF(t *testing.T) {
	const doc = `<xs:element name="order" type="xs:string">
		<xs:annotation>
			<xs:documentation>partial</xs:documentation>
		</xs:annotation>`

	dec := xml.NewDecoder(strings.NewReader(doc))
	advanceTo(t, dec, "element")

	_, err := ParseElementNode(dec, NodeType{Base: BaseString}, "order", BaseAttributes{})
	require.Error(t, err)

	assert.True(t, IsEOFError(err), "truncation must surface as the EOF condition, got: %v", err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeUnexpectedEOF, pe.Code)
	assert.NotEqual(t, ErrCodeUnexpected, pe.Code, "EOF must stay distinct from the generic tokenizer failure")
}

func TestParseAnnotationsIgnoresForeignContent(t *testing.T) {
	const doc = `<xs:annotation>
		<xs:documentation>doc text</xs:documentation>
		<!-- a comment between blocks -->
		<xs:appinfo>app text</xs:appinfo>
	</xs:annotation>`

	dec := xml.NewDecoder(strings.NewReader(doc))
	advanceTo(t, dec, "annotation")

	values, err := ParseAnnotations(dec)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc text", "app text"}, values)
}

func TestParseNodeGroupNestedCompositors(t *testing.T) {
	const doc = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
		<xs:complexType name="ShipmentType">
			<xs:sequence>
				<xs:element name="id" type="xs:string"/>
				<xs:choice minOccurs="0" maxOccurs="unbounded">
					<xs:element name="parcel" type="xs:string"/>
					<xs:element name="pallet" type="xs:string"/>
				</xs:choice>
			</xs:sequence>
		</xs:complexType>
	</xs:schema>`

	reg := NewRegistry()
	p := NewParser()
	_, err := p.Parse(strings.NewReader(doc), reg)
	require.NoError(t, err)

	def, ok := reg.Lookup("ShipmentType")
	require.True(t, ok)
	cType, ok := def.(*ComplexType)
	require.True(t, ok)

	assert.Equal(t, OrderSequence, cType.Order.Kind)
	require.Len(t, cType.Children, 2)

	id, ok := cType.Children[0].(Node)
	require.True(t, ok)
	assert.Equal(t, "id", id.Name)

	group, ok := cType.Children[1].(NodeGroup)
	require.True(t, ok, "nested compositor should become a node group")
	assert.Equal(t, OrderChoice, group.Order.Kind)
	require.NotNil(t, group.Order.Attrs.MinOccurs)
	assert.EqualValues(t, 0, *group.Order.Attrs.MinOccurs)
	require.NotNil(t, group.Order.Attrs.MaxOccurs)
	assert.Equal(t, UnboundedOccurs, *group.Order.Attrs.MaxOccurs)
	assert.Len(t, group.Children, 2)
}
