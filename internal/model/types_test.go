package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsDestructorDerivation(t *testing.T) {
	tests := []struct {
		name  string
		props []Property
		want  bool
	}{
		{
			name: "no properties",
			want: false,
		},
		{
			name: "value properties only",
			props: []Property{
				{Name: "Count", TypeName: "integer"},
				{Name: "Label", TypeName: "string"},
			},
			want: false,
		},
		{
			name: "one reference property",
			props: []Property{
				{Name: "Label", TypeName: "string"},
				{Name: "Owner", TypeName: "Person", IsReferenceType: true},
			},
			want: true,
		},
		{
			name: "list property counts as reference",
			props: []Property{
				{Name: "Items", TypeName: "Item", IsReferenceType: true, IsListType: true},
			},
			want: true,
		},
		{
			name: "enum property is a value",
			props: []Property{
				{Name: "Status", TypeName: "Status", IsEnumType: true},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassType("Test", tt.props)
			assert.Equal(t, tt.want, c.NeedsDestructor)
		})
	}
}

func TestSetPropertiesRecomputes(t *testing.T) {
	c := NewClassType("Test", []Property{
		{Name: "Owner", TypeName: "Person", IsReferenceType: true},
	})
	require.True(t, c.NeedsDestructor)

	c.SetProperties([]Property{{Name: "Count", TypeName: "integer"}})
	assert.False(t, c.NeedsDestructor)
}

func TestEnumTypeEqual(t *testing.T) {
	a := EnumType{Name: "Status", Variants: []EnumVariant{{Name: "Active", Key: "active"}}}
	b := EnumType{Name: "Status", Variants: []EnumVariant{{Name: "Active", Key: "active"}}}
	c := EnumType{Name: "Status", Variants: []EnumVariant{{Name: "Closed", Key: "closed"}}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(EnumType{Name: "Other"}))
}

func TestJSONFieldNaming(t *testing.T) {
	c := NewClassType("Order", []Property{
		{Name: "Lines", TypeName: "OrderLine", Key: "lines", IsReferenceType: true, IsListType: true},
	})
	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"needs_destructor"`)
	assert.Contains(t, string(data), `"type_name"`)
	assert.Contains(t, string(data), `"is_reference_type"`)
	assert.Contains(t, string(data), `"is_list_type"`)
	assert.Contains(t, string(data), `"is_enum_type"`)
}
