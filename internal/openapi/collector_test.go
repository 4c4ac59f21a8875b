package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderDoc = `
openapi: "3.0.3"
info:
  title: Orders
  version: "1.0"
components:
  schemas:
    Order:
      type: object
      required: [id]
      properties:
        id:
          type: string
        total:
          type: number
        createdAt:
          type: string
          format: date-time
        customer:
          $ref: "#/components/schemas/Customer"
        tags:
          type: array
          items:
            type: string
        status:
          type: string
          enum: [pending, shipped, closed-out]
    Customer:
      type: object
      properties:
        name:
          type: string
`

func loadDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := LoadYAML("inline.yaml", []byte(src))
	require.NoError(t, err)
	return doc
}

func TestCollectObjectSchemas(t *testing.T) {
	doc := loadDoc(t, orderDoc)

	classes, enums, err := NewCollector(doc, "T").Collect()
	require.NoError(t, err)

	require.Len(t, classes, 2, "Customer and Order")
	customer, order := classes[0], classes[1]

	assert.Equal(t, "Customer", customer.Name)
	assert.False(t, customer.NeedsDestructor, "a class of scalars needs no destructor")

	assert.Equal(t, "Order", order.Name)
	assert.True(t, order.NeedsDestructor, "reference-type properties force a destructor")

	require.Len(t, order.Properties, 6)
	byName := map[string]int{}
	for i, p := range order.Properties {
		byName[p.Name] = i
	}

	created := order.Properties[byName["CreatedAt"]]
	assert.Equal(t, "datetime", created.TypeName)
	assert.Equal(t, "createdAt", created.Key, "serialization key keeps the schema spelling")
	assert.False(t, created.IsReferenceType)

	cust := order.Properties[byName["Customer"]]
	assert.Equal(t, "Customer", cust.TypeName)
	assert.True(t, cust.IsReferenceType)
	assert.False(t, cust.IsListType)

	tags := order.Properties[byName["Tags"]]
	assert.Equal(t, "string", tags.TypeName)
	assert.True(t, tags.IsListType)
	assert.True(t, tags.IsReferenceType, "lists are reference types")

	status := order.Properties[byName["Status"]]
	assert.True(t, status.IsEnumType)
	assert.False(t, status.IsReferenceType)

	require.Len(t, enums, 1)
	e := enums[0]
	assert.Equal(t, "Status", e.Name)
	require.Len(t, e.Variants, 3)
	assert.Equal(t, "tsPending", e.Variants[0].Name,
		"variant prefix comes from the upper-case runes of prefix plus type name")
	assert.Equal(t, "pending", e.Variants[0].Key)
	assert.Equal(t, "tsClosed_out", e.Variants[2].Name, "dashes sanitize to underscores")
	assert.Equal(t, "closed-out", e.Variants[2].Key)
}

func TestCollectEnumDeduplication(t *testing.T) {
	const doc = `
components:
  schemas:
    A:
      type: object
      properties:
        color:
          type: string
          enum: [red, green]
    B:
      type: object
      properties:
        color:
          type: string
          enum: [red, green]
`
	d := loadDoc(t, doc)

	classes, enums, err := NewCollector(d, "").Collect()
	require.NoError(t, err)

	assert.Len(t, classes, 2)
	assert.Len(t, enums, 1, "identical enums collapse to one descriptor")
}

func TestCollectArrayOfReferencedObjects(t *testing.T) {
	const doc = `
components:
  schemas:
    Basket:
      type: object
      properties:
        items:
          type: array
          items:
            $ref: "#/components/schemas/LineItem"
    LineItem:
      type: object
      properties:
        sku:
          type: string
`
	d := loadDoc(t, doc)

	classes, _, err := NewCollector(d, "").Collect()
	require.NoError(t, err)

	require.Len(t, classes, 2)
	assert.Equal(t, "Basket", classes[0].Name)

	items := classes[0].Properties[0]
	assert.Equal(t, "LineItem", items.TypeName, "referenced item types keep their schema name")
	assert.True(t, items.IsListType)
	assert.True(t, items.IsReferenceType)
}

func TestCollectArrayWithoutItemsFails(t *testing.T) {
	const doc = `
components:
  schemas:
    Broken:
      type: object
      properties:
        things:
          type: array
`
	d := loadDoc(t, doc)

	_, _, err := NewCollector(d, "").Collect()
	require.Error(t, err)

	var de *DocumentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrCodeInvalidSchema, de.Code)
}

func TestResolveSchemaDanglingRef(t *testing.T) {
	d := &Document{}
	_, err := d.ResolveSchema(&Schema{Ref: "#/components/schemas/Missing"})
	require.Error(t, err)
	assert.True(t, IsUnresolvedRef(err))
}
