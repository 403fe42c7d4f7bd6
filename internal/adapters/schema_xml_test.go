package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-compat/internal/policies"
	"schema-compat/internal/types"
)

func writeSchemaFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSchemaFileCanonicalizesReferences(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:diggs="http://diggsml.org/schemas/2.6"
           xmlns:g="http://www.opengis.net/gml/3.2"
           targetNamespace="http://diggsml.org/schemas/2.6"
           version="2.6">
  <xs:complexType name="BoreholeType">
    <xs:sequence>
      <xs:element name="location" type="g:PointType" minOccurs="0" maxOccurs="1"/>
      <xs:element name="name" type="xs:string"/>
      <xs:element name="remark" type="diggs:RemarkType" minOccurs="0" maxOccurs="unbounded"/>
    </xs:sequence>
    <xs:attribute name="srsName" type="xs:anyURI" use="required"/>
  </xs:complexType>
</xs:schema>`
	path := writeSchemaFile(t, "borehole.xsd", content)

	doc, err := ParseSchemaFile(path, policies.NewNamespaceClassifier())
	require.NoError(t, err)
	assert.Equal(t, "diggs", doc.Label)
	assert.Equal(t, "2.6", doc.Version)
	require.Len(t, doc.ComplexTypes, 1)

	ct := doc.ComplexTypes[0]
	assert.Equal(t, types.QName("diggs:BoreholeType"), ct.Name)
	require.Len(t, ct.Members, 1)
	elements := ct.Members[0].Elements
	require.Len(t, elements, 3)

	// Document prefixes rewrite to classifier labels.
	assert.Equal(t, "gml:PointType", elements[0].Type)
	assert.Equal(t, "xs:string", elements[1].Type)
	assert.Equal(t, "diggs:RemarkType", elements[2].Type)

	// Missing occurrence attributes default to 1.
	assert.Equal(t, types.Occurs(1), elements[1].MinOccurs)
	assert.Equal(t, types.Occurs(1), elements[1].MaxOccurs)
	assert.Equal(t, types.Occurs(0), elements[2].MinOccurs)
	assert.True(t, elements[2].MaxOccurs.Unbounded())

	require.Len(t, ct.Attributes, 1)
	assert.Equal(t, "srsName", ct.Attributes[0].Name)
	assert.Equal(t, types.AttributeUseRequired, ct.Attributes[0].Use)
}

func TestParseSchemaFileExtension(t *testing.T) {
	content := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:diggs="http://diggsml.org/schemas/2.6"
           targetNamespace="http://diggsml.org/schemas/2.6">
  <xs:complexType name="DerivedType">
    <xs:complexContent>
      <xs:extension base="diggs:AbstractType">
        <xs:sequence>
          <xs:element name="extra" type="xs:string" minOccurs="0"/>
        </xs:sequence>
        <xs:attribute name="kind" type="xs:string"/>
      </xs:extension>
    </xs:complexContent>
  </xs:complexType>
</xs:schema>`
	path := writeSchemaFile(t, "derived.xsd", content)

	doc, err := ParseSchemaFile(path, policies.NewNamespaceClassifier())
	require.NoError(t, err)
	require.Len(t, doc.ComplexTypes, 1)

	ct := doc.ComplexTypes[0]
	assert.Equal(t, "diggs:AbstractType", ct.Base)
	assert.True(t, ct.IsExtension)
	require.Len(t, ct.Members, 1)
	assert.Equal(t, "extra", ct.Members[0].Elements[0].Name)
	require.Len(t, ct.Attributes, 1)
	assert.Equal(t, "kind", ct.Attributes[0].Name)
	assert.Equal(t, types.AttributeUseOptional, ct.Attributes[0].Use, "unset use defaults to optional")
}

func TestParseSchemaFileRestriction(t *testing.T) {
	content := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:diggs="http://diggsml.org/schemas/2.6"
           targetNamespace="http://diggsml.org/schemas/2.6">
  <xs:complexType name="NarrowType">
    <xs:complexContent>
      <xs:restriction base="diggs:WideType">
        <xs:sequence>
          <xs:element name="value" type="xs:double"/>
        </xs:sequence>
      </xs:restriction>
    </xs:complexContent>
  </xs:complexType>
</xs:schema>`
	path := writeSchemaFile(t, "narrow.xsd", content)

	doc, err := ParseSchemaFile(path, policies.NewNamespaceClassifier())
	require.NoError(t, err)
	ct := doc.ComplexTypes[0]
	assert.Equal(t, "diggs:WideType", ct.Base)
	assert.False(t, ct.IsExtension)
}

func TestParseSchemaFileNestedGroups(t *testing.T) {
	content := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://diggsml.org/schemas/2.6">
  <xs:complexType name="MixedType">
    <xs:sequence>
      <xs:element name="head" type="xs:string"/>
      <xs:choice>
        <xs:element name="left" type="xs:string"/>
        <xs:element name="right" type="xs:string"/>
      </xs:choice>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`
	path := writeSchemaFile(t, "mixed.xsd", content)

	doc, err := ParseSchemaFile(path, policies.NewNamespaceClassifier())
	require.NoError(t, err)
	ct := doc.ComplexTypes[0]
	require.Len(t, ct.Members, 1)
	seq := ct.Members[0]
	assert.Equal(t, types.GroupKindSequence, seq.Kind)
	require.Len(t, seq.Elements, 1)
	require.Len(t, seq.Groups, 1)
	choice := seq.Groups[0]
	assert.Equal(t, types.GroupKindChoice, choice.Kind)

	var names []string
	for _, elem := range choice.Elements {
		names = append(names, elem.Name)
	}
	if diff := cmp.Diff([]string{"left", "right"}, names); diff != "" {
		t.Fatalf("unexpected choice members (-want +got):\n%s", diff)
	}
}

func TestParseSchemaFileElementAndAttributeRefs(t *testing.T) {
	content := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:g="http://www.opengis.net/gml/3.2"
           targetNamespace="http://diggsml.org/schemas/2.6">
  <xs:complexType name="RefType">
    <xs:sequence>
      <xs:element ref="g:name" minOccurs="0"/>
    </xs:sequence>
    <xs:attribute ref="g:id" use="required"/>
  </xs:complexType>
  <xs:attribute name="id" type="xs:string"/>
</xs:schema>`
	path := writeSchemaFile(t, "refs.xsd", content)

	doc, err := ParseSchemaFile(path, policies.NewNamespaceClassifier())
	require.NoError(t, err)

	ct := doc.ComplexTypes[0]
	require.Len(t, ct.Members[0].Elements, 1)
	assert.Equal(t, "gml:name", ct.Members[0].Elements[0].Name)
	assert.Empty(t, ct.Members[0].Elements[0].Type)

	require.Len(t, ct.Attributes, 1)
	assert.Equal(t, "gml:id", ct.Attributes[0].Name)
	assert.True(t, ct.Attributes[0].Ref)
	assert.Equal(t, types.AttributeUseRequired, ct.Attributes[0].Use)

	require.Len(t, doc.Attributes, 1)
	assert.Equal(t, "id", doc.Attributes[0].Name)
}

func TestParseSchemaFileSimpleTypeBody(t *testing.T) {
	content := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://diggsml.org/schemas/2.6">
  <xs:simpleType name="StatusType">
    <xs:restriction base="xs:string">
      <xs:enumeration value="open"/>
      <xs:enumeration value="closed"/>
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`
	path := writeSchemaFile(t, "status.xsd", content)

	doc, err := ParseSchemaFile(path, policies.NewNamespaceClassifier())
	require.NoError(t, err)
	require.Len(t, doc.SimpleTypes, 1)
	st := doc.SimpleTypes[0]
	assert.Equal(t, types.QName("diggs:StatusType"), st.Name)
	assert.Contains(t, st.Body, `<xs:enumeration value="open"/>`)
	assert.Contains(t, st.Body, `<xs:enumeration value="closed"/>`)
}

func TestParseSchemaFileErrors(t *testing.T) {
	_, err := ParseSchemaFile(filepath.Join(t.TempDir(), "absent.xsd"), policies.NewNamespaceClassifier())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	path := writeSchemaFile(t, "broken.xsd", "<xs:schema><unclosed>")
	_, err = ParseSchemaFile(path, policies.NewNamespaceClassifier())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
