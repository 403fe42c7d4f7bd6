package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-compat/internal/policies"
	"schema-compat/internal/types"
)

func newTestDirAdapter() *SchemaDirAdapter {
	return NewSchemaDirAdapter(policies.NewNamespaceClassifier(), DefaultFamilyMarker)
}

func writeVersionedSchema(t *testing.T, dir, name, version, typeName string) {
	t.Helper()
	content := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://diggsml.org/schemas/2.6"
           version="` + version + `">
  <xs:complexType name="` + typeName + `">
    <xs:sequence>
      <xs:element name="value" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadVersionBuildsIndex(t *testing.T) {
	dir := t.TempDir()
	writeVersionedSchema(t, dir, "a.xsd", "2.6", "AlphaType")
	writeVersionedSchema(t, dir, "b.xsd", "2.6", "BetaType")

	index, err := newTestDirAdapter().LoadVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, "2.6", index.Version)
	assert.Contains(t, index.ComplexTypes, types.QName("diggs:AlphaType"))
	assert.Contains(t, index.ComplexTypes, types.QName("diggs:BetaType"))
}

func TestLoadVersionWalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "imports")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeVersionedSchema(t, dir, "root.xsd", "2.6", "RootType")
	writeVersionedSchema(t, sub, "nested.xsd", "2.6", "NestedType")

	index, err := newTestDirAdapter().LoadVersion(dir)
	require.NoError(t, err)
	assert.Len(t, index.ComplexTypes, 2)
}

func TestLoadVersionSkipsUnparsableDocuments(t *testing.T) {
	dir := t.TempDir()
	writeVersionedSchema(t, dir, "good.xsd", "2.6", "GoodType")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xsd"), []byte("<broken"), 0644))

	index, err := newTestDirAdapter().LoadVersion(dir)
	require.NoError(t, err)
	assert.Contains(t, index.ComplexTypes, types.QName("diggs:GoodType"))
}

func TestLoadVersionNoFiles(t *testing.T) {
	_, err := newTestDirAdapter().LoadVersion(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLoadVersionNothingParses(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xsd"), []byte("<broken"), 0644))

	_, err := newTestDirAdapter().LoadVersion(dir)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestDetectVersionSkipsXMLArtifacts(t *testing.T) {
	adapter := newTestDirAdapter()
	docs := []types.SchemaDocument{
		{TargetNamespace: "http://diggsml.org/schemas/2.6", Version: "1.0"},
		{TargetNamespace: "http://diggsml.org/schemas/2.6", Version: "2.6"},
		{TargetNamespace: "http://www.opengis.net/gml/3.2", Version: "3.2.1"},
	}
	assert.Equal(t, "2.6", adapter.detectVersion(docs))
}

func TestDetectVersionPicksLowest(t *testing.T) {
	adapter := newTestDirAdapter()
	docs := []types.SchemaDocument{
		{TargetNamespace: "http://diggsml.org/schemas/2.6", Version: "2.6"},
		{TargetNamespace: "http://diggsml.org/schemas/2.6", Version: "2.5.1"},
		{TargetNamespace: "http://diggsml.org/schemas/2.6", Version: "2.10"},
	}
	assert.Equal(t, "2.5.1", adapter.detectVersion(docs))
}

func TestDetectVersionUnknown(t *testing.T) {
	adapter := newTestDirAdapter()
	docs := []types.SchemaDocument{
		{TargetNamespace: "http://www.opengis.net/gml/3.2", Version: "3.2.1"},
	}
	assert.Equal(t, "unknown", adapter.detectVersion(docs))
}

func TestSortVersionsNumericOverLexical(t *testing.T) {
	versions := []string{"2.10", "2.6", "2.5.1"}
	sortVersions(versions)
	assert.Equal(t, []string{"2.5.1", "2.6", "2.10"}, versions)
}
