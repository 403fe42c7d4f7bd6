package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	service := NewService()
	service.Clock = func() time.Time { return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC) }
	service.NewRunID = func() string { return "test-run" }
	return service
}

func writeSchema(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const oldSchemaDoc = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:diggs="http://diggsml.org/schemas/2.5"
           targetNamespace="http://diggsml.org/schemas/2.5"
           version="2.5">
  <xs:complexType name="ContactType">
    <xs:sequence>
      <xs:element name="name" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="GoneType">
    <xs:sequence>
      <xs:element name="value" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:simpleType name="StatusType">
    <xs:restriction base="xs:string"><xs:enumeration value="open"/></xs:restriction>
  </xs:simpleType>
</xs:schema>`

const newSchemaDoc = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:diggs="http://diggsml.org/schemas/2.6"
           targetNamespace="http://diggsml.org/schemas/2.6"
           version="2.6">
  <xs:complexType name="ContactType">
    <xs:sequence>
      <xs:element name="name" type="xs:string"/>
      <xs:element name="email" type="xs:string" minOccurs="0"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="FreshType">
    <xs:sequence>
      <xs:element name="value" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:simpleType name="StatusType">
    <xs:restriction base="xs:string"><xs:enumeration value="open"/></xs:restriction>
  </xs:simpleType>
</xs:schema>`

func writeVersionPair(t *testing.T) (oldDir, newDir string) {
	t.Helper()
	root := t.TempDir()
	oldDir = filepath.Join(root, "old")
	newDir = filepath.Join(root, "new")
	writeSchema(t, oldDir, "schema.xsd", oldSchemaDoc)
	writeSchema(t, newDir, "schema.xsd", newSchemaDoc)
	return oldDir, newDir
}

func TestAnalyzeEndToEnd(t *testing.T) {
	oldDir, newDir := writeVersionPair(t)
	outputDir := filepath.Join(t.TempDir(), "report")

	service := newTestService()
	result, err := service.Analyze(context.Background(), AnalyzeRequest{
		OldDir:    oldDir,
		NewDir:    newDir,
		OutputDir: outputDir,
	})
	require.NoError(t, err)

	assert.Equal(t, "test-run", result.RunID)
	assert.Equal(t, "2.5", result.OldVersion)
	assert.Equal(t, "2.6", result.NewVersion)
	assert.Equal(t, 2, result.TypesChecked)
	assert.Equal(t, 1, result.Compatible)
	assert.Equal(t, 0, result.Incompatible)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 1, result.SimpleTypesChecked)
	assert.Zero(t, result.Truncations)

	summary, err := service.ReportReader.ReadSummary(outputDir)
	require.NoError(t, err)
	assert.Equal(t, "test-run", summary.RunID)
	assert.Equal(t, "2026-08-29T10:00:00Z", summary.CreatedAt)
	assert.Equal(t, result.Compatible, summary.Compatible)
	assert.Equal(t, result.Removed, summary.Removed)

	for _, name := range []string{"types.csv", "simpletypes.csv", "summary.yaml"} {
		_, err := os.Stat(filepath.Join(outputDir, name))
		assert.NoError(t, err, "missing report file %s", name)
	}
}

func TestAnalyzeWithMappings(t *testing.T) {
	root := t.TempDir()
	oldDir := filepath.Join(root, "old")
	newDir := filepath.Join(root, "new")
	writeSchema(t, oldDir, "schema.xsd", `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://diggsml.org/schemas/2.5"
           version="2.5">
  <xs:complexType name="OldName">
    <xs:sequence><xs:element name="value" type="xs:string"/></xs:sequence>
  </xs:complexType>
</xs:schema>`)
	writeSchema(t, newDir, "schema.xsd", `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://diggsml.org/schemas/2.6"
           version="2.6">
  <xs:complexType name="NewName">
    <xs:sequence><xs:element name="value" type="xs:string"/></xs:sequence>
  </xs:complexType>
</xs:schema>`)
	mappingPath := filepath.Join(root, "mappings.tsv")
	require.NoError(t, os.WriteFile(mappingPath, []byte("OldName\tNewName\n"), 0644))

	result, err := newTestService().Analyze(context.Background(), AnalyzeRequest{
		OldDir:      oldDir,
		NewDir:      newDir,
		MappingPath: mappingPath,
		OutputDir:   filepath.Join(root, "report"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Renamed)
	assert.Equal(t, 1, result.Compatible)
	assert.Zero(t, result.Removed)
}

func TestAnalyzeWorkersMatchSerial(t *testing.T) {
	oldDir, newDir := writeVersionPair(t)
	root := t.TempDir()

	serial, err := newTestService().Analyze(context.Background(), AnalyzeRequest{
		OldDir:    oldDir,
		NewDir:    newDir,
		OutputDir: filepath.Join(root, "serial"),
	})
	require.NoError(t, err)

	parallel, err := newTestService().Analyze(context.Background(), AnalyzeRequest{
		OldDir:    oldDir,
		NewDir:    newDir,
		OutputDir: filepath.Join(root, "parallel"),
		Workers:   4,
	})
	require.NoError(t, err)

	serial.OutputDir = ""
	parallel.OutputDir = ""
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Fatalf("worker sharding changed the result (-want +got):\n%s", diff)
	}
}

func TestAnalyzeValidatesDirectories(t *testing.T) {
	_, err := newTestService().Analyze(context.Background(), AnalyzeRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
