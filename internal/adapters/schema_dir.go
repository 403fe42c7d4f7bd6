package adapters

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"schema-compat/internal/core"
	"schema-compat/internal/policies"
	"schema-compat/internal/ports"
	"schema-compat/internal/types"
)

// DefaultFamilyMarker identifies the schema family whose documents
// carry the version attribute that names a schema release.
const DefaultFamilyMarker = "diggsml.org"

// SchemaDirAdapter loads one schema version from a directory tree of
// .xsd files and builds its registry.
type SchemaDirAdapter struct {
	classifier   *policies.NamespaceClassifier
	familyMarker string
}

func NewSchemaDirAdapter(classifier *policies.NamespaceClassifier, familyMarker string) *SchemaDirAdapter {
	if strings.TrimSpace(familyMarker) == "" {
		familyMarker = DefaultFamilyMarker
	}
	return &SchemaDirAdapter{classifier: classifier, familyMarker: familyMarker}
}

// LoadVersion discovers, parses, and indexes every schema document
// under dir. Individual unparsable documents are skipped with a
// warning; the load fails only when no document parses at all.
func (a *SchemaDirAdapter) LoadVersion(dir string) (*types.SchemaIndex, error) {
	files, err := findSchemaFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no .xsd files found in " + dir)
	}

	var docs []types.SchemaDocument
	var parseErrs *multierror.Error
	for _, path := range files {
		doc, err := ParseSchemaFile(path, a.classifier)
		if err != nil {
			parseErrs = multierror.Append(parseErrs, err)
			log.Warn().Str("file", path).Err(err).Msg("skipping unparsable schema document")
			continue
		}
		docs = append(docs, doc)
		log.Debug().Str("file", path).Str("label", doc.Label).Msg("schema document loaded")
	}
	if len(docs) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no schema documents parsed in " + dir).
			WithCause(parseErrs.ErrorOrNil())
	}

	version := a.detectVersion(docs)
	index, err := core.BuildIndex(version, docs)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("dir", dir).
		Str("version", version).
		Int("complex_types", len(index.ComplexTypes)).
		Int("simple_types", len(index.SimpleTypes)).
		Int("attributes", len(index.Attributes)).
		Msg("schema version loaded")
	return index, nil
}

// detectVersion collects version attributes from documents belonging to
// the schema family, ignoring XML-declaration artifacts. On multiple
// candidates the lowest wins; when no document names a version the
// index is labeled "unknown" with a warning.
func (a *SchemaDirAdapter) detectVersion(docs []types.SchemaDocument) string {
	seen := map[string]struct{}{}
	var versions []string
	for _, doc := range docs {
		if !strings.Contains(doc.TargetNamespace, a.familyMarker) {
			continue
		}
		version := doc.Version
		if version == "" || version == "1.0" || version == "1.1" {
			continue
		}
		if _, dup := seen[version]; dup {
			continue
		}
		seen[version] = struct{}{}
		versions = append(versions, version)
	}
	switch len(versions) {
	case 0:
		log.Warn().Str("family", a.familyMarker).Msg("no schema family version detected")
		return "unknown"
	case 1:
		return versions[0]
	}
	sortVersions(versions)
	log.Warn().Strs("versions", versions).Str("using", versions[0]).
		Msg("multiple schema family versions detected")
	return versions[0]
}

// sortVersions orders version labels numerically where possible,
// falling back to lexical order for labels PEP 440 cannot parse.
func sortVersions(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		vi, erri := pep440.Parse(versions[i])
		vj, errj := pep440.Parse(versions[j])
		if erri != nil || errj != nil {
			return versions[i] < versions[j]
		}
		return vi.LessThan(vj)
	})
}

func findSchemaFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(path), ".xsd") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to scan schema directory: " + dir).
			WithCause(err)
	}
	sort.Strings(files)
	return files, nil
}

var _ ports.SchemaSourcePort = (*SchemaDirAdapter)(nil)
