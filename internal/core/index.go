package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"schema-compat/internal/types"
)

// BuildIndex merges parsed schema documents into one version's
// registry. Documents sharing a namespace label contribute to the same
// qualified-name space; later-loaded documents win on name collision.
func BuildIndex(version string, docs []types.SchemaDocument) (*types.SchemaIndex, error) {
	if len(docs) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no schema documents to index")
	}

	index := &types.SchemaIndex{
		Version:      version,
		ComplexTypes: map[types.QName]types.ComplexTypeDef{},
		SimpleTypes:  map[types.QName]types.SimpleTypeDef{},
		Attributes:   map[string]types.AttributeDef{},
	}
	for _, doc := range docs {
		for _, ct := range doc.ComplexTypes {
			index.ComplexTypes[ct.Name] = ct
		}
		for _, st := range doc.SimpleTypes {
			index.SimpleTypes[st.Name] = st
		}
		for _, attr := range doc.Attributes {
			if attr.Name == "" {
				continue
			}
			index.Attributes[attr.Name] = attr
		}
	}

	log.Debug().
		Str("version", version).
		Int("documents", len(docs)).
		Int("complex_types", len(index.ComplexTypes)).
		Int("simple_types", len(index.SimpleTypes)).
		Int("attributes", len(index.Attributes)).
		Msg("schema index built")
	return index, nil
}
