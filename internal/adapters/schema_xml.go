package adapters

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"schema-compat/internal/policies"
	"schema-compat/internal/types"
)

// xsdSchema mirrors the subset of an XML Schema document the analysis
// needs: global complex types, simple types, and attributes, plus the
// namespace declarations required to canonicalize references.
type xsdSchema struct {
	TargetNamespace string           `xml:"targetNamespace,attr"`
	Version         string           `xml:"version,attr"`
	ComplexTypes    []xsdComplexType `xml:"http://www.w3.org/2001/XMLSchema complexType"`
	SimpleTypes     []xsdSimpleType  `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
	Attributes      []xsdAttribute   `xml:"http://www.w3.org/2001/XMLSchema attribute"`
	Attrs           []xml.Attr       `xml:",any,attr"`
}

type xsdComplexType struct {
	Name           string         `xml:"name,attr"`
	Sequences      []xsdGroup     `xml:"http://www.w3.org/2001/XMLSchema sequence"`
	Choices        []xsdGroup     `xml:"http://www.w3.org/2001/XMLSchema choice"`
	Attributes     []xsdAttribute `xml:"http://www.w3.org/2001/XMLSchema attribute"`
	ComplexContent *xsdContent    `xml:"http://www.w3.org/2001/XMLSchema complexContent"`
	SimpleContent  *xsdContent    `xml:"http://www.w3.org/2001/XMLSchema simpleContent"`
}

type xsdContent struct {
	Extension   *xsdDerivation `xml:"http://www.w3.org/2001/XMLSchema extension"`
	Restriction *xsdDerivation `xml:"http://www.w3.org/2001/XMLSchema restriction"`
}

type xsdDerivation struct {
	Base       string         `xml:"base,attr"`
	Sequences  []xsdGroup     `xml:"http://www.w3.org/2001/XMLSchema sequence"`
	Choices    []xsdGroup     `xml:"http://www.w3.org/2001/XMLSchema choice"`
	Attributes []xsdAttribute `xml:"http://www.w3.org/2001/XMLSchema attribute"`
}

type xsdGroup struct {
	Elements  []xsdElement `xml:"http://www.w3.org/2001/XMLSchema element"`
	Sequences []xsdGroup   `xml:"http://www.w3.org/2001/XMLSchema sequence"`
	Choices   []xsdGroup   `xml:"http://www.w3.org/2001/XMLSchema choice"`
}

type xsdElement struct {
	Name      string `xml:"name,attr"`
	Ref       string `xml:"ref,attr"`
	Type      string `xml:"type,attr"`
	MinOccurs string `xml:"minOccurs,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`
}

type xsdAttribute struct {
	Name string `xml:"name,attr"`
	Ref  string `xml:"ref,attr"`
	Type string `xml:"type,attr"`
	Use  string `xml:"use,attr"`
}

type xsdSimpleType struct {
	Name string `xml:"name,attr"`
	Body string `xml:",innerxml"`
}

// refResolver rewrites prefixed references ("diggs:FooType") to the
// canonical "label:FooType" form using the document's own namespace
// declarations, so all downstream logic operates on classified labels
// instead of per-document prefixes.
type refResolver struct {
	prefixLabels map[string]string
	defaultLabel string
	docLabel     string
}

func newRefResolver(schema *xsdSchema, classifier *policies.NamespaceClassifier) refResolver {
	r := refResolver{prefixLabels: map[string]string{}}
	for _, attr := range schema.Attrs {
		switch {
		case attr.Name.Space == "xmlns":
			r.prefixLabels[attr.Name.Local] = classifier.Classify(attr.Value)
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			r.defaultLabel = classifier.Classify(attr.Value)
		}
	}
	r.docLabel = classifier.Classify(schema.TargetNamespace)
	return r
}

func (r refResolver) canonical(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if idx := strings.Index(ref, ":"); idx >= 0 {
		if label, ok := r.prefixLabels[ref[:idx]]; ok {
			return label + ":" + ref[idx+1:]
		}
		return ref
	}
	if r.defaultLabel != "" {
		return r.defaultLabel + ":" + ref
	}
	return ref
}

// ParseSchemaFile parses one .xsd document into typed records with all
// references canonicalized through the namespace classifier.
func ParseSchemaFile(path string, classifier *policies.NamespaceClassifier) (types.SchemaDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.SchemaDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read schema document: " + path).
			WithCause(err)
	}
	var schema xsdSchema
	if err := xml.Unmarshal(content, &schema); err != nil {
		return types.SchemaDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse schema document: " + path).
			WithCause(err)
	}

	refs := newRefResolver(&schema, classifier)
	doc := types.SchemaDocument{
		Path:            path,
		TargetNamespace: strings.TrimSpace(schema.TargetNamespace),
		Label:           refs.docLabel,
		Version:         strings.TrimSpace(schema.Version),
	}

	for _, ct := range schema.ComplexTypes {
		if strings.TrimSpace(ct.Name) == "" {
			continue
		}
		doc.ComplexTypes = append(doc.ComplexTypes, convertComplexType(ct, refs, refs.docLabel))
	}
	for _, st := range schema.SimpleTypes {
		if strings.TrimSpace(st.Name) == "" {
			continue
		}
		doc.SimpleTypes = append(doc.SimpleTypes, types.SimpleTypeDef{
			Name: types.MakeQName(refs.docLabel, strings.TrimSpace(st.Name)),
			Body: st.Body,
		})
	}
	for _, attr := range schema.Attributes {
		if strings.TrimSpace(attr.Name) == "" {
			continue
		}
		doc.Attributes = append(doc.Attributes, convertAttribute(attr, refs))
	}
	return doc, nil
}

func convertComplexType(ct xsdComplexType, refs refResolver, label string) types.ComplexTypeDef {
	def := types.ComplexTypeDef{
		Name: types.MakeQName(label, strings.TrimSpace(ct.Name)),
	}

	groups := convertGroups(ct.Sequences, ct.Choices, refs)
	attrs := ct.Attributes

	derivation, isExtension := pickDerivation(ct)
	if derivation != nil {
		def.Base = refs.canonical(derivation.Base)
		def.IsExtension = isExtension
		groups = convertGroups(derivation.Sequences, derivation.Choices, refs)
		attrs = append(attrs, derivation.Attributes...)
	}
	def.Members = groups
	for _, attr := range attrs {
		def.Attributes = append(def.Attributes, convertAttribute(attr, refs))
	}
	return def
}

// pickDerivation finds the type's extension or restriction body,
// preferring extension as the system being modeled does.
func pickDerivation(ct xsdComplexType) (*xsdDerivation, bool) {
	for _, content := range []*xsdContent{ct.ComplexContent, ct.SimpleContent} {
		if content == nil {
			continue
		}
		if content.Extension != nil {
			return content.Extension, true
		}
		if content.Restriction != nil {
			return content.Restriction, false
		}
	}
	return nil, false
}

func convertGroups(sequences, choices []xsdGroup, refs refResolver) []types.MemberGroup {
	var groups []types.MemberGroup
	for _, seq := range sequences {
		groups = append(groups, convertGroup(seq, types.GroupKindSequence, refs))
	}
	for _, choice := range choices {
		groups = append(groups, convertGroup(choice, types.GroupKindChoice, refs))
	}
	return groups
}

func convertGroup(group xsdGroup, kind types.GroupKind, refs refResolver) types.MemberGroup {
	converted := types.MemberGroup{Kind: kind}
	for _, elem := range group.Elements {
		name := strings.TrimSpace(elem.Name)
		if name == "" {
			name = refs.canonical(elem.Ref)
		}
		if name == "" {
			continue
		}
		converted.Elements = append(converted.Elements, types.ElementDef{
			Name:      name,
			Type:      refs.canonical(elem.Type),
			MinOccurs: types.ParseMinOccurs(strings.TrimSpace(elem.MinOccurs)),
			MaxOccurs: types.ParseMaxOccurs(strings.TrimSpace(elem.MaxOccurs)),
		})
	}
	converted.Groups = append(converted.Groups, convertGroups(group.Sequences, group.Choices, refs)...)
	return converted
}

func convertAttribute(attr xsdAttribute, refs refResolver) types.AttributeDef {
	if ref := strings.TrimSpace(attr.Ref); ref != "" {
		return types.AttributeDef{
			Name: refs.canonical(ref),
			Use:  types.AttributeUse(strings.TrimSpace(attr.Use)),
			Ref:  true,
		}
	}
	use := types.AttributeUse(strings.TrimSpace(attr.Use))
	if use == "" {
		use = types.AttributeUseOptional
	}
	return types.AttributeDef{
		Name: strings.TrimSpace(attr.Name),
		Type: refs.canonical(attr.Type),
		Use:  use,
	}
}
