package policies

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"
)

// XMLSchemaNamespace is the namespace of the XML Schema built-in types.
// It always classifies to the reserved "xs" label.
const XMLSchemaNamespace = "http://www.w3.org/2001/XMLSchema"

// NamespaceRule matches a target-namespace URI that contains every
// fragment in Contains and assigns it the short Label used to qualify
// registry keys. Rules are evaluated in order; more specific rules must
// precede more general ones.
type NamespaceRule struct {
	Contains []string `yaml:"contains"`
	Label    string   `yaml:"label"`
}

type classifierFile struct {
	Rules []NamespaceRule `yaml:"rules"`
}

// NamespaceClassifier derives one namespace label per document from its
// declared target namespace. Unknown namespaces fall back to the last
// path segment of the URI.
type NamespaceClassifier struct {
	rules []NamespaceRule
}

// defaultRules is the fixed classification table for the DIGGS schema
// family and the namespaces it imports.
var defaultRules = []NamespaceRule{
	{Contains: []string{"diggsml.org/schemas", "geotechnical"}, Label: "diggs_geo"},
	{Contains: []string{"diggsml.org/schemas"}, Label: "diggs"},
	{Contains: []string{"energistics.org/energyml/data/commonv2"}, Label: "eml"},
	{Contains: []string{"energistics.org/energyml/data/witsmlv2"}, Label: "witsml"},
	{Contains: []string{"opengis.net/gml", "/lrov"}, Label: "glrov"},
	{Contains: []string{"opengis.net/gml", "/lr"}, Label: "glr"},
	{Contains: []string{"opengis.net/gml"}, Label: "gml"},
}

// NewNamespaceClassifier returns a classifier over the built-in table.
func NewNamespaceClassifier() *NamespaceClassifier {
	return &NamespaceClassifier{rules: defaultRules}
}

// LoadNamespaceClassifier reads extra rules from a YAML file. File
// rules are tried before the built-in table.
func LoadNamespaceClassifier(path string) (*NamespaceClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read namespace rules file: " + path).
			WithCause(err)
	}
	var file classifierFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse namespace rules file: " + path).
			WithCause(err)
	}
	for _, rule := range file.Rules {
		if strings.TrimSpace(rule.Label) == "" || len(rule.Contains) == 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("namespace rule must set label and contains: " + path)
		}
	}
	rules := append(append([]NamespaceRule(nil), file.Rules...), defaultRules...)
	return &NamespaceClassifier{rules: rules}, nil
}

// Classify maps a target-namespace URI to its label.
func (c *NamespaceClassifier) Classify(targetNS string) string {
	targetNS = strings.TrimSpace(targetNS)
	if targetNS == "" {
		return "unknown"
	}
	if targetNS == XMLSchemaNamespace {
		return "xs"
	}
	for _, rule := range c.rules {
		if matchesRule(targetNS, rule) {
			return rule.Label
		}
	}
	return lastPathSegment(targetNS)
}

func matchesRule(targetNS string, rule NamespaceRule) bool {
	for _, fragment := range rule.Contains {
		if !strings.Contains(targetNS, fragment) {
			return false
		}
	}
	return true
}

func lastPathSegment(uri string) string {
	trimmed := strings.TrimRight(uri, "/")
	parts := strings.Split(trimmed, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "unknown"
	}
	return last
}
