// Package types holds the domain model shared by every layer: qualified
// names, schema declarations, resolved content models, and report
// records.
package types

import "strings"

// QName is a registry key of the form "label:Local", where label is the
// classified namespace label of the declaring document. Built-in
// references keep their canonical "xs" prefix and bare names carry no
// colon at all.
type QName string

// MakeQName builds a qualified name from a namespace label and a local
// name. An empty label yields the bare local name.
func MakeQName(label, local string) QName {
	if label == "" {
		return QName(local)
	}
	return QName(label + ":" + local)
}

// Label returns the namespace label, or "" for a bare name.
func (q QName) Label() string {
	if idx := strings.Index(string(q), ":"); idx >= 0 {
		return string(q)[:idx]
	}
	return ""
}

// Local returns the local name after the first colon.
func (q QName) Local() string {
	if idx := strings.Index(string(q), ":"); idx >= 0 {
		return string(q)[idx+1:]
	}
	return string(q)
}

// Qualified reports whether the name carries a namespace label.
func (q QName) Qualified() bool {
	return strings.Contains(string(q), ":")
}

func (q QName) String() string {
	return string(q)
}
