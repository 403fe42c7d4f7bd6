package types

// TypeMapping is the old-name→new-name rename table, loaded once from a
// tab-separated file and read-only during analysis. Keys and values may
// be qualified ("eml:Foo") or bare ("Foo") depending on how the file
// was written.
type TypeMapping map[string]string

func (m TypeMapping) Lookup(name string) (string, bool) {
	target, ok := m[name]
	return target, ok
}

func (m TypeMapping) Len() int {
	return len(m)
}
