package types

// ElementSet is an insertion-ordered name→ElementDef mapping. Replacing
// an existing entry keeps its original position, so local overrides of
// inherited members do not reorder the model.
type ElementSet struct {
	names []string
	items map[string]ElementDef
}

func (s *ElementSet) Put(e ElementDef) {
	if s.items == nil {
		s.items = map[string]ElementDef{}
	}
	if _, ok := s.items[e.Name]; !ok {
		s.names = append(s.names, e.Name)
	}
	s.items[e.Name] = e
}

func (s *ElementSet) Get(name string) (ElementDef, bool) {
	e, ok := s.items[name]
	return e, ok
}

func (s *ElementSet) Has(name string) bool {
	_, ok := s.items[name]
	return ok
}

// Names returns the member names in insertion order.
func (s *ElementSet) Names() []string {
	return append([]string(nil), s.names...)
}

func (s *ElementSet) Len() int {
	return len(s.names)
}

// AttributeSet is the attribute counterpart of ElementSet.
type AttributeSet struct {
	names []string
	items map[string]AttributeDef
}

func (s *AttributeSet) Put(a AttributeDef) {
	if s.items == nil {
		s.items = map[string]AttributeDef{}
	}
	if _, ok := s.items[a.Name]; !ok {
		s.names = append(s.names, a.Name)
	}
	s.items[a.Name] = a
}

func (s *AttributeSet) Get(name string) (AttributeDef, bool) {
	a, ok := s.items[name]
	return a, ok
}

func (s *AttributeSet) Has(name string) bool {
	_, ok := s.items[name]
	return ok
}

func (s *AttributeSet) Names() []string {
	return append([]string(nil), s.names...)
}

func (s *AttributeSet) Len() int {
	return len(s.names)
}

// ContentModel is the resolved, inheritance-flattened member set of one
// type in one schema version: inherited members first, then local ones,
// with local declarations replacing inherited entries of the same name.
type ContentModel struct {
	Elements   ElementSet
	Attributes AttributeSet
}

// Merge overlays other onto the model: entries replace same-named
// existing entries in place, new entries are appended.
func (m *ContentModel) Merge(other ContentModel) {
	for _, name := range other.Elements.Names() {
		e, _ := other.Elements.Get(name)
		m.Elements.Put(e)
	}
	for _, name := range other.Attributes.Names() {
		a, _ := other.Attributes.Get(name)
		m.Attributes.Put(a)
	}
}
