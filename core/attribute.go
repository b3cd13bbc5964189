package core

// Attribute is a named value attached to a log record.
type Attribute struct {
	Name  string
	Value Value
}

// View is a zero-copy view over one layer of attributes. The slice
// belongs to the caller; a View never copies or mutates it.
type View []Attribute

// Lookup returns the first attribute with the given name. Names are
// case-sensitive; duplicates within a layer resolve to the first match.
func (v View) Lookup(name string) (Value, bool) {
	for i := range v {
		if v[i].Name == name {
			return v[i].Value, true
		}
	}
	return Value{}, false
}

// Pack is an ordered stack of attribute layers. Index 0 is the
// innermost layer (the most recent scope), followed by the caller's
// pack. Layers are referenced, not copied, and must outlive the
// records built over them.
type Pack []View

// Lookup scans layers innermost-first and stops at the first match.
func (p Pack) Lookup(name string) (Value, bool) {
	for _, layer := range p {
		if v, ok := layer.Lookup(name); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Len returns the total number of attributes across all layers.
func (p Pack) Len() int {
	n := 0
	for _, layer := range p {
		n += len(layer)
	}
	return n
}
