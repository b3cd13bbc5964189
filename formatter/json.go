package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipp01105/attrlog/core"
)

// JSON converts records into a structured JSON tree with attribute
// routing and renaming.
//
// Without options it produces a flat object: the intrinsic fields
// message, severity, timestamp (microseconds since epoch), process
// and thread first, then every record attribute. Routing directs
// listed attributes to a location given as an RFC 6901 JSON pointer,
// with intermediate objects created on demand; unlisted attributes
// land at the default pointer (root unless overridden). Renaming
// substitutes the final key after routing.
//
// For speed no duplicate filtering happens by default, so a record
// carrying the same name twice yields a technically non-unique
// object; most parsers accept it. Unique() switches to
// last-write-wins at the cost of a lookup per key. Serialization is
// compact, with Newline() appending a single '\n' for consumers that
// require line framing.
type JSON struct {
	routes      map[string][]string
	defaultPath []string
	renames     map[string]string
	unique      bool
	newline     bool
}

// JSONBuilder configures a JSON formatter through chained calls.
// Later calls win per key.
type JSONBuilder struct {
	formatter JSON
	err       error
}

// NewJSON returns a formatter with default configuration: flat tree,
// duplicates allowed, no trailing newline.
func NewJSON() *JSON {
	f, _ := NewJSONBuilder().Build()
	return f
}

// NewJSONBuilder starts a builder.
func NewJSONBuilder() *JSONBuilder {
	return &JSONBuilder{
		formatter: JSON{
			routes:  make(map[string][]string),
			renames: make(map[string]string),
		},
	}
}

// Route directs the listed attributes to the given JSON pointer.
// With no attributes it sets the default pointer instead.
func (b *JSONBuilder) Route(pointer string, attributes ...string) *JSONBuilder {
	path, err := parsePointer(pointer)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	if len(attributes) == 0 {
		b.formatter.defaultPath = path
		return b
	}
	for _, name := range attributes {
		b.formatter.routes[name] = path
	}
	return b
}

// Rename substitutes the final key for the named attribute.
func (b *JSONBuilder) Rename(from, to string) *JSONBuilder {
	b.formatter.renames[from] = to
	return b
}

// Unique enforces key uniqueness within each object, last write wins.
func (b *JSONBuilder) Unique() *JSONBuilder {
	b.formatter.unique = true
	return b
}

// Newline appends '\n' after each record.
func (b *JSONBuilder) Newline() *JSONBuilder {
	b.formatter.newline = true
	return b
}

// Build returns the configured formatter. Pointer syntax errors from
// Route surface here.
func (b *JSONBuilder) Build() (*JSON, error) {
	if b.err != nil {
		return nil, b.err
	}
	f := b.formatter
	return &f, nil
}

// parsePointer splits an RFC 6901 pointer into reference tokens,
// unescaping ~1 and ~0. "" and "/" both address the root.
func parsePointer(pointer string) ([]string, error) {
	if pointer == "" || pointer == "/" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("json pointer %q must start with '/'", pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		parts[i] = p
	}
	return parts, nil
}

type jsonMember struct {
	key string
	obj *jsonObject
	val core.Value
}

type jsonObject struct {
	members []jsonMember
}

// child returns the object member under key, creating it on demand.
func (o *jsonObject) child(key string) *jsonObject {
	for i := range o.members {
		if o.members[i].key == key && o.members[i].obj != nil {
			return o.members[i].obj
		}
	}
	obj := &jsonObject{}
	o.members = append(o.members, jsonMember{key: key, obj: obj})
	return obj
}

func (o *jsonObject) put(key string, v core.Value, unique bool) {
	if unique {
		for i := range o.members {
			if o.members[i].key == key {
				o.members[i].obj = nil
				o.members[i].val = v
				return
			}
		}
	}
	o.members = append(o.members, jsonMember{key: key, val: v})
}

// Format builds the tree for one record and serializes it compactly.
func (f *JSON) Format(r *core.Record, w *core.Writer) error {
	root := &jsonObject{}

	f.put(root, "message", core.String(r.Message()))
	f.put(root, "severity", core.Int64(int64(r.Severity())))
	f.put(root, "timestamp", core.Int64(timestampMicros(r.Timestamp())))
	f.put(root, "process", core.Int64(int64(r.PID())))
	f.put(root, "thread", core.String("0x"+strconv.FormatUint(r.TID(), 16)))

	for _, layer := range r.Attributes() {
		for i := range layer {
			f.put(root, layer[i].Name, layer[i].Value)
		}
	}

	encodeObject(w, root)
	if f.newline {
		w.WriteByte('\n')
	}
	return nil
}

func (f *JSON) put(root *jsonObject, name string, v core.Value) {
	path, ok := f.routes[name]
	if !ok {
		path = f.defaultPath
	}
	obj := root
	for _, key := range path {
		obj = obj.child(key)
	}
	key := name
	if to, ok := f.renames[name]; ok {
		key = to
	}
	obj.put(key, v, f.unique)
}

func encodeObject(w *core.Writer, o *jsonObject) {
	w.WriteByte('{')
	for i := range o.members {
		if i > 0 {
			w.WriteByte(',')
		}
		m := &o.members[i]
		encodeString(w, m.key)
		w.WriteByte(':')
		if m.obj != nil {
			encodeObject(w, m.obj)
		} else {
			encodeValue(w, m.val)
		}
	}
	w.WriteByte('}')
}

func encodeValue(w *core.Writer, v core.Value) {
	switch v.Kind() {
	case core.KindNil:
		w.WriteString("null")
	case core.KindBool:
		if v.BoolValue() {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case core.KindInt64:
		w.WriteString(strconv.FormatInt(v.Int64Value(), 10))
	case core.KindUint64:
		w.WriteString(strconv.FormatUint(v.Uint64Value(), 10))
	case core.KindFloat64:
		w.WriteString(strconv.FormatFloat(v.Float64Value(), 'f', -1, 64))
	case core.KindString:
		encodeString(w, v.StringValue())
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// encodeString writes a quoted, JSON-escaped string. Unescaped spans
// are flushed in one piece.
func encodeString(w *core.Writer, s string) {
	w.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			w.WriteString(s[start:i])
		}
		switch c {
		case '"':
			w.WriteString(`\"`)
		case '\\':
			w.WriteString(`\\`)
		case '\n':
			w.WriteString(`\n`)
		case '\r':
			w.WriteString(`\r`)
		case '\t':
			w.WriteString(`\t`)
		default:
			w.WriteString(`\u00`)
			w.WriteByte(hexChars[c>>4])
			w.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		w.WriteString(s[start:])
	}
	w.WriteByte('"')
}
