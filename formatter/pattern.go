package formatter

import (
	"fmt"

	"github.com/philipp01105/attrlog/core"
)

// SeverityMapper renders a severity level into the writer. The spec
// argument carries the format specification as it appeared in the
// pattern, so mappers can honor or ignore it.
type SeverityMapper func(severity int, spec string, w *core.Writer)

// Optional makes a generic placeholder optional: when the attribute
// is absent the placeholder emits nothing, when present it emits
// Prefix + value + Suffix.
type Optional struct {
	Prefix string
	Suffix string
}

// Leftover configures the `{...}` placeholder. Pattern is the item
// pattern and may reference {name} and {value}; it defaults to
// "{name}: {value}". Separator defaults to ", ". Unique suppresses
// attributes whose name was already emitted.
type Leftover struct {
	Unique    bool
	Prefix    string
	Suffix    string
	Pattern   string
	Separator string
}

type patternConfig struct {
	sevmap    SeverityMapper
	optionals map[string]Optional
	leftover  Leftover
}

// PatternOption configures a Pattern at construction.
type PatternOption func(*patternConfig)

// WithSeverityMapper installs a severity rendering callback.
func WithSeverityMapper(fn SeverityMapper) PatternOption {
	return func(cfg *patternConfig) { cfg.sevmap = fn }
}

// WithOptional marks the named placeholder optional.
func WithOptional(name, prefix, suffix string) PatternOption {
	return func(cfg *patternConfig) {
		cfg.optionals[name] = Optional{Prefix: prefix, Suffix: suffix}
	}
}

// WithLeftover configures the leftover placeholder.
func WithLeftover(l Leftover) PatternOption {
	return func(cfg *patternConfig) { cfg.leftover = l }
}

// Pattern converts records to text using a pattern precompiled into a
// token list. The pattern uses brace syntax: literal text is copied
// verbatim ({{ and }} escape braces), {name[:spec]} references an
// attribute, and {...} emits every attribute not named elsewhere.
//
// The names message, severity, timestamp, process and thread are
// reserved and always refer to the record's intrinsic fields; user
// attributes cannot shadow them.
type Pattern struct {
	pattern   string
	tokens    []token
	named     map[string]struct{}
	sevmap    SeverityMapper
	leftover  Leftover
	itemToks  []itemToken
	separator string
}

// NewPattern compiles the pattern. Compilation errors fail
// construction; the compiled form is a pure function of the inputs.
func NewPattern(pattern string, opts ...PatternOption) (*Pattern, error) {
	cfg := &patternConfig{
		optionals: make(map[string]Optional),
		leftover:  Leftover{Separator: ", "},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.leftover.Separator == "" {
		cfg.leftover.Separator = ", "
	}

	tokens, named, err := compile(pattern, cfg)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		pattern:   pattern,
		tokens:    tokens,
		named:     named,
		sevmap:    cfg.sevmap,
		leftover:  cfg.leftover,
		itemToks:  compileItemPattern(cfg.leftover.Pattern),
		separator: cfg.leftover.Separator,
	}, nil
}

// Format renders the record through the compiled token list.
func (p *Pattern) Format(r *core.Record, w *core.Writer) error {
	for i := range p.tokens {
		if err := p.renderToken(&p.tokens[i], r, w); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pattern) renderToken(tok *token, r *core.Record, w *core.Writer) error {
	switch tok.kind {
	case tokenLiteral:
		w.WriteString(tok.literal)
		return nil

	case tokenMessage:
		return tok.spec.Apply(w, core.String(r.Message()))

	case tokenSeverity:
		if p.sevmap != nil {
			p.sevmap(r.Severity(), tok.rawSpec, w)
			return nil
		}
		return tok.spec.Apply(w, core.Int64(int64(r.Severity())))

	case tokenTimestampNum:
		return tok.spec.Apply(w, core.Int64(timestampMicros(r.Timestamp())))

	case tokenTimestampUser:
		if tok.rawSpec == "" || tok.rawSpec == "s" {
			tok.dt.render(w, r.Timestamp())
			return nil
		}
		var tmp core.Writer
		tok.dt.render(&tmp, r.Timestamp())
		return tok.spec.Apply(w, core.String(tmp.String()))

	case tokenProcessID:
		return tok.spec.Apply(w, core.Int64(int64(r.PID())))

	case tokenProcessName:
		return tok.spec.Apply(w, core.String(core.ProcessName()))

	case tokenThreadHex, tokenThreadID:
		return tok.spec.Apply(w, core.Uint64(r.TID()))

	case tokenThreadName:
		return tok.spec.Apply(w, core.String(""))

	case tokenGeneric:
		v, ok := r.Attributes().Lookup(tok.name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrAttributeMissing, tok.name)
		}
		return tok.spec.Apply(w, v)

	case tokenOptional:
		v, ok := r.Attributes().Lookup(tok.name)
		if !ok {
			return nil
		}
		w.WriteString(tok.prefix)
		if err := tok.spec.Apply(w, v); err != nil {
			return err
		}
		w.WriteString(tok.suffix)
		return nil

	case tokenLeftover:
		return p.renderLeftover(tok, r, w)

	default:
		return nil
	}
}

func (p *Pattern) renderLeftover(tok *token, r *core.Record, w *core.Writer) error {
	var seen map[string]struct{}
	if p.leftover.Unique {
		seen = make(map[string]struct{})
	}

	count := 0
	for _, layer := range r.Attributes() {
		for i := range layer {
			attr := &layer[i]
			if _, ok := p.named[attr.Name]; ok {
				continue
			}
			if seen != nil {
				if _, ok := seen[attr.Name]; ok {
					continue
				}
				seen[attr.Name] = struct{}{}
			}
			if count == 0 {
				w.WriteString(tok.prefix)
			} else {
				w.WriteString(p.separator)
			}
			p.renderItem(attr, w)
			count++
		}
	}
	if count > 0 {
		w.WriteString(tok.suffix)
	}
	return nil
}

func (p *Pattern) renderItem(attr *core.Attribute, w *core.Writer) {
	for _, it := range p.itemToks {
		switch {
		case it.name:
			w.WriteString(attr.Name)
		case it.value:
			w.AppendValue(attr.Value)
		default:
			w.WriteString(it.literal)
		}
	}
}
