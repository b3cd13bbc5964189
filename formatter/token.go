package formatter

import (
	"fmt"
	"strings"

	"github.com/philipp01105/attrlog/core"
)

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenMessage
	tokenSeverity
	tokenTimestampNum
	tokenTimestampUser
	tokenProcessID
	tokenProcessName
	tokenThreadHex
	tokenThreadID
	tokenThreadName
	tokenGeneric
	tokenOptional
	tokenLeftover
)

type token struct {
	kind    tokenKind
	literal string
	name    string
	spec    core.Spec
	rawSpec string
	prefix  string
	suffix  string
	dt      *datetimeGenerator
}

// itemToken is one piece of the leftover item pattern, which may
// reference {name} and {value}.
type itemToken struct {
	literal string
	name    bool
	value   bool
}

func compileItemPattern(pattern string) []itemToken {
	if pattern == "" {
		pattern = "{name}: {value}"
	}
	var tokens []itemToken
	rest := pattern
	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "{name}"):
			tokens = append(tokens, itemToken{name: true})
			rest = rest[len("{name}"):]
		case strings.HasPrefix(rest, "{value}"):
			tokens = append(tokens, itemToken{value: true})
			rest = rest[len("{value}"):]
		default:
			i := strings.IndexByte(rest, '{')
			if i == -1 {
				i = len(rest)
			} else if i == 0 {
				i = 1
			}
			if n := len(tokens); n > 0 && tokens[n-1].literal != "" {
				tokens[n-1].literal += rest[:i]
			} else {
				tokens = append(tokens, itemToken{literal: rest[:i]})
			}
			rest = rest[i:]
		}
	}
	return tokens
}

// matchBrace returns the index of the '}' closing the '{' at open,
// honoring one level of nesting for embedded timestamp patterns.
func matchBrace(pattern string, open int) (int, error) {
	depth := 0
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("pattern %q: unbalanced '{' at offset %d", pattern, open)
}

// splitSpec splits a placeholder body at the first top-level colon.
func splitSpec(body string) (name, spec string) {
	depth := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ':':
			if depth == 0 {
				return body[:i], body[i+1:]
			}
		}
	}
	return body, ""
}

func compile(pattern string, cfg *patternConfig) ([]token, map[string]struct{}, error) {
	var tokens []token
	named := make(map[string]struct{})
	var literal []byte

	flush := func() {
		if len(literal) > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, literal: string(literal)})
			literal = literal[:0]
		}
	}

	i := 0
	for i < len(pattern) {
		switch c := pattern[i]; c {
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				literal = append(literal, '{')
				i += 2
				continue
			}
			end, err := matchBrace(pattern, i)
			if err != nil {
				return nil, nil, err
			}
			flush()
			tok, err := compilePlaceholder(pattern[i+1:end], cfg)
			if err != nil {
				return nil, nil, fmt.Errorf("pattern %q: %w", pattern, err)
			}
			if tok.kind != tokenLeftover {
				named[tok.name] = struct{}{}
			}
			tokens = append(tokens, tok)
			i = end + 1
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				literal = append(literal, '}')
				i += 2
				continue
			}
			return nil, nil, fmt.Errorf("pattern %q: unmatched '}' at offset %d", pattern, i)
		default:
			literal = append(literal, c)
			i++
		}
	}
	flush()
	return tokens, named, nil
}

func compilePlaceholder(body string, cfg *patternConfig) (token, error) {
	if strings.HasPrefix(body, "...") {
		if body != "..." {
			return token{}, fmt.Errorf("leftover placeholder takes no inline spec, got %q", body)
		}
		return token{
			kind:   tokenLeftover,
			name:   "...",
			prefix: cfg.leftover.Prefix,
			suffix: cfg.leftover.Suffix,
		}, nil
	}

	name, rawSpec := splitSpec(body)
	if name == "" {
		return token{}, fmt.Errorf("empty placeholder name in %q", body)
	}

	switch name {
	case "message":
		spec, err := core.ParseSpec(rawSpec)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokenMessage, name: name, spec: spec, rawSpec: rawSpec}, nil

	case "severity":
		spec, err := core.ParseSpec(rawSpec)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokenSeverity, name: name, spec: spec, rawSpec: rawSpec}, nil

	case "timestamp":
		return compileTimestamp(name, rawSpec)

	case "process":
		spec, err := core.ParseSpec(rawSpec)
		if err != nil {
			return token{}, err
		}
		if spec.Verb() == 's' {
			return token{kind: tokenProcessName, name: name, spec: spec, rawSpec: rawSpec}, nil
		}
		return token{kind: tokenProcessID, name: name, spec: spec, rawSpec: rawSpec}, nil

	case "thread":
		spec, err := core.ParseSpec(rawSpec)
		if err != nil {
			return token{}, err
		}
		switch spec.Verb() {
		case 's':
			return token{kind: tokenThreadName, name: name, spec: spec, rawSpec: rawSpec}, nil
		case 'd':
			return token{kind: tokenThreadID, name: name, spec: spec, rawSpec: rawSpec}, nil
		case 0:
			spec, err = core.ParseSpec(rawSpec + "x")
			if err != nil {
				return token{}, err
			}
			fallthrough
		default:
			return token{kind: tokenThreadHex, name: name, spec: spec.Alternate(), rawSpec: rawSpec}, nil
		}

	default:
		spec, err := core.ParseSpec(rawSpec)
		if err != nil {
			return token{}, err
		}
		if opt, ok := cfg.optionals[name]; ok {
			return token{
				kind:    tokenOptional,
				name:    name,
				spec:    spec,
				rawSpec: rawSpec,
				prefix:  opt.Prefix,
				suffix:  opt.Suffix,
			}, nil
		}
		return token{kind: tokenGeneric, name: name, spec: spec, rawSpec: rawSpec}, nil
	}
}

func compileTimestamp(name, rawSpec string) (token, error) {
	if rawSpec == "" {
		return token{
			kind: tokenTimestampUser,
			name: name,
			spec: core.DefaultSpec,
			dt:   compileStrftime(defaultTimestampPattern),
		}, nil
	}
	if rawSpec[0] == '{' {
		end, err := matchBrace(rawSpec, 0)
		if err != nil {
			return token{}, err
		}
		inner := rawSpec[1:end]
		tail := rawSpec[end+1:]
		spec, err := core.ParseSpec(tail)
		if err != nil {
			return token{}, err
		}
		if v := spec.Verb(); v != 0 && v != 's' {
			return token{}, fmt.Errorf("timestamp pattern %q: type must be s, got %q", rawSpec, v)
		}
		if inner == "" {
			inner = defaultTimestampPattern
		}
		return token{
			kind:    tokenTimestampUser,
			name:    name,
			spec:    spec,
			rawSpec: tail,
			dt:      compileStrftime(inner),
		}, nil
	}
	spec, err := core.ParseSpec(rawSpec)
	if err != nil {
		return token{}, err
	}
	if spec.Verb() == 's' {
		return token{
			kind:    tokenTimestampUser,
			name:    name,
			spec:    spec,
			rawSpec: rawSpec,
			dt:      compileStrftime(defaultTimestampPattern),
		}, nil
	}
	return token{kind: tokenTimestampNum, name: name, spec: spec, rawSpec: rawSpec}, nil
}
