package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSpecMismatch reports a brace-format spec applied to a value kind
// it cannot render. Formatters drop the record when they hit it.
var ErrSpecMismatch = errors.New("format spec does not match value kind")

// Spec is a parsed brace-format specification:
//
//	[[fill]align][sign][#][0][width][.precision][type]
//
// with align one of `<`, `>`, `^`, `=`, sign one of `+`, `-`, ` `, and
// type one of `s d x X b o f F e E g G`. An empty spec string (and
// DefaultSpec) renders every kind in its default form.
type Spec struct {
	fill  rune
	align byte
	sign  byte
	alt   bool
	width int
	prec  int
	verb  byte
	raw   string
}

// DefaultSpec renders any value in its default form, unpadded.
var DefaultSpec = Spec{fill: ' ', prec: -1}

// Raw returns the spec text as it appeared in the pattern.
func (s Spec) Raw() string { return s.raw }

// Verb returns the spec's type character, 0 when absent.
func (s Spec) Verb() byte { return s.verb }

// Alternate returns a copy with the alternate form flag set.
func (s Spec) Alternate() Spec {
	s.alt = true
	return s
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '^' || c == '='
}

// ParseSpec compiles a spec string. Errors surface at pattern
// compilation time, never per record.
func ParseSpec(raw string) (Spec, error) {
	s := Spec{fill: ' ', prec: -1, raw: raw}
	r := raw

	if r != "" {
		c, size := utf8.DecodeRuneInString(r)
		if len(r) > size && isAlign(r[size]) {
			s.fill = c
			s.align = r[size]
			r = r[size+1:]
		} else if isAlign(r[0]) {
			s.align = r[0]
			r = r[1:]
		}
	}
	if r != "" && (r[0] == '+' || r[0] == '-' || r[0] == ' ') {
		if r[0] != '-' {
			s.sign = r[0]
		}
		r = r[1:]
	}
	if r != "" && r[0] == '#' {
		s.alt = true
		r = r[1:]
	}
	if r != "" && r[0] == '0' {
		if s.align == 0 {
			s.align = '='
			s.fill = '0'
		}
		r = r[1:]
	}
	for r != "" && r[0] >= '0' && r[0] <= '9' {
		s.width = s.width*10 + int(r[0]-'0')
		r = r[1:]
	}
	if r != "" && r[0] == '.' {
		r = r[1:]
		if r == "" || r[0] < '0' || r[0] > '9' {
			return s, fmt.Errorf("spec %q: missing precision digits", raw)
		}
		s.prec = 0
		for r != "" && r[0] >= '0' && r[0] <= '9' {
			s.prec = s.prec*10 + int(r[0]-'0')
			r = r[1:]
		}
	}
	if r != "" {
		switch r[0] {
		case 's', 'd', 'x', 'X', 'b', 'o', 'f', 'F', 'e', 'E', 'g', 'G':
			s.verb = r[0]
		default:
			return s, fmt.Errorf("spec %q: unknown type %q", raw, r[0])
		}
		if len(r) > 1 {
			return s, fmt.Errorf("spec %q: trailing garbage after type", raw)
		}
	}
	return s, nil
}

// Apply renders v into w under the spec.
func (s Spec) Apply(w *Writer, v Value) error {
	switch s.verb {
	case 0:
		switch v.Kind() {
		case KindString:
			s.padString(w, v.StringValue())
		case KindNil:
			s.padString(w, "none")
		case KindBool:
			s.padString(w, strconv.FormatBool(v.BoolValue()))
		case KindInt64:
			s.padNumber(w, trimSign(strconv.FormatInt(v.Int64Value(), 10)), "", v.Int64Value() < 0)
		case KindUint64:
			s.padNumber(w, strconv.FormatUint(v.Uint64Value(), 10), "", false)
		case KindFloat64:
			s.padFloat(w, v.Float64Value(), 'f', s.prec)
		default:
			return fmt.Errorf("%w: spec %q on %s", ErrSpecMismatch, s.raw, v.Kind())
		}
	case 's':
		if v.Kind() != KindString {
			return fmt.Errorf("%w: spec %q on %s", ErrSpecMismatch, s.raw, v.Kind())
		}
		s.padString(w, v.StringValue())
	case 'd', 'x', 'X', 'b', 'o':
		base, prefix := intBase(s.verb, s.alt)
		var digits string
		var neg bool
		switch v.Kind() {
		case KindInt64:
			digits = trimSign(strconv.FormatInt(v.Int64Value(), base))
			neg = v.Int64Value() < 0
		case KindUint64:
			digits = strconv.FormatUint(v.Uint64Value(), base)
		default:
			return fmt.Errorf("%w: spec %q on %s", ErrSpecMismatch, s.raw, v.Kind())
		}
		if s.verb == 'X' {
			digits = strings.ToUpper(digits)
		}
		s.padNumber(w, digits, prefix, neg)
	case 'f', 'F', 'e', 'E', 'g', 'G':
		var f float64
		switch v.Kind() {
		case KindFloat64:
			f = v.Float64Value()
		case KindInt64:
			f = float64(v.Int64Value())
		case KindUint64:
			f = float64(v.Uint64Value())
		default:
			return fmt.Errorf("%w: spec %q on %s", ErrSpecMismatch, s.raw, v.Kind())
		}
		prec := s.prec
		if prec < 0 {
			prec = 6
		}
		fmtc := s.verb
		if fmtc == 'F' {
			fmtc = 'f'
		}
		s.padFloat(w, f, fmtc, prec)
	}
	return nil
}

func intBase(verb byte, alt bool) (int, string) {
	switch verb {
	case 'x':
		if alt {
			return 16, "0x"
		}
		return 16, ""
	case 'X':
		if alt {
			return 16, "0X"
		}
		return 16, ""
	case 'b':
		if alt {
			return 2, "0b"
		}
		return 2, ""
	case 'o':
		if alt {
			return 8, "0o"
		}
		return 8, ""
	default:
		return 10, ""
	}
}

func trimSign(s string) string {
	if len(s) > 0 && s[0] == '-' {
		return s[1:]
	}
	return s
}

func (s Spec) padFloat(w *Writer, f float64, fmtc byte, prec int) {
	body := strconv.FormatFloat(f, fmtc, prec, 64)
	neg := false
	if len(body) > 0 && body[0] == '-' {
		body = body[1:]
		neg = true
	}
	s.padNumber(w, body, "", neg)
}

func (s Spec) signString(neg bool) string {
	if neg {
		return "-"
	}
	switch s.sign {
	case '+':
		return "+"
	case ' ':
		return " "
	default:
		return ""
	}
}

func (s Spec) padNumber(w *Writer, digits, prefix string, neg bool) {
	sign := s.signString(neg)
	total := len(sign) + len(prefix) + len(digits)
	pad := s.width - total
	if pad <= 0 {
		w.WriteString(sign)
		w.WriteString(prefix)
		w.WriteString(digits)
		return
	}
	align := s.align
	if align == 0 {
		align = '>'
	}
	switch align {
	case '=':
		w.WriteString(sign)
		w.WriteString(prefix)
		writeFill(w, s.fill, pad)
		w.WriteString(digits)
	case '<':
		w.WriteString(sign)
		w.WriteString(prefix)
		w.WriteString(digits)
		writeFill(w, s.fill, pad)
	case '^':
		writeFill(w, s.fill, pad/2)
		w.WriteString(sign)
		w.WriteString(prefix)
		w.WriteString(digits)
		writeFill(w, s.fill, pad-pad/2)
	default:
		writeFill(w, s.fill, pad)
		w.WriteString(sign)
		w.WriteString(prefix)
		w.WriteString(digits)
	}
}

func (s Spec) padString(w *Writer, body string) {
	if s.prec >= 0 {
		body = truncateRunes(body, s.prec)
	}
	n := utf8.RuneCountInString(body)
	pad := s.width - n
	if pad <= 0 {
		w.WriteString(body)
		return
	}
	align := s.align
	if align == 0 || align == '=' {
		align = '<'
	}
	switch align {
	case '>':
		writeFill(w, s.fill, pad)
		w.WriteString(body)
	case '^':
		writeFill(w, s.fill, pad/2)
		w.WriteString(body)
		writeFill(w, s.fill, pad-pad/2)
	default:
		w.WriteString(body)
		writeFill(w, s.fill, pad)
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func writeFill(w *Writer, fill rune, n int) {
	if fill == 0 {
		fill = ' '
	}
	if fill < utf8.RuneSelf {
		for i := 0; i < n; i++ {
			w.WriteByte(byte(fill))
		}
		return
	}
	var buf [utf8.UTFMax]byte
	size := utf8.EncodeRune(buf[:], fill)
	for i := 0; i < n; i++ {
		w.Write(buf[:size])
	}
}
