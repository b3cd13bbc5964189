package formatter

import (
	"time"

	"github.com/philipp01105/attrlog/core"
)

// defaultTimestampPattern renders timestamps unless the placeholder
// embeds its own strftime pattern.
const defaultTimestampPattern = "%Y-%m-%d %H:%M:%S.%f"

// strftime directives translated to Go reference layouts. Directives
// missing here pass through verbatim.
var strftimeLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
	'D': "01/02/06",
	'F': "2006-01-02",
	'T': "15:04:05",
	'R': "15:04",
	'c': "Mon Jan  2 15:04:05 2006",
}

type dtTokenKind uint8

const (
	dtLiteral dtTokenKind = iota
	dtLayout
	dtMicroseconds
)

type dtToken struct {
	kind dtTokenKind
	text string
}

// datetimeGenerator is a strftime-style pattern compiled into a token
// list so the hot path never re-scans the pattern. %f expands to
// six-digit zero-padded microseconds; everything else maps onto the
// platform time formatter.
type datetimeGenerator struct {
	tokens []dtToken
}

func compileStrftime(pattern string) *datetimeGenerator {
	g := &datetimeGenerator{}
	var literal []byte

	flush := func() {
		if len(literal) > 0 {
			g.tokens = append(g.tokens, dtToken{kind: dtLiteral, text: string(literal)})
			literal = literal[:0]
		}
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			literal = append(literal, pattern[i])
			continue
		}
		c := pattern[i+1]
		i++
		switch {
		case c == '%':
			literal = append(literal, '%')
		case c == 'n':
			literal = append(literal, '\n')
		case c == 't':
			literal = append(literal, '\t')
		case c == 'f':
			flush()
			g.tokens = append(g.tokens, dtToken{kind: dtMicroseconds})
		default:
			if layout, ok := strftimeLayouts[c]; ok {
				flush()
				g.tokens = append(g.tokens, dtToken{kind: dtLayout, text: layout})
			} else {
				literal = append(literal, '%', c)
			}
		}
	}
	flush()
	return g
}

func (g *datetimeGenerator) render(w *core.Writer, t time.Time) {
	for _, tok := range g.tokens {
		switch tok.kind {
		case dtLiteral:
			w.WriteString(tok.text)
		case dtLayout:
			w.AppendTime(t, tok.text)
		case dtMicroseconds:
			writeMicroseconds(w, t)
		}
	}
}

func writeMicroseconds(w *core.Writer, t time.Time) {
	usec := t.Nanosecond() / 1000
	var buf [6]byte
	for i := 5; i >= 0; i-- {
		buf[i] = byte('0' + usec%10)
		usec /= 10
	}
	w.Write(buf[:])
}

// timestampMicros is the integer form used by {timestamp:d} and the
// JSON formatter: microseconds since the Unix epoch.
func timestampMicros(t time.Time) int64 {
	return t.UnixMicro()
}
