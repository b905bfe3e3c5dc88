package cfgexpr

import (
	"fmt"
	"go/token"
	"strings"
)

// scanner tokenizes a single cfg predicate. It is handed the predicate text
// together with the absolute position of its first byte, so every token
// carries a position in the original file rather than in the extracted chunk.
type scanner struct {
	src []byte
	off int            // index of next unread byte
	cur token.Position // position of src[off]

	tok   tok
	lit   string
	start token.Position // first byte of the current token
	end   token.Position // one past the current token
	err   error
}

func newScanner(src []byte, base token.Position) *scanner {
	if base.Line == 0 {
		base.Line = 1
	}
	if base.Column == 0 {
		base.Column = 1
	}
	sc := &scanner{src: src, cur: base}
	sc.next()
	return sc
}

func isNameStart(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isNameByte(b byte) bool {
	return isNameStart(b) || '0' <= b && b <= '9'
}

// get consumes and returns the next byte, keeping line/column bookkeeping.
func (sc *scanner) get() (byte, bool) {
	if sc.off >= len(sc.src) {
		return 0, false
	}
	b := sc.src[sc.off]
	sc.off++
	sc.cur.Offset++
	if b == '\n' {
		sc.cur.Line++
		sc.cur.Column = 1
	} else {
		sc.cur.Column++
	}
	return b, true
}

func (sc *scanner) peek() (byte, bool) {
	if sc.off >= len(sc.src) {
		return 0, false
	}
	return sc.src[sc.off], true
}

func (sc *scanner) next() {
	if sc.err != nil {
		sc.tok = tokEOF
		return
	}

	// skip whitespace
	for {
		b, ok := sc.peek()
		if !ok {
			sc.start = sc.cur
			sc.end = sc.cur
			sc.tok = tokEOF
			return
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			sc.get()
			continue
		}
		break
	}

	sc.start = sc.cur
	b, _ := sc.get()

	switch {
	case isNameStart(b):
		sc.name(b)
	case b == '"':
		sc.string()
	case b == ',':
		sc.tok, sc.lit = tokComma, ","
	case b == '(':
		sc.tok, sc.lit = tokLparen, "("
	case b == ')':
		sc.tok, sc.lit = tokRparen, ")"
	case b == '=':
		sc.tok, sc.lit = tokEq, "="
	default:
		sc.fail(fmt.Sprintf("unexpected character %q in cfg predicate", b))
		return
	}
	sc.end = sc.cur
}

func (sc *scanner) name(first byte) {
	var sb strings.Builder
	sb.WriteByte(first)
	for {
		b, ok := sc.peek()
		if !ok || !isNameByte(b) {
			break
		}
		sc.get()
		sb.WriteByte(b)
	}
	sc.tok = tokName
	sc.lit = sb.String()
}

func (sc *scanner) string() {
	var sb strings.Builder
	for {
		b, ok := sc.get()
		if !ok {
			sc.fail("unterminated string in cfg predicate")
			return
		}
		if b == '"' {
			break
		}
		if b == '\n' {
			sc.fail("unexpected newline in string")
			return
		}
		if b == '\\' {
			esc, ok := sc.get()
			if !ok {
				sc.fail("unterminated string in cfg predicate")
				return
			}
			switch esc {
			case '"', '\\':
				sb.WriteByte(esc)
			default:
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(b)
	}
	sc.tok = tokString
	sc.lit = sb.String()
}

func (sc *scanner) fail(msg string) {
	sc.err = &ParseError{Pos: sc.start, Msg: msg}
	sc.tok = tokEOF
	sc.lit = ""
}
