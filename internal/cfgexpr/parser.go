package cfgexpr

import (
	"fmt"
	"go/token"
)

// ParseError reports a malformed cfg predicate with its source position.
type ParseError struct {
	Pos token.Position
	Msg string
}

func (e *ParseError) Error() string {
	if e.Pos.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parse parses a single cfg predicate, e.g. `all(unix, feature = "foo")`.
func Parse(filename string, src []byte) (Expr, error) {
	base := token.Position{Filename: filename, Offset: 0, Line: 1, Column: 1}
	return ParseAt(src, base)
}

// ParseAt parses a predicate whose first byte sits at base in the original
// file. Both surface syntaxes hand their argument list here, so attribute
// form and macro form produce structurally identical trees.
func ParseAt(src []byte, base token.Position) (Expr, error) {
	p := &parser{sc: newScanner(src, base)}
	expr, err := p.parsePred()
	if err != nil {
		return nil, err
	}
	if p.sc.err != nil {
		return nil, p.sc.err
	}
	if p.sc.tok != tokEOF {
		return nil, &ParseError{
			Pos: p.sc.start,
			Msg: fmt.Sprintf("expected end of expression, found %s", p.sc.tok),
		}
	}
	return expr, nil
}

type parser struct {
	sc *scanner
}

func (p *parser) next() {
	p.sc.next()
}

func (p *parser) expected(what string) error {
	if p.sc.err != nil {
		return p.sc.err
	}
	found := p.sc.tok.String()
	if p.sc.tok == tokName || p.sc.tok == tokString {
		found = fmt.Sprintf("%s %q", found, p.sc.lit)
	}
	return &ParseError{
		Pos: p.sc.start,
		Msg: fmt.Sprintf("expected %s, found %s", what, found),
	}
}

func (p *parser) parsePred() (Expr, error) {
	if p.sc.tok != tokName {
		return nil, p.expected("cfg predicate")
	}

	name := p.sc.lit
	start := p.sc.start
	end := p.sc.end
	p.next()

	// all, any and not are combinators only when followed by an argument
	// list; a bare `not` is an ordinary atom.
	if p.sc.tok == tokLparen {
		switch name {
		case "all", "any":
			exprs, endPos, err := p.parseList()
			if err != nil {
				return nil, err
			}
			if name == "all" {
				return &All{Exprs: exprs, StartPos: start, EndPos: endPos}, nil
			}
			return &Any{Exprs: exprs, StartPos: start, EndPos: endPos}, nil
		case "not":
			return p.parseNot(start)
		}
		return nil, &ParseError{
			Pos: start,
			Msg: fmt.Sprintf("`%s` is not a valid cfg combinator", name),
		}
	}

	if p.sc.tok == tokEq {
		p.next()
		if p.sc.tok != tokString {
			return nil, p.expected("string value after `=`")
		}
		value := p.sc.lit
		end = p.sc.end
		p.next()
		return &Atom{Name: name, Value: value, HasValue: true, StartPos: start, EndPos: end}, nil
	}

	return &Atom{Name: name, StartPos: start, EndPos: end}, nil
}

// parseList consumes a parenthesized, comma-separated predicate list.
// Called with the current token on `(`. Empty lists and trailing commas
// are legal.
func (p *parser) parseList() ([]Expr, token.Position, error) {
	p.next() // (

	var exprs []Expr
	for p.sc.tok != tokRparen {
		expr, err := p.parsePred()
		if err != nil {
			return nil, token.Position{}, err
		}
		exprs = append(exprs, expr)

		if p.sc.tok == tokComma {
			p.next()
			continue
		}
		break
	}

	if p.sc.tok != tokRparen {
		return nil, token.Position{}, p.expected("`,` or `)`")
	}
	end := p.sc.end
	p.next()
	return exprs, end, nil
}

// parseNot consumes `not(<pred>)`. Unlike all/any, not takes exactly one
// argument.
func (p *parser) parseNot(start token.Position) (Expr, error) {
	p.next() // (

	if p.sc.tok == tokRparen {
		return nil, &ParseError{Pos: p.sc.start, Msg: "`not` expects exactly one cfg predicate"}
	}

	x, err := p.parsePred()
	if err != nil {
		return nil, err
	}

	if p.sc.tok == tokComma {
		return nil, &ParseError{Pos: p.sc.start, Msg: "`not` expects exactly one cfg predicate"}
	}
	if p.sc.tok != tokRparen {
		return nil, p.expected("`)`")
	}
	end := p.sc.end
	p.next()
	return &Not{X: x, StartPos: start, EndPos: end}, nil
}
