package cfgexpr

import (
	"bytes"
	"go/token"
)

// Syntax distinguishes the two surface forms a cfg predicate appears in.
// Both forms parse to identical trees; the checker never looks at this.
type Syntax int

const (
	// AttributeSyntax is the attribute form: #[cfg(<pred>)]
	AttributeSyntax Syntax = iota
	// MacroSyntax is the macro-call form: cfg!(<pred>)
	MacroSyntax
)

func (s Syntax) String() string {
	if s == MacroSyntax {
		return "macro"
	}
	return "attribute"
}

// Site is one cfg check site found in a source file. Text holds the raw
// predicate with the outer parentheses stripped; Base is the absolute
// position of its first byte.
type Site struct {
	Syntax Syntax
	Start  token.Position
	Base   token.Position
	Text   []byte
}

// Parse parses the site's predicate text at its absolute position.
func (s Site) Parse() (Expr, error) {
	return ParseAt(s.Text, s.Base)
}

var (
	attrPrefix  = []byte("#[cfg(")
	macroPrefix = []byte("cfg!(")
)

// ExtractSites scans raw source text for cfg attribute and cfg! macro sites.
// Occurrences inside line comments, block comments and string literals are
// ignored. Unterminated sites are dropped; the parser reports malformed
// predicates later.
func ExtractSites(filename string, src []byte) []Site {
	c := &cursor{src: src, pos: token.Position{Filename: filename, Line: 1, Column: 1}}

	var sites []Site
	for c.i < len(src) {
		rest := src[c.i:]

		switch {
		case bytes.HasPrefix(rest, []byte("//")):
			c.skipLineComment()
		case bytes.HasPrefix(rest, []byte("/*")):
			c.skipBlockComment()
		case src[c.i] == '"':
			c.advance()
			c.skipString()
		case bytes.HasPrefix(rest, attrPrefix):
			sites = c.capture(sites, AttributeSyntax, len(attrPrefix))
		case bytes.HasPrefix(rest, macroPrefix) && !c.precededByNameByte():
			sites = c.capture(sites, MacroSyntax, len(macroPrefix))
		default:
			c.advance()
		}
	}
	return sites
}

type cursor struct {
	src []byte
	i   int
	pos token.Position
}

func (c *cursor) advance() {
	b := c.src[c.i]
	c.i++
	c.pos.Offset++
	if b == '\n' {
		c.pos.Line++
		c.pos.Column = 1
	} else {
		c.pos.Column++
	}
}

func (c *cursor) advanceN(n int) {
	for j := 0; j < n && c.i < len(c.src); j++ {
		c.advance()
	}
}

func (c *cursor) precededByNameByte() bool {
	return c.i > 0 && isNameByte(c.src[c.i-1])
}

func (c *cursor) skipLineComment() {
	for c.i < len(c.src) && c.src[c.i] != '\n' {
		c.advance()
	}
}

// skipBlockComment handles nesting, like Rust-style /* /* */ */ comments.
func (c *cursor) skipBlockComment() {
	depth := 0
	for c.i < len(c.src) {
		rest := c.src[c.i:]
		if bytes.HasPrefix(rest, []byte("/*")) {
			depth++
			c.advanceN(2)
			continue
		}
		if bytes.HasPrefix(rest, []byte("*/")) {
			depth--
			c.advanceN(2)
			if depth == 0 {
				return
			}
			continue
		}
		c.advance()
	}
}

// skipString consumes until the closing quote. Call with the opening quote
// already consumed.
func (c *cursor) skipString() {
	for c.i < len(c.src) {
		b := c.src[c.i]
		c.advance()
		if b == '\\' {
			if c.i < len(c.src) {
				c.advance()
			}
			continue
		}
		if b == '"' {
			return
		}
	}
}

// capture records a site starting at the cursor. prefixLen covers the
// surface form up to and including the opening parenthesis; the predicate
// runs until the matching close paren, with strings inside skipped.
func (c *cursor) capture(sites []Site, syntax Syntax, prefixLen int) []Site {
	start := c.pos
	c.advanceN(prefixLen)
	base := c.pos
	textStart := c.i

	depth := 1
	for c.i < len(c.src) {
		b := c.src[c.i]
		if b == '"' {
			c.advance()
			c.skipString()
			continue
		}
		if b == '(' {
			depth++
		} else if b == ')' {
			depth--
			if depth == 0 {
				text := c.src[textStart:c.i]
				c.advance() // )
				return append(sites, Site{Syntax: syntax, Start: start, Base: base, Text: text})
			}
		}
		c.advance()
	}

	// ran off the end of the file; unbalanced site is dropped
	return sites
}
