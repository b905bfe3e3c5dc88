package cfgexpr

import (
	"fmt"
	"go/token"
	"strings"
)

// Expr is a parsed cfg predicate. The checker walks it without evaluating
// boolean truth; the tree only preserves structure and source positions.
type Expr interface {
	// Pos returns the position of the first character of the expression.
	Pos() token.Position
	// End returns the position one past the last character of the expression.
	End() token.Position

	String() string
	exprNode()
}

// Atom is a single named condition, optionally carrying a string value,
// such as `unix` or `feature = "foo"`.
type Atom struct {
	Name     string
	Value    string
	HasValue bool

	StartPos token.Position
	EndPos   token.Position
}

// All matches when every child matches. Child order is preserved and drives
// left-to-right diagnostic order. An empty all() is legal.
type All struct {
	Exprs []Expr

	StartPos token.Position
	EndPos   token.Position
}

// Any matches when at least one child matches. An empty any() is legal.
type Any struct {
	Exprs []Expr

	StartPos token.Position
	EndPos   token.Position
}

// Not inverts its single child.
type Not struct {
	X Expr

	StartPos token.Position
	EndPos   token.Position
}

func (a *Atom) Pos() token.Position { return a.StartPos }
func (a *Atom) End() token.Position { return a.EndPos }
func (a *All) Pos() token.Position  { return a.StartPos }
func (a *All) End() token.Position  { return a.EndPos }
func (a *Any) Pos() token.Position  { return a.StartPos }
func (a *Any) End() token.Position  { return a.EndPos }
func (n *Not) Pos() token.Position  { return n.StartPos }
func (n *Not) End() token.Position  { return n.EndPos }

func (a *Atom) exprNode() {}
func (a *All) exprNode()  {}
func (a *Any) exprNode()  {}
func (n *Not) exprNode()  {}

func (a *Atom) String() string {
	if a.HasValue {
		return fmt.Sprintf("%s = %q", a.Name, a.Value)
	}
	return a.Name
}

func (a *All) String() string { return formatList("all", a.Exprs) }
func (a *Any) String() string { return formatList("any", a.Exprs) }

func (n *Not) String() string {
	return "not(" + n.X.String() + ")"
}

func formatList(name string, exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
