// Package checker validates parsed cfg predicates against a schema of known
// condition names and values.
package checker

import (
	"fmt"
	"strings"

	"github.com/cfglab/condlint/internal/cfgexpr"
	"github.com/cfglab/condlint/internal/schema"
	"github.com/cfglab/condlint/internal/suggest"
	tt "github.com/cfglab/condlint/internal/types"
)

const (
	RuleUnexpectedName  = "unexpected-cfg-name"
	RuleUnexpectedValue = "unexpected-cfg-value"
	RuleMalformed       = "malformed-cfg"

	category = "conditional-compilation"
)

// Check walks expr and returns one issue per offending atom occurrence, in
// pre-order left-to-right traversal order. Combinators are never evaluated
// for truth and never short-circuit: every atom in the tree is checked
// regardless of its logical position, so one bad condition does not
// suppress its siblings. Repeated identical atoms each get their own issue.
func Check(filename string, expr cfgexpr.Expr, sch *schema.Schema, severity tt.Severity) []tt.Issue {
	c := &checker{filename: filename, schema: sch, severity: severity}
	c.walk(expr)
	return c.issues
}

type checker struct {
	filename string
	schema   *schema.Schema
	severity tt.Severity
	issues   []tt.Issue
}

func (c *checker) walk(expr cfgexpr.Expr) {
	switch e := expr.(type) {
	case *cfgexpr.Atom:
		c.checkAtom(e)
	case *cfgexpr.All:
		for _, child := range e.Exprs {
			c.walk(child)
		}
	case *cfgexpr.Any:
		for _, child := range e.Exprs {
			c.walk(child)
		}
	case *cfgexpr.Not:
		c.walk(e.X)
	}
}

func (c *checker) checkAtom(atom *cfgexpr.Atom) {
	if !c.schema.IsKnownName(atom.Name) {
		c.issues = append(c.issues, c.unexpectedName(atom))
		return
	}

	allowed, restricted := c.schema.AllowedValues(atom.Name)
	if !restricted {
		return
	}
	// Bare use of a value-bearing name is deliberately accepted; only a
	// present value outside the declared set is reported.
	if !atom.HasValue {
		return
	}
	for _, v := range allowed {
		if v == atom.Value {
			return
		}
	}
	c.issues = append(c.issues, c.unexpectedValue(atom, allowed))
}

// unexpectedName reports an unrecognized condition name. The value is not
// additionally checked: an unknown name has no meaningful value
// expectation.
func (c *checker) unexpectedName(atom *cfgexpr.Atom) tt.Issue {
	issue := tt.Issue{
		Rule:     RuleUnexpectedName,
		Category: category,
		Filename: c.filename,
		Message:  fmt.Sprintf("unexpected `cfg` condition name: `%s`", atom.Name),
		Start:    atom.StartPos,
		End:      atom.EndPos,
		Severity: c.severity,
	}

	if similar, ok := suggest.Suggest(atom.Name, c.schema.AllNames()); ok {
		issue.Suggestion = similar
		issue.Note = fmt.Sprintf("there is a config with a similar name: `%s`", similar)
	} else {
		issue.Note = fmt.Sprintf(
			"to expect this configuration, add `%s` to the `expected` section of your condlint config",
			atom.Name,
		)
	}
	return issue
}

// unexpectedValue reports a known name used with a value outside its
// declared set. No name suggestion is attempted here: the name was correct.
func (c *checker) unexpectedValue(atom *cfgexpr.Atom, allowed []string) tt.Issue {
	value := "(none)"
	if atom.HasValue {
		value = "`" + atom.Value + "`"
	}

	expected := make([]string, len(allowed))
	copy(expected, allowed)

	return tt.Issue{
		Rule:     RuleUnexpectedValue,
		Category: category,
		Filename: c.filename,
		Message:  fmt.Sprintf("unexpected `cfg` condition value: %s", value),
		Note:     expectedValuesNote(atom.Name, expected),
		Expected: expected,
		Start:    atom.StartPos,
		End:      atom.EndPos,
		Severity: c.severity,
	}
}

func expectedValuesNote(name string, expected []string) string {
	if len(expected) == 0 {
		return fmt.Sprintf("no expected values for `%s`", name)
	}
	quoted := make([]string, len(expected))
	for i, v := range expected {
		quoted[i] = "`" + v + "`"
	}
	return fmt.Sprintf("expected values for `%s` are: %s", name, strings.Join(quoted, ", "))
}
