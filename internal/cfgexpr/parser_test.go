package cfgexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string // normalized rendering
	}{
		{"bare atom", `unix`, `unix`},
		{"atom with value", `feature = "foo"`, `feature = "foo"`},
		{"atom without spaces", `feature="foo"`, `feature = "foo"`},
		{"all", `all(unix, feature = "foo")`, `all(unix, feature = "foo")`},
		{"any", `any(windows, unix)`, `any(windows, unix)`},
		{"not", `not(test)`, `not(test)`},
		{"empty all", `all()`, `all()`},
		{"empty any", `any()`, `any()`},
		{"trailing comma", `all(unix,)`, `all(unix)`},
		{"nested", `all(any(unix, windows), not(feature = "x"))`, `all(any(unix, windows), not(feature = "x"))`},
		{"duplicate children", `all(unix, unix, unix)`, `all(unix, unix, unix)`},
		{"bare not is an atom", `not`, `not`},
		{"escaped quote in value", `feature = "a\"b"`, `feature = "a\"b"`},
		{"multiline", "all(\n    unix,\n    test,\n)", `all(unix, test)`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			expr, err := Parse("test.rs", []byte(tc.src))
			require.NoError(t, err)
			assert.Equal(t, tc.want, expr.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{"empty input", ``},
		{"missing value", `feature =`},
		{"unquoted value", `feature = foo`},
		{"unterminated string", `feature = "foo`},
		{"unterminated list", `all(unix`},
		{"not with two args", `not(unix, windows)`},
		{"not with no args", `not()`},
		{"unknown combinator", `each(unix)`},
		{"trailing garbage", `unix windows`},
		{"stray comma", `all(, unix)`},
		{"bad character", `feature = 'foo'`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse("test.rs", []byte(tc.src))
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "test.rs", perr.Pos.Filename)
			assert.NotEmpty(t, perr.Msg)
		})
	}
}

func TestParsePositions(t *testing.T) {
	t.Parallel()
	expr, err := Parse("test.rs", []byte(`all(unix, feature = "foo")`))
	require.NoError(t, err)

	all, ok := expr.(*All)
	require.True(t, ok)
	require.Len(t, all.Exprs, 2)

	assert.Equal(t, 1, all.Pos().Column)
	assert.Equal(t, 27, all.End().Column)

	unix := all.Exprs[0].(*Atom)
	assert.Equal(t, 5, unix.Pos().Column)
	assert.Equal(t, 9, unix.End().Column)

	feature := all.Exprs[1].(*Atom)
	assert.True(t, feature.HasValue)
	assert.Equal(t, "foo", feature.Value)
	assert.Equal(t, 11, feature.Pos().Column)
	assert.Equal(t, 26, feature.End().Column)
}

// Both surface syntaxes must produce structurally identical trees: the
// checker is syntax-agnostic.
func TestSurfaceSyntaxesAgree(t *testing.T) {
	t.Parallel()
	src := []byte(`#[cfg(all(unix, feature = "foo"))] fn a() {} fn b() { cfg!(all(unix, feature = "foo")); }`)
	sites := ExtractSites("test.rs", src)
	require.Len(t, sites, 2)
	assert.Equal(t, AttributeSyntax, sites[0].Syntax)
	assert.Equal(t, MacroSyntax, sites[1].Syntax)

	attr, err := sites[0].Parse()
	require.NoError(t, err)
	macro, err := sites[1].Parse()
	require.NoError(t, err)

	assert.Equal(t, attr.String(), macro.String())
}

func TestParseAtKeepsAbsolutePositions(t *testing.T) {
	t.Parallel()
	src := []byte("fn main() {\n    #[cfg(widnows)]\n    let _ = 0;\n}\n")
	sites := ExtractSites("main.rs", src)
	require.Len(t, sites, 1)

	expr, err := sites[0].Parse()
	require.NoError(t, err)

	atom, ok := expr.(*Atom)
	require.True(t, ok)
	assert.Equal(t, "widnows", atom.Name)
	assert.Equal(t, 2, atom.Pos().Line)
	assert.Equal(t, 11, atom.Pos().Column)
	assert.Equal(t, 18, atom.End().Column)
	assert.Equal(t, "main.rs", atom.Pos().Filename)
}
