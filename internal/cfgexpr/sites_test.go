package cfgexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSites(t *testing.T) {
	t.Parallel()
	src := []byte(`#[cfg(unix)]
fn on_unix() {}

#[cfg(all(windows, feature = "gui"))]
fn on_windows() {}

fn anywhere() {
    if cfg!(test) {
        return;
    }
}
`)

	sites := ExtractSites("lib.rs", src)
	require.Len(t, sites, 3)

	assert.Equal(t, AttributeSyntax, sites[0].Syntax)
	assert.Equal(t, "unix", string(sites[0].Text))
	assert.Equal(t, 1, sites[0].Start.Line)
	assert.Equal(t, 1, sites[0].Start.Column)
	assert.Equal(t, 7, sites[0].Base.Column)

	assert.Equal(t, AttributeSyntax, sites[1].Syntax)
	assert.Equal(t, `all(windows, feature = "gui")`, string(sites[1].Text))
	assert.Equal(t, 4, sites[1].Start.Line)

	assert.Equal(t, MacroSyntax, sites[2].Syntax)
	assert.Equal(t, "test", string(sites[2].Text))
	assert.Equal(t, 8, sites[2].Start.Line)
	assert.Equal(t, 8, sites[2].Start.Column)
}

func TestExtractSitesSkipsCommentsAndStrings(t *testing.T) {
	t.Parallel()
	src := []byte(`// #[cfg(line_comment)]
/* cfg!(block_comment) */
/* nested /* #[cfg(inner)] */ still comment */
const S: &str = "#[cfg(in_string)]";
#[cfg(real)]
fn f() {}
`)

	sites := ExtractSites("lib.rs", src)
	require.Len(t, sites, 1)
	assert.Equal(t, "real", string(sites[0].Text))
	assert.Equal(t, 5, sites[0].Start.Line)
}

func TestExtractSitesIgnoresOtherMacros(t *testing.T) {
	t.Parallel()
	src := []byte(`fn f() { my_cfg!(whatever); }
#[cfg_attr(test, derive(Debug))]
struct S;
`)

	sites := ExtractSites("lib.rs", src)
	assert.Empty(t, sites)
}

func TestExtractSitesNestedParensAndStrings(t *testing.T) {
	t.Parallel()
	src := []byte(`#[cfg(any(all(unix, test), feature = "a)b"))]`)

	sites := ExtractSites("lib.rs", src)
	require.Len(t, sites, 1)
	assert.Equal(t, `any(all(unix, test), feature = "a)b")`, string(sites[0].Text))
}

func TestExtractSitesUnbalanced(t *testing.T) {
	t.Parallel()
	src := []byte(`#[cfg(all(unix`)

	sites := ExtractSites("lib.rs", src)
	assert.Empty(t, sites)
}

func TestExtractSitesEmptyInput(t *testing.T) {
	t.Parallel()
	assert.Empty(t, ExtractSites("lib.rs", nil))
	assert.Empty(t, ExtractSites("lib.rs", []byte("fn main() {}")))
}
