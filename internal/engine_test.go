package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfglab/condlint/internal/checker"
	"github.com/cfglab/condlint/internal/schema"
	tt "github.com/cfglab/condlint/internal/types"
)

func testEngine(t *testing.T, rules map[string]tt.ConfigRule) *Engine {
	t.Helper()
	sch := schema.New()
	sch.Declare("feature", []string{"foo", "bar"})
	return NewEngine(sch, rules)
}

func TestRunSource(t *testing.T) {
	t.Parallel()
	engine := testEngine(t, nil)

	src := []byte(`#[cfg(widnows)]
fn a() {}

#[cfg(feature = "zebra")]
fn b() {}

fn c() -> bool { cfg!(unix) }
`)

	issues, err := engine.RunSource(src)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, checker.RuleUnexpectedName, issues[0].Rule)
	assert.Equal(t, 1, issues[0].Start.Line)
	assert.Equal(t, checker.RuleUnexpectedValue, issues[1].Rule)
	assert.Equal(t, 4, issues[1].Start.Line)
}

func TestRunSourceSortedAcrossSites(t *testing.T) {
	t.Parallel()
	engine := testEngine(t, nil)

	// many sites so goroutine scheduling could shuffle results without the
	// final sort
	var src []byte
	for i := 0; i < 20; i++ {
		src = append(src, []byte("#[cfg(all(xxx, yyy))]\nfn f() {}\n")...)
	}

	first, err := engine.RunSource(src)
	require.NoError(t, err)
	require.Len(t, first, 40)

	for i := 1; i < len(first); i++ {
		prev, curr := first[i-1], first[i]
		ordered := prev.Start.Line < curr.Start.Line ||
			(prev.Start.Line == curr.Start.Line && prev.Start.Column <= curr.Start.Column)
		assert.True(t, ordered, "issue %d out of order", i)
	}

	// determinism: repeated runs yield identical sequences
	for i := 0; i < 3; i++ {
		again, err := engine.RunSource(src)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRunSourceMalformed(t *testing.T) {
	t.Parallel()
	engine := testEngine(t, nil)

	issues, err := engine.RunSource([]byte(`#[cfg(not(unix, windows))]`))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, checker.RuleMalformed, issues[0].Rule)
	assert.Contains(t, issues[0].Message, "malformed cfg predicate")
}

func TestRunSourceNoSites(t *testing.T) {
	t.Parallel()
	engine := testEngine(t, nil)

	issues, err := engine.RunSource([]byte("fn main() {}\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineSeverityConfig(t *testing.T) {
	t.Parallel()
	engine := testEngine(t, map[string]tt.ConfigRule{
		checker.RuleUnexpectedName:  {Severity: tt.SeverityError},
		checker.RuleUnexpectedValue: {Severity: tt.SeverityOff},
		"no-such-rule":              {Severity: tt.SeverityError},
	})

	issues, err := engine.RunSource([]byte(`#[cfg(any(xxx, feature = "zebra"))]`))
	require.NoError(t, err)
	require.Len(t, issues, 1, "value rule is off")
	assert.Equal(t, checker.RuleUnexpectedName, issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestEngineIgnoreRule(t *testing.T) {
	t.Parallel()
	engine := testEngine(t, nil)
	engine.IgnoreRule(checker.RuleUnexpectedName)

	issues, err := engine.RunSource([]byte(`#[cfg(xxx)]`))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineNolint(t *testing.T) {
	t.Parallel()
	engine := testEngine(t, nil)

	src := []byte(`//nolint:unexpected-cfg-name
#[cfg(xxx)]
fn a() {}

#[cfg(yyy)] //nolint
fn b() {}

#[cfg(zzz)]
fn c() {}
`)

	issues, err := engine.RunSource(src)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 8, issues[0].Start.Line)
	assert.Contains(t, issues[0].Message, "`zzz`")
}

func TestEngineRunFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(`#[cfg(widnows)]`), 0o644))

	engine := testEngine(t, nil)
	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
}

func TestEngineIgnorePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(`#[cfg(widnows)]`), 0o644))

	engine := testEngine(t, nil)
	engine.IgnorePath(dir)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineCache(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(`#[cfg(widnows)]`), 0o644))

	engine := testEngine(t, nil)
	require.NoError(t, engine.EnableCache(filepath.Join(dir, ".cache")))

	first, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// second run is served from cache and must match
	second, err := engine.Run(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// editing the file invalidates the entry
	require.NoError(t, os.WriteFile(path, []byte(`#[cfg(unix)]`), 0o644))
	third, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, third)
}
