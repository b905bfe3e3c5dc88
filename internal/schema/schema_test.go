package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnownName(t *testing.T) {
	t.Parallel()
	s := New()
	s.Declare("feature", []string{"foo", "bar"})
	s.Declare("fuzzing", nil)

	assert.True(t, s.IsKnownName("unix"))
	assert.True(t, s.IsKnownName("windows"))
	assert.True(t, s.IsKnownName("feature"))
	assert.True(t, s.IsKnownName("fuzzing"))
	assert.False(t, s.IsKnownName("widnows"))
	assert.False(t, s.IsKnownName(""))
}

func TestAllowedValues(t *testing.T) {
	t.Parallel()
	s := New()
	s.Declare("feature", []string{"foo", "bar"})
	s.Declare("fuzzing", nil)
	s.Declare("channel", []string{})

	values, restricted := s.AllowedValues("feature")
	assert.True(t, restricted)
	assert.Equal(t, []string{"foo", "bar"}, values)

	// well-known names are unrestricted
	_, restricted = s.AllowedValues("unix")
	assert.False(t, restricted)

	// declared without a value set: unrestricted
	_, restricted = s.AllowedValues("fuzzing")
	assert.False(t, restricted)

	// declared with an explicit empty set: restricted, nothing allowed
	values, restricted = s.AllowedValues("channel")
	assert.True(t, restricted)
	assert.Empty(t, values)

	// unknown names degrade to unrestricted, never fail
	_, restricted = s.AllowedValues("nope")
	assert.False(t, restricted)
}

func TestDeclareMergesValues(t *testing.T) {
	t.Parallel()
	s := New()
	s.Declare("feature", []string{"foo"})
	s.Declare("feature", []string{"bar", "foo"})

	values, restricted := s.AllowedValues("feature")
	require.True(t, restricted)
	assert.Equal(t, []string{"foo", "bar"}, values, "declaration order kept, duplicates dropped")
}

func TestDeclareUnrestrictedWins(t *testing.T) {
	t.Parallel()
	s := New()
	s.Declare("feature", []string{"foo"})
	s.Declare("feature", nil)

	_, restricted := s.AllowedValues("feature")
	assert.False(t, restricted)
}

func TestAllNamesDeterministic(t *testing.T) {
	t.Parallel()
	s := New()
	s.Declare("zebra", nil)
	s.Declare("alpha", nil)

	first := s.AllNames()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.AllNames())
	}

	// well-known first, then declared names in declaration order
	require.GreaterOrEqual(t, len(first), 2)
	assert.Equal(t, "zebra", first[len(first)-2])
	assert.Equal(t, "alpha", first[len(first)-1])
	assert.Equal(t, "unix", first[0])
}

func TestAllNamesDedup(t *testing.T) {
	t.Parallel()
	s := New()
	s.Declare("unix", nil) // also well-known

	seen := make(map[string]int)
	for _, name := range s.AllNames() {
		seen[name]++
	}
	assert.Equal(t, 1, seen["unix"])
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	a := New()
	a.Declare("feature", []string{"foo"})

	b := New()
	b.Declare("feature", []string{"foo"})
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c := New()
	c.Declare("feature", []string{"bar"})
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := New()
	d.Declare("feature", nil)
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}
