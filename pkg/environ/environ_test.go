package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromList(t *testing.T) {
	env := FromList([]string{
		"APP_EUI=zzzz",
		"EMPTY=",
		"WITH_EQUALS=a=b",
		"NOEQUALS",
		"APP_EUI=later",
	})

	v, ok := env.Lookup("APP_EUI")
	require.True(t, ok)
	assert.Equal(t, "zzzz", v)

	v, ok = env.Lookup("EMPTY")
	assert.True(t, ok, "empty value counts as present")
	assert.Equal(t, "", v)

	assert.Equal(t, "a=b", env.Get("WITH_EQUALS"))

	_, ok = env.Lookup("NOEQUALS")
	assert.False(t, ok)

	assert.Equal(t, 3, env.Len())
	assert.Equal(t, []string{"APP_EUI", "EMPTY", "WITH_EQUALS"}, env.Keys())
}

func TestSetDefault(t *testing.T) {
	env := New()

	assert.True(t, env.SetDefault("KEY", "first", SourceAmbient))
	assert.False(t, env.SetDefault("KEY", "second", SourceFile))
	assert.Equal(t, "first", env.Get("KEY"))

	src, ok := env.SourceOf("KEY")
	require.True(t, ok)
	assert.Equal(t, SourceAmbient, src)

	_, ok = env.SourceOf("MISSING")
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	env := FromList([]string{"A=1"})
	c := env.Clone()
	c.SetDefault("B", "2", SourceFile)

	_, ok := env.Lookup("B")
	assert.False(t, ok, "clone must not share storage")
	assert.Equal(t, "1", c.Get("A"))

	src, _ := c.SourceOf("A")
	assert.Equal(t, SourceAmbient, src)
}

func TestFromOS(t *testing.T) {
	t.Setenv("SECRETDEFS_TEST_VAR", "value")

	env := FromOS()
	assert.Equal(t, "value", env.Get("SECRETDEFS_TEST_VAR"))
}
