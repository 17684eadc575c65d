package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsetString(t *testing.T) {
	assert.Equal(t, "{}", Subset{}.String())
	assert.Equal(t, "{}", Subset(nil).String())
	assert.Equal(t, "{4}", Subset{4}.String())
	assert.Equal(t, "{3,1,27}", Subset{3, 1, 27}.String())
}

func TestSubsetWithWithoutDoNotAlias(t *testing.T) {
	base := make(Subset, 2, 8)
	base[0], base[1] = 1, 2

	a := base.With(3)
	b := base.With(4)
	assert.Equal(t, Subset{1, 2, 3}, a)
	assert.Equal(t, Subset{1, 2, 4}, b)

	c := a.Without(2)
	assert.Equal(t, Subset{1, 3}, c)
	assert.Equal(t, Subset{1, 2, 3}, a)

	assert.True(t, a.Contains(3))
	assert.False(t, c.Contains(2))
	assert.Equal(t, Subset{1, 2, 3, 4}, FullSubset(4))
}

func TestParseSubset(t *testing.T) {
	for _, in := range []string{"1,3,5", "{1,3,5}", "1 3 5", " {1, 3, 5} "} {
		got, err := ParseSubset(in)
		require.NoError(t, err, in)
		assert.Equal(t, Subset{1, 3, 5}, got)
	}

	got, err := ParseSubset("{}")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseSubset("1,x")
	assert.Error(t, err)
}
