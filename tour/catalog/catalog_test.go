package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrderAndIndexes(t *testing.T) {
	ps := Planets()
	require.Len(t, ps, 10)
	assert.Equal(t, Len(), len(ps))

	assert.Equal(t, "SUN", ps[SunIndex].Name)
	assert.Equal(t, "EARTH", ps[EarthIndex].Name)
	assert.Equal(t, "SATURN", ps[SaturnIndex].Name)
	assert.Equal(t, "PLUTO", ps[len(ps)-1].Name)
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for i, p := range Planets() {
		assert.False(t, seen[p.Name], "duplicate %s", p.Name)
		seen[p.Name] = true
		assert.Equal(t, i, IndexOf(p.Name))
		assert.NotEmpty(t, p.Facts)
		assert.NotEmpty(t, p.TextureURL)
		assert.Positive(t, p.Size)
	}
	assert.Equal(t, -1, IndexOf("VULCAN"))
}

func TestMaxSize(t *testing.T) {
	assert.Equal(t, float32(3.5), MaxSize(Planets()))
	assert.Zero(t, MaxSize(nil))
}

func TestRecordsAreCopies(t *testing.T) {
	ps := Planets()
	ps[0].Name = "CHANGED"
	ps[0].Facts[0] = "changed"

	p, ok := At(0)
	require.True(t, ok)
	assert.Equal(t, "SUN", p.Name)
	assert.NotEqual(t, "changed", p.Facts[0])

	_, ok = At(-1)
	assert.False(t, ok)
	_, ok = At(Len())
	assert.False(t, ok)
}
