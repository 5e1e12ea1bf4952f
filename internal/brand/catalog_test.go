package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookups(t *testing.T) {
	cat := DefaultCatalogs()

	cs, ok := cat.ColorScheme("ocean")
	require.True(t, ok)
	assert.Equal(t, "Ocean Blues", cs.Name)
	assert.NotEmpty(t, cs.Colors)

	_, ok = cat.ColorScheme("  OCEAN  ")
	assert.True(t, ok, "lookup is case-insensitive and trims")

	_, ok = cat.ColorScheme("nope")
	assert.False(t, ok)

	vs, ok := cat.VisualStyle("flat")
	require.True(t, ok)
	assert.NotEmpty(t, vs.Description)

	gt, ok := cat.GraphicType("logo")
	require.True(t, ok)
	assert.Equal(t, "logo", gt.Name)

	_, ok = cat.VisualStyle("")
	assert.False(t, ok)
}

func TestDefaultCatalogIDsAreUnique(t *testing.T) {
	cat := DefaultCatalogs()

	seen := map[string]bool{}
	for _, cs := range cat.ColorSchemes {
		assert.False(t, seen[cs.ID], "duplicate color scheme id %q", cs.ID)
		seen[cs.ID] = true
	}

	seen = map[string]bool{}
	for _, vs := range cat.VisualStyles {
		assert.False(t, seen[vs.ID], "duplicate visual style id %q", vs.ID)
		seen[vs.ID] = true
	}

	seen = map[string]bool{}
	for _, gt := range cat.GraphicTypes {
		assert.False(t, seen[gt.ID], "duplicate graphic type id %q", gt.ID)
		seen[gt.ID] = true
	}
}

func TestDefaultCatalogsReturnsIndependentCopies(t *testing.T) {
	a := DefaultCatalogs()
	b := DefaultCatalogs()

	a.ColorSchemes = append(a.ColorSchemes, ColorScheme{ID: "custom", Name: "Custom", Colors: []string{"#000"}})
	a.ColorSchemes[0].ID = "mutated"

	_, ok := b.ColorScheme("custom")
	assert.False(t, ok)
	_, ok = b.ColorScheme("mutated")
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	orig := DefaultCatalogs()
	clone := orig.Clone()

	clone.VisualStyles = append(clone.VisualStyles, VisualStyle{ID: "new", Name: "New"})
	assert.Len(t, orig.VisualStyles, len(defaultVisualStyles))
}
