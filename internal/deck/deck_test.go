package deck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticStore(t *testing.T) {
	store := NewStaticStore(DemoDeck("demo-1"))

	d, err := store.GetDeck(context.Background(), "demo-1")
	require.NoError(t, err)
	assert.Equal(t, "demo-1", d.ID)

	_, err = store.GetDeck(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDemoDeckComposition(t *testing.T) {
	d := DemoDeck("x")

	counts := make(map[string]int)
	for _, c := range d.Cards {
		counts[c.Type]++
	}
	assert.Equal(t, 15, counts["Warrior"])
	assert.Equal(t, 8, counts["Unified"])
	assert.Equal(t, 7, counts["Fortified"])
	for _, role := range []string{"Warlord", "Guardian", "VeilRealm", "Synergy"} {
		assert.Equal(t, 1, counts[role], role)
	}
	assert.Len(t, d.Cards, 34)

	codes := make(map[string]bool)
	for _, c := range d.Cards {
		assert.False(t, codes[c.Code], "duplicate code %s", c.Code)
		codes[c.Code] = true
	}
}
