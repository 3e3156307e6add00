package carousel

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/showcase/internal/models"
)

func banners(active ...bool) []models.Banner {
	out := make([]models.Banner, len(active))
	for i, a := range active {
		out[i] = models.Banner{Title: string(rune('A' + i)), AffiliateURL: "https://example.com/" + string(rune('a'+i)), IsActive: a}
	}
	return out
}

func TestNew_KeepsActiveOnly(t *testing.T) {
	t.Parallel()

	c := New(banners(true, false, true))
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "A", c.Banners()[0].Title)
	assert.Equal(t, "C", c.Banners()[1].Title)
}

func TestPrevWrapsFromZero(t *testing.T) {
	t.Parallel()

	c := New(banners(true, true, true))
	c.Prev()
	assert.Equal(t, 2, c.Index())
	c.Next()
	assert.Equal(t, 0, c.Index())
}

func TestIndexStaysInRange(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11))
	for n := 1; n <= 6; n++ {
		active := make([]bool, n)
		for i := range active {
			active[i] = true
		}
		c := New(banners(active...))
		for step := 0; step < 200; step++ {
			if r.IntN(2) == 0 {
				c.Next()
			} else {
				c.Prev()
			}
			require.GreaterOrEqual(t, c.Index(), 0)
			require.Less(t, c.Index(), n)
		}
	}
}

func TestEmptyAndSingle(t *testing.T) {
	t.Parallel()

	empty := New(banners(false, false))
	assert.True(t, empty.Empty())
	assert.False(t, empty.ShowControls())
	empty.Next()
	empty.Prev()
	assert.Equal(t, 0, empty.Index())
	_, ok := empty.Click()
	assert.False(t, ok)

	single := New(banners(true))
	assert.False(t, single.ShowControls())
	single.Next()
	single.Prev()
	assert.Equal(t, 0, single.Index())
}

func TestGotoAndClick(t *testing.T) {
	t.Parallel()

	c := New(banners(true, true, true))
	require.NoError(t, c.Goto(2))
	assert.Equal(t, 2, c.Index())

	require.ErrorIs(t, c.Goto(3), ErrOutOfRange)
	require.ErrorIs(t, c.Goto(-1), ErrOutOfRange)
	assert.Equal(t, 2, c.Index())

	url, ok := c.Click()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/c", url)
	assert.Equal(t, 2, c.Index())
	assert.True(t, c.ShowControls())
}
