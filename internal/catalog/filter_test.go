package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterBlockedAgeRating(t *testing.T) {
	f := NewFilter(true, []int{42}, []int{12})

	games := []Game{
		{ID: 1, AgeRatingValues: []int{8}},
		{ID: 2, AgeRatingValues: []int{12}},
		{ID: 3, AgeRatingValues: []int{10, 12}},
		{ID: 4},
	}
	out := f.Apply(games)

	ids := make([]int64, 0, len(out))
	for _, g := range out {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []int64{1, 4}, ids)
}

func TestFilterBlockedTheme(t *testing.T) {
	f := NewFilter(true, []int{42}, []int{12})

	assert.True(t, f.Disallowed(&Game{ID: 1, ThemeIDs: []int64{1, 42}}))
	assert.False(t, f.Disallowed(&Game{ID: 2, ThemeIDs: []int64{1, 19}}))
	assert.False(t, f.Disallowed(&Game{ID: 3}))
}

func TestFilterDisabledPassesEverything(t *testing.T) {
	f := NewFilter(false, []int{42}, []int{12})

	games := []Game{{ID: 1, ThemeIDs: []int64{42}}, {ID: 2, AgeRatingValues: []int{12}}}
	assert.False(t, f.Disallowed(&games[0]))
	assert.Equal(t, games, f.Apply(games))
}
