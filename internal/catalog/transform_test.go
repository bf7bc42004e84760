package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spudin/gamelist-data/internal/igdb"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeRatingScale(t *testing.T) {
	g := Normalize(igdb.RawGame{ID: 1, TotalRating: ptr(92.5), TotalRatingCount: ptr(310)})
	assert.Equal(t, 4.625, g.Rating)
	require.NotNil(t, g.TotalRating)
	assert.Equal(t, 92.5, *g.TotalRating)
	require.NotNil(t, g.RatingCount)
	assert.Equal(t, 310, *g.RatingCount)
}

func TestNormalizeRatingAbsent(t *testing.T) {
	// Rating defaults to 0 and always serializes; the source-scale fields
	// stay null when IGDB has no rating.
	g := Normalize(igdb.RawGame{ID: 1})
	assert.Equal(t, 0.0, g.Rating)
	assert.Nil(t, g.TotalRating)
	assert.Nil(t, g.RatingCount)

	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"rating":0`)
	assert.Contains(t, string(out), `"total_rating":null`)
}

func TestNormalizeReleaseDate(t *testing.T) {
	g := Normalize(igdb.RawGame{ID: 1, FirstReleaseDate: ptr(int64(1700000000))})
	require.NotNil(t, g.Released)
	assert.Equal(t, "2023-11-14", *g.Released)
	require.NotNil(t, g.FirstReleaseDate)
	assert.EqualValues(t, 1700000000, *g.FirstReleaseDate)

	g = Normalize(igdb.RawGame{ID: 2})
	assert.Nil(t, g.Released)
	assert.Nil(t, g.FirstReleaseDate)
}

func TestNormalizeImageURLs(t *testing.T) {
	raw := igdb.RawGame{
		ID:          1,
		Cover:       &igdb.RawImage{ID: 10, URL: "//images.igdb.com/igdb/image/upload/t_thumb/co1rba.jpg"},
		Screenshots: []igdb.RawImage{{ID: 20, URL: "//images.igdb.com/igdb/image/upload/t_thumb/sc1.jpg", Width: 320}},
		Artworks:    []igdb.RawImage{{ID: 30, URL: "//images.igdb.com/igdb/image/upload/t_thumb/ar1.jpg"}},
	}
	g := Normalize(raw)

	require.NotNil(t, g.CoverURL)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_cover_big/co1rba.jpg", *g.CoverURL)
	require.Len(t, g.Screenshots, 1)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_screenshot_med/sc1.jpg", g.Screenshots[0].URL)
	assert.Equal(t, 320, g.Screenshots[0].Width)
	require.Len(t, g.Artworks, 1)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_1080p/ar1.jpg", g.Artworks[0].URL)
}

func TestNormalizeCompanyRoles(t *testing.T) {
	raw := igdb.RawGame{
		ID: 1,
		InvolvedCompanies: []igdb.RawInvolvedCompany{
			{ID: 1, Company: igdb.NamedRef{ID: 100, Name: "Valve"}, Developer: true, Publisher: true},
			{ID: 2, Company: igdb.NamedRef{ID: 200, Name: "Sierra"}, Publisher: true},
			{ID: 3, Company: igdb.NamedRef{ID: 300, Name: "Gearbox"}, Developer: false, Publisher: false},
		},
	}
	g := Normalize(raw)

	assert.Equal(t, []Named{{ID: 100, Name: "Valve"}}, g.Developers)
	assert.Equal(t, []Named{{ID: 100, Name: "Valve"}, {ID: 200, Name: "Sierra"}}, g.Publishers)
}

func TestNormalizeOfficialWebsite(t *testing.T) {
	raw := igdb.RawGame{
		ID: 1,
		Websites: []igdb.RawWebsite{
			{ID: 1, Category: 13, URL: "https://store.steampowered.com/app/70"},
			{ID: 2, Category: igdb.WebsiteCategoryOfficial, URL: "https://half-life.com"},
		},
	}
	g := Normalize(raw)
	require.NotNil(t, g.Website)
	assert.Equal(t, "https://half-life.com", *g.Website)

	assert.Nil(t, Normalize(igdb.RawGame{ID: 2}).Website)
}

func TestNormalizeBareThemes(t *testing.T) {
	var themes igdb.RefList
	require.NoError(t, json.Unmarshal([]byte(`[1, 42]`), &themes))

	g := Normalize(igdb.RawGame{ID: 1, Themes: themes})

	// Bare ids have no display name but must survive for filtering.
	assert.Empty(t, g.Themes)
	assert.Empty(t, g.Tags)
	assert.Equal(t, []int64{1, 42}, g.ThemeIDs)
}

func TestNormalizeExpandedThemes(t *testing.T) {
	var themes igdb.RefList
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"name":"Action"},{"id":42,"name":"Erotica"}]`), &themes))

	g := Normalize(igdb.RawGame{ID: 1, Themes: themes})

	assert.Equal(t, []Named{{ID: 1, Name: "Action"}, {ID: 42, Name: "Erotica"}}, g.Themes)
	assert.Equal(t, g.Themes, g.Tags)
	assert.Equal(t, []int64{1, 42}, g.ThemeIDs)
}

func TestNormalizeAgeRatingValues(t *testing.T) {
	raw := igdb.RawGame{
		ID:         1,
		AgeRatings: []igdb.RawAgeRating{{ID: 1, Category: 1, Rating: 12}, {ID: 2, Category: 2, Rating: 5}},
	}
	assert.Equal(t, []int{12, 5}, Normalize(raw).AgeRatingValues)
}

func TestNormalizeEmptySlicesNotNull(t *testing.T) {
	out, err := json.Marshal(Normalize(igdb.RawGame{ID: 1, Name: "Tetris"}))
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	for _, key := range []string{"genres", "platforms", "screenshots", "developers", "publishers", "stores", "theme_ids"} {
		assert.Equal(t, "[]", string(m[key]), "field %s", key)
	}
	assert.Equal(t, "null", string(m["collection"]))
	assert.Equal(t, "null", string(m["cover_url"]))
}

func TestNormalizeDescriptionAliasesSummary(t *testing.T) {
	g := Normalize(igdb.RawGame{ID: 1, Summary: ptr("A game.")})
	require.NotNil(t, g.DescriptionRaw)
	assert.Equal(t, "A game.", *g.DescriptionRaw)
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	games := NormalizeAll([]igdb.RawGame{{ID: 3}, {ID: 1}, {ID: 2}})
	require.Len(t, games, 3)
	assert.EqualValues(t, 3, games[0].ID)
	assert.EqualValues(t, 1, games[1].ID)
	assert.EqualValues(t, 2, games[2].ID)
}
