package catalog

import (
	"strings"
	"time"

	"github.com/spudin/gamelist-data/internal/igdb"
)

// IGDB image size tokens. Raw URLs arrive protocol-relative with a t_thumb
// token; normalization swaps in the size each slot needs.
const (
	sizeCoverBig      = "t_cover_big"
	sizeArtwork1080p  = "t_1080p"
	sizeScreenshotMed = "t_screenshot_med"
)

// Normalize converts a raw IGDB game into the stable Game shape. Pure and
// total: every raw field is optional and absence maps to an explicit null or
// an empty slice, never a missing key.
func Normalize(raw igdb.RawGame) Game {
	g := Game{
		ID:   raw.ID,
		Name: raw.Name,

		Screenshots: normalizeImages(raw.Screenshots, sizeScreenshotMed),
		Artworks:    normalizeImages(raw.Artworks, sizeArtwork1080p),
		Videos:      normalizeVideos(raw.Videos),

		Genres:             normalizeNamed(raw.Genres),
		Platforms:          normalizeNamed(raw.Platforms),
		GameModes:          normalizeNamed(raw.GameModes),
		PlayerPerspectives: normalizeNamed(raw.PlayerPerspectives),

		ThemeIDs:        themeIDs(raw.Themes),
		AgeRatingValues: ageRatingValues(raw.AgeRatings),

		Developers:           companiesByRole(raw.InvolvedCompanies, func(c igdb.RawInvolvedCompany) bool { return c.Developer }),
		Publishers:           companiesByRole(raw.InvolvedCompanies, func(c igdb.RawInvolvedCompany) bool { return c.Publisher }),
		Franchises:           normalizeRefs(raw.Franchises),
		Collection:           normalizeCollection(raw.Collection),
		SimilarGames:         normalizeNamed(raw.SimilarGames),
		DLCs:                 normalizeNamed(raw.DLCs),
		Expansions:           normalizeNamed(raw.Expansions),
		StandaloneExpansions: normalizeNamed(raw.StandaloneExpansions),
		Remakes:              normalizeNamed(raw.Remakes),
		Remasters:            normalizeNamed(raw.Remasters),
		Ports:                normalizeNamed(raw.Ports),
		Forks:                normalizeNamed(raw.Forks),

		TotalRating: raw.TotalRating,
		RatingCount: raw.TotalRatingCount,

		Summary:          raw.Summary,
		Storyline:        raw.Storyline,
		DescriptionRaw:   raw.Summary, // alias kept for RAWG compatibility
		FirstReleaseDate: raw.FirstReleaseDate,

		Stores:  []Store{},
		Website: officialWebsite(raw.Websites),
	}

	// Themes and tags carry the same named entries. Bare-integer themes have
	// no name to display and are deliberately dropped here; their ids remain
	// in ThemeIDs for the content filter.
	g.Themes = normalizeRefs(raw.Themes)
	g.Tags = append([]Named{}, g.Themes...)

	if raw.Cover != nil && raw.Cover.URL != "" {
		u := imageURL(raw.Cover.URL, sizeCoverBig)
		g.CoverURL = &u
	}

	// Display scale is source/20 with a 0 default — not null. The asymmetry
	// with RatingCount/TotalRating is intentional and load-bearing for
	// existing consumers.
	if raw.TotalRating != nil {
		g.Rating = *raw.TotalRating / 20
	}

	if raw.FirstReleaseDate != nil {
		d := time.Unix(*raw.FirstReleaseDate, 0).UTC().Format("2006-01-02")
		g.Released = &d
	}

	return g
}

// NormalizeAll normalizes a raw result set, preserving order.
func NormalizeAll(raw []igdb.RawGame) []Game {
	games := make([]Game, 0, len(raw))
	for _, r := range raw {
		games = append(games, Normalize(r))
	}
	return games
}

// imageURL makes a raw IGDB image URL absolute and swaps the size token.
func imageURL(raw, size string) string {
	u := raw
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return strings.Replace(u, "t_thumb", size, 1)
}

func normalizeImages(raw []igdb.RawImage, size string) []Image {
	images := make([]Image, 0, len(raw))
	for _, img := range raw {
		if img.URL == "" {
			continue
		}
		images = append(images, Image{
			ID:     img.ID,
			URL:    imageURL(img.URL, size),
			Width:  img.Width,
			Height: img.Height,
		})
	}
	return images
}

func normalizeVideos(raw []igdb.RawVideo) []Video {
	videos := make([]Video, 0, len(raw))
	for _, v := range raw {
		if v.VideoID == "" {
			continue
		}
		videos = append(videos, Video{ID: v.ID, VideoID: v.VideoID, Name: v.Name})
	}
	return videos
}

// normalizeNamed drops entries that carry neither a name nor a usable id.
func normalizeNamed(raw []igdb.NamedRef) []Named {
	named := make([]Named, 0, len(raw))
	for _, r := range raw {
		if r.Name == "" && r.ID == 0 {
			continue
		}
		named = append(named, Named{ID: r.ID, Name: r.Name})
	}
	return named
}

// normalizeRefs keeps only expanded refs that have a name; bare ids have
// nothing to display.
func normalizeRefs(raw igdb.RefList) []Named {
	named := make([]Named, 0, len(raw))
	for _, r := range raw {
		if !r.Expanded || r.Name == "" {
			continue
		}
		named = append(named, Named{ID: r.ID, Name: r.Name})
	}
	return named
}

func normalizeCollection(raw *igdb.Ref) *Collection {
	if raw == nil || raw.ID == 0 {
		return nil
	}
	return &Collection{ID: raw.ID, Name: raw.Name, Games: raw.Games}
}

func companiesByRole(raw []igdb.RawInvolvedCompany, hasRole func(igdb.RawInvolvedCompany) bool) []Named {
	named := make([]Named, 0, len(raw))
	for _, ic := range raw {
		if !hasRole(ic) {
			continue
		}
		if ic.Company.Name == "" && ic.Company.ID == 0 {
			continue
		}
		named = append(named, Named{ID: ic.Company.ID, Name: ic.Company.Name})
	}
	return named
}

func officialWebsite(raw []igdb.RawWebsite) *string {
	for _, w := range raw {
		if w.Category == igdb.WebsiteCategoryOfficial && w.URL != "" {
			u := w.URL
			return &u
		}
	}
	return nil
}

func themeIDs(raw igdb.RefList) []int64 {
	ids := make([]int64, 0, len(raw))
	return append(ids, raw.IDs()...)
}

func ageRatingValues(raw []igdb.RawAgeRating) []int {
	values := make([]int, 0, len(raw))
	for _, ar := range raw {
		values = append(values, ar.Rating)
	}
	return values
}
