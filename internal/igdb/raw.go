// Raw payload model for IGDB /games responses. Every field is optional —
// which fields arrive depends entirely on the field list of the query, so
// nothing here may be assumed present.
package igdb

import (
	"encoding/json"
	"fmt"
)

// NamedRef is an id/name pair from an expanded IGDB reference.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Ref is an IGDB reference that arrives either as a bare numeric id or as an
// expanded object, depending on whether the query expanded the field. The
// distinction is resolved once at decode time; Expanded reports which form
// was received.
type Ref struct {
	ID       int64
	Name     string
	Games    []int64 // collection/franchise member ids when expanded with games
	Expanded bool
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] != '{' {
		r.Expanded = false
		return json.Unmarshal(b, &r.ID)
	}
	var obj struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name"`
		Games []int64 `json:"games"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("igdb: decode ref: %w", err)
	}
	r.ID = obj.ID
	r.Name = obj.Name
	r.Games = obj.Games
	r.Expanded = true
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Expanded {
		return json.Marshal(r.ID)
	}
	return json.Marshal(struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name,omitempty"`
		Games []int64 `json:"games,omitempty"`
	}{r.ID, r.Name, r.Games})
}

// RefList is a list of Ref values ([42, 19] and [{"id":42,"name":"Erotica"}]
// both decode cleanly).
type RefList []Ref

// IDs returns the numeric ids of all entries regardless of form.
func (l RefList) IDs() []int64 {
	ids := make([]int64, 0, len(l))
	for _, r := range l {
		ids = append(ids, r.ID)
	}
	return ids
}

// RawImage is a cover, screenshot, or artwork entry.
type RawImage struct {
	ID     int64  `json:"id"`
	URL    string `json:"url,omitempty"` // protocol-relative, t_thumb sized
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// RawVideo is a game video entry; VideoID is the external (YouTube) id.
type RawVideo struct {
	ID      int64  `json:"id"`
	VideoID string `json:"video_id,omitempty"`
	Name    string `json:"name,omitempty"`
}

// RawAgeRating carries the numeric rating value checked by the content filter.
type RawAgeRating struct {
	ID       int64 `json:"id"`
	Category int   `json:"category,omitempty"`
	Rating   int   `json:"rating,omitempty"`
}

// RawInvolvedCompany links a company to a game with role flags. A company
// with both flags set appears as developer and publisher.
type RawInvolvedCompany struct {
	ID        int64    `json:"id"`
	Company   NamedRef `json:"company,omitempty"`
	Developer bool     `json:"developer,omitempty"`
	Publisher bool     `json:"publisher,omitempty"`
}

// Website categories per the IGDB enum; only the official site is surfaced.
const WebsiteCategoryOfficial = 1

// RawWebsite is a game website entry.
type RawWebsite struct {
	ID       int64  `json:"id"`
	Category int    `json:"category,omitempty"`
	URL      string `json:"url,omitempty"`
}

// RawGame is one element of an IGDB /games response.
type RawGame struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name,omitempty"`
	Summary              *string              `json:"summary,omitempty"`
	Storyline            *string              `json:"storyline,omitempty"`
	TotalRating          *float64             `json:"total_rating,omitempty"`
	TotalRatingCount     *int                 `json:"total_rating_count,omitempty"`
	FirstReleaseDate     *int64               `json:"first_release_date,omitempty"`
	Cover                *RawImage            `json:"cover,omitempty"`
	Screenshots          []RawImage           `json:"screenshots,omitempty"`
	Artworks             []RawImage           `json:"artworks,omitempty"`
	Videos               []RawVideo           `json:"videos,omitempty"`
	Genres               []NamedRef           `json:"genres,omitempty"`
	Platforms            []NamedRef           `json:"platforms,omitempty"`
	GameModes            []NamedRef           `json:"game_modes,omitempty"`
	PlayerPerspectives   []NamedRef           `json:"player_perspectives,omitempty"`
	Themes               RefList              `json:"themes,omitempty"`
	AgeRatings           []RawAgeRating       `json:"age_ratings,omitempty"`
	InvolvedCompanies    []RawInvolvedCompany `json:"involved_companies,omitempty"`
	Websites             []RawWebsite         `json:"websites,omitempty"`
	Franchises           RefList              `json:"franchises,omitempty"`
	Collection           *Ref                 `json:"collection,omitempty"`
	SimilarGames         []NamedRef           `json:"similar_games,omitempty"`
	DLCs                 []NamedRef           `json:"dlcs,omitempty"`
	Expansions           []NamedRef           `json:"expansions,omitempty"`
	StandaloneExpansions []NamedRef           `json:"standalone_expansions,omitempty"`
	Remakes              []NamedRef           `json:"remakes,omitempty"`
	Remasters            []NamedRef           `json:"remasters,omitempty"`
	Ports                []NamedRef           `json:"ports,omitempty"`
	Forks                []NamedRef           `json:"forks,omitempty"`
}
