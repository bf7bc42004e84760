// Package catalog turns raw IGDB payloads into the application's stable game
// representation and orchestrates fetching, filtering, and caching.
package catalog

// Named is an id/name pair used for genres, platforms, companies, and every
// other classification list on a Game.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Image is a sized media entry (screenshot or artwork).
type Image struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Video is a game video; VideoID is the external (YouTube) video id.
type Video struct {
	ID      int64  `json:"id"`
	VideoID string `json:"video_id"`
	Name    string `json:"name,omitempty"`
}

// Collection is the game's series grouping, when it has one. Games holds the
// ids of the other members.
type Collection struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name,omitempty"`
	Games []int64 `json:"games,omitempty"`
}

// Store is part of the RAWG-compatible surface; IGDB provides no store data,
// so the list is always empty by construction.
type Store struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Game is the stable normalized shape returned to all callers regardless of
// which query produced it.
//
// Every slice field is non-nil (empty when absent) and every nullable scalar
// is an explicit pointer, so consumers can rely on key presence in the JSON.
type Game struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Media
	CoverURL    *string `json:"cover_url"`
	Screenshots []Image `json:"screenshots"`
	Artworks    []Image `json:"artworks"`
	Videos      []Video `json:"videos"`

	// Classification
	Genres             []Named `json:"genres"`
	Platforms          []Named `json:"platforms"`
	Themes             []Named `json:"themes"`
	Tags               []Named `json:"tags"`
	GameModes          []Named `json:"game_modes"`
	PlayerPerspectives []Named `json:"player_perspectives"`

	// Raw identifiers the content filter needs. Themes without names (bare
	// ids in the source payload) never make it into Themes, so the ids are
	// carried separately to keep cached payloads filterable.
	ThemeIDs        []int64 `json:"theme_ids"`
	AgeRatingValues []int   `json:"age_rating_values"`

	// Relationships
	Developers           []Named     `json:"developers"`
	Publishers           []Named     `json:"publishers"`
	Franchises           []Named     `json:"franchises"`
	Collection           *Collection `json:"collection"`
	SimilarGames         []Named     `json:"similar_games"`
	DLCs                 []Named     `json:"dlcs"`
	Expansions           []Named     `json:"expansions"`
	StandaloneExpansions []Named     `json:"standalone_expansions"`
	Remakes              []Named     `json:"remakes"`
	Remasters            []Named     `json:"remasters"`
	Ports                []Named     `json:"ports"`
	Forks                []Named     `json:"forks"`

	// Ratings. TotalRating is the source 0-100 scale and stays null when
	// absent; Rating is the derived 0-5 display scale and defaults to 0.
	TotalRating *float64 `json:"total_rating"`
	Rating      float64  `json:"rating"`
	RatingCount *int     `json:"rating_count"`

	// Textual
	Summary        *string `json:"summary"`
	Storyline      *string `json:"storyline"`
	DescriptionRaw *string `json:"description_raw"`

	// Dates
	FirstReleaseDate *int64  `json:"first_release_date"`
	Released         *string `json:"released"`

	// RAWG compatibility — kept null/empty; IGDB has no data for these.
	Metacritic        *int    `json:"metacritic"`
	MetacriticURL     *string `json:"metacritic_url"`
	RedditURL         *string `json:"reddit_url"`
	RedditName        *string `json:"reddit_name"`
	RedditDescription *string `json:"reddit_description"`
	RedditLogo        *string `json:"reddit_logo"`
	Playtime          *int    `json:"playtime"`
	ESRBRating        *Named  `json:"esrb_rating"`
	Stores            []Store `json:"stores"`
	Website           *string `json:"website"`

	// Per-caller fields populated by collaborators after this core returns
	// data; never written here and never cached.
	UserStatus *string  `json:"user_status,omitempty"`
	UserRating *float64 `json:"user_rating,omitempty"`
	InUserList bool     `json:"in_user_list,omitempty"`
}
