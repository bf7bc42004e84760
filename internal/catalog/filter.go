package catalog

// Filter removes games whose age ratings or themes match configured blocked
// sets. Pure predicate — no side effects, order preserved.
type Filter struct {
	enabled bool
	themes  map[int64]bool
	ratings map[int]bool
}

// NewFilter builds a content filter from the configured blocked identifier
// sets. When enabled is false the filter passes everything through.
func NewFilter(enabled bool, blockedThemes, blockedAgeRatings []int) *Filter {
	f := &Filter{
		enabled: enabled,
		themes:  make(map[int64]bool, len(blockedThemes)),
		ratings: make(map[int]bool, len(blockedAgeRatings)),
	}
	for _, id := range blockedThemes {
		f.themes[int64(id)] = true
	}
	for _, v := range blockedAgeRatings {
		f.ratings[v] = true
	}
	return f
}

// Disallowed reports whether a game matches any blocked age-rating value or
// blocked theme id.
func (f *Filter) Disallowed(g *Game) bool {
	if !f.enabled {
		return false
	}
	for _, v := range g.AgeRatingValues {
		if f.ratings[v] {
			return true
		}
	}
	for _, id := range g.ThemeIDs {
		if f.themes[id] {
			return true
		}
	}
	return false
}

// Apply returns the games with disallowed entries removed, preserving order.
func (f *Filter) Apply(games []Game) []Game {
	if !f.enabled {
		return games
	}
	out := make([]Game, 0, len(games))
	for i := range games {
		if f.Disallowed(&games[i]) {
			continue
		}
		out = append(out, games[i])
	}
	return out
}
