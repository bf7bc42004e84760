package igdb

import (
	"fmt"
	"strings"
)

// BuildQuery assembles an Apicalypse query statement from structured parts.
// "id" and "name" are always selected; duplicates are dropped. Clauses are
// emitted in the fixed order fields, where, sort, limit, each only when its
// parameter is set.
//
//	BuildQuery([]string{"cover.url"}, "id = 5", 10, "total_rating desc")
//	=> "fields id, name, cover.url; where id = 5; sort total_rating desc; limit 10;"
func BuildQuery(fields []string, condition string, limit int, sort string) string {
	selected := make([]string, 0, len(fields)+2)
	seen := make(map[string]bool, len(fields)+2)
	for _, f := range append([]string{"id", "name"}, fields...) {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		selected = append(selected, f)
	}

	var b strings.Builder
	b.WriteString("fields ")
	b.WriteString(strings.Join(selected, ", "))
	b.WriteString(";")

	if condition != "" {
		b.WriteString(" where ")
		b.WriteString(condition)
		b.WriteString(";")
	}
	if sort != "" {
		b.WriteString(" sort ")
		b.WriteString(sort)
		b.WriteString(";")
	}
	if limit > 0 {
		fmt.Fprintf(&b, " limit %d;", limit)
	}

	return b.String()
}

// Escape escapes a free-text value for safe interpolation inside a quoted
// Apicalypse string literal. Conditions built from user input must pass
// through here before BuildQuery.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
