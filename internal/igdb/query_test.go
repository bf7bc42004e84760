package igdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name      string
		fields    []string
		condition string
		limit     int
		sort      string
		want      string
	}{
		{
			name:      "all clauses",
			fields:    []string{"cover.url"},
			condition: "id = 5",
			limit:     10,
			sort:      "total_rating desc",
			want:      "fields id, name, cover.url; where id = 5; sort total_rating desc; limit 10;",
		},
		{
			name:   "fields only",
			fields: []string{"summary"},
			want:   "fields id, name, summary;",
		},
		{
			name:      "no sort",
			fields:    nil,
			condition: `name ~ *"portal"*`,
			limit:     20,
			want:      `fields id, name; where name ~ *"portal"*; limit 20;`,
		},
		{
			name:   "id and name deduplicated",
			fields: []string{"id", "name", "summary", "summary"},
			want:   "fields id, name, summary;",
		},
		{
			name:   "blank fields dropped",
			fields: []string{"", "  ", "cover.url"},
			want:   "fields id, name, cover.url;",
		},
		{
			name:  "zero limit omitted",
			sort:  "first_release_date asc",
			want:  "fields id, name; sort first_release_date asc;",
			limit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.fields, tt.condition, tt.limit, tt.sort)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `portal`, Escape(`portal`))
	assert.Equal(t, `he said \"hi\"`, Escape(`he said "hi"`))
	assert.Equal(t, `back\\slash`, Escape(`back\slash`))
	assert.Equal(t, `\\\"`, Escape(`\"`))
}
