package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var friendsConfig = Config{
	DefaultSort: "-id",
	MaxLimit:    30,
	Filters:     []string{"name", "source"},
	Search:      []string{"name"},
	Sortable:    []string{"id", "name", "birthdate"},
}

func parse(raw string) Params {
	values, _ := url.ParseQuery(raw)
	return Parse(friendsConfig, values)
}

func TestParse_Defaults(t *testing.T) {
	p := parse("")

	assert.Equal(t, 0, p.Skip)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, Sort{Field: "id", Desc: true}, p.Sort)
	assert.Empty(t, p.Filters.Exact)
	assert.Empty(t, p.Filters.Search)
	assert.False(t, p.Count)
}

func TestParse_Limit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"limit=5", 5},
		{"limit=30", 30},
		{"limit=31", DefaultLimit},
		{"limit=0", DefaultLimit},
		{"limit=-3", DefaultLimit},
		{"limit=abc", DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(tt.raw).Limit)
		})
	}
}

func TestParse_LimitUsesDefaultMax(t *testing.T) {
	values, _ := url.ParseQuery("limit=25")
	assert.Equal(t, DefaultLimit, Parse(Config{}, values).Limit)

	values, _ = url.ParseQuery("limit=20")
	assert.Equal(t, 20, Parse(Config{}, values).Limit)
}

func TestParse_Skip(t *testing.T) {
	assert.Equal(t, 10, parse("skip=10").Skip)
	assert.Equal(t, 0, parse("skip=-1").Skip)
	assert.Equal(t, 0, parse("skip=ten").Skip)
}

func TestParse_Sort(t *testing.T) {
	assert.Equal(t, Sort{Field: "name"}, parse("sort=name").Sort)
	assert.Equal(t, Sort{Field: "birthdate", Desc: true}, parse("sort=-birthdate").Sort)
	// unknown columns never reach ORDER BY
	assert.Equal(t, Sort{Field: "id", Desc: true}, parse("sort=password").Sort)
	assert.Equal(t, Sort{Field: "id", Desc: true}, parse("sort=name;drop table users").Sort)
}

func TestParse_Filters(t *testing.T) {
	p := parse("name=Ada&source=email&password=x&search=ad")

	assert.Equal(t, map[string]interface{}{"name": "Ada", "source": "email"}, p.Filters.Exact)
	assert.Equal(t, "ad", p.Filters.Search)
	assert.Equal(t, []string{"name"}, p.Filters.SearchFields)
}

func TestParse_SearchWithoutSearchFields(t *testing.T) {
	values, _ := url.ParseQuery("search=ada")
	p := Parse(Config{DefaultSort: "id"}, values)

	assert.Empty(t, p.Filters.Search)
	assert.Empty(t, p.Filters.SearchFields)
}

func TestParse_Count(t *testing.T) {
	assert.True(t, parse("count=true").Count)
	assert.True(t, parse("count=1").Count)
	assert.True(t, parse("count=yes").Count)
	assert.False(t, parse("count=false").Count)
	assert.False(t, parse("").Count)
}

func TestParams_Where(t *testing.T) {
	p := parse("name=Ada")
	scoped := p.Where("user_id", uint(7))

	assert.Equal(t, uint(7), scoped.Filters.Exact["user_id"])
	assert.Equal(t, "Ada", scoped.Filters.Exact["name"])
	_, leaked := p.Filters.Exact["user_id"]
	assert.False(t, leaked)
}
