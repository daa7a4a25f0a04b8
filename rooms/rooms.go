// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rooms

// Room is one fixed thematic bucket. Rooms are defined at deploy time.
type Room struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Director      string `json:"director"`
	Tagline       string `json:"tagline"`
	GenreID       int    `json:"genre_id"` // catalog genre used for discovery
	AestheticOnly bool   `json:"aesthetic_only"`
}

var all = []Room{
	{Slug: "comedy", Name: "Comedy", Director: "Wes Anderson", Tagline: "Symmetry, pastels, vintage", GenreID: 35},
	{Slug: "action", Name: "Action", Director: "", Tagline: "Kinetic, bold", GenreID: 28, AestheticOnly: true},
	{Slug: "horror", Name: "Horror", Director: "", Tagline: "Arthouse, shadow", GenreID: 27, AestheticOnly: true},
	{Slug: "drama", Name: "Drama", Director: "Federico Fellini", Tagline: "Baroque, dreamlike", GenreID: 18},
	{Slug: "sci-fi", Name: "Sci-Fi", Director: "", Tagline: "Contemplative, vast", GenreID: 878, AestheticOnly: true},
	{Slug: "fantasy", Name: "Fantasy", Director: "Alejandro Jodorowsky", Tagline: "Psychedelic, surreal", GenreID: 14},
	{Slug: "romance", Name: "Romance", Director: "Wong Kar-Wai", Tagline: "Saturated color, neon", GenreID: 10749},
	{Slug: "thriller", Name: "Thriller", Director: "Paul Thomas Anderson", Tagline: "Imperfect realism", GenreID: 53},
	{Slug: "documentary", Name: "Documentary", Director: "Werner Herzog", Tagline: "Ecstatic truth", GenreID: 99},
	{Slug: "animation", Name: "Animation", Director: "", Tagline: "Drawn worlds", GenreID: 16, AestheticOnly: true},
}

var bySlug = func() map[string]Room {
	m := make(map[string]Room, len(all))
	for _, r := range all {
		m[r.Slug] = r
	}
	return m
}()

// All returns every room in display order. The slice is a copy.
func All() []Room {
	out := make([]Room, len(all))
	copy(out, all)
	return out
}

// Slugs returns every room slug in display order.
func Slugs() []string {
	out := make([]string, len(all))
	for i, r := range all {
		out[i] = r.Slug
	}
	return out
}

// Get looks up a room by slug
func Get(slug string) (Room, bool) {
	r, ok := bySlug[slug]
	return r, ok
}

// IsValid reports whether slug names one of the fixed rooms
func IsValid(slug string) bool {
	_, ok := bySlug[slug]
	return ok
}
