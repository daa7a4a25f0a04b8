// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"log/slog"
	"sync"
)

// Movie is the catalog metadata shown next to a proposal or history entry
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterURL   string `json:"-"`
}

// Catalog looks up movie metadata by catalog id
type Catalog interface {
	Movie(ctx context.Context, id int64) (Movie, error)
}

// Nop is used when no catalog is configured. It knows only the id.
type Nop struct{}

func (Nop) Movie(_ context.Context, id int64) (Movie, error) {
	return Movie{ID: id}, nil
}

// Lookup fetches every distinct id concurrently. Failed lookups are logged
// and left out of the result.
func Lookup(ctx context.Context, c Catalog, ids []int64) map[int64]Movie {
	out := make(map[int64]Movie, len(ids))
	if c == nil {
		return out
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	seen := map[int64]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m, err := c.Movie(ctx, id)
			if err != nil {
				slog.Warn("catalog lookup failed", "movie_id", id, "error", err)
				return
			}
			mu.Lock()
			out[id] = m
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return out
}
