// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeTMDB(t *testing.T, movieCalls *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /configuration", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"images": map[string]any{"secure_base_url": "https://img.example/", "poster_sizes": []string{"w500"}},
		})
	})
	mux.HandleFunc("GET /movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		movieCalls.Add(1)
		if r.PathValue("id") != "20" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": 20, "title": "The Grand Budapest Hotel", "poster_path": "/gbh.jpg",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestTMDB_Movie(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeTMDB(t, &calls)
	c := NewTMDB(srv.URL, "k")

	m, err := c.Movie(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, "The Grand Budapest Hotel", m.Title)
	assert.Equal(t, "https://img.example/w500/gbh.jpg", m.PosterURL)

	// second lookup is served from cache
	_, err = c.Movie(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTMDB_MovieNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeTMDB(t, &calls)
	c := NewTMDB(srv.URL, "k")

	_, err := c.Movie(context.Background(), 99)
	assert.Error(t, err)
}

func TestTMDB_BadKey(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeTMDB(t, &calls)
	c := NewTMDB(srv.URL, "wrong")

	_, err := c.Movie(context.Background(), 20)
	assert.Error(t, err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestLookup_SkipsFailures(t *testing.T) {
	var calls atomic.Int32
	srv := newFakeTMDB(t, &calls)
	c := NewTMDB(srv.URL, "k")

	got := Lookup(context.Background(), c, []int64{20, 99, 20})
	assert.Len(t, got, 1)
	assert.Equal(t, "The Grand Budapest Hotel", got[20].Title)
}

func TestPosterURL(t *testing.T) {
	assert.Equal(t, "", PosterURL("https://img/", "", "w500"))
	assert.Equal(t, "https://img/w92/p.jpg", PosterURL("https://img/", "/p.jpg", "w92"))
}

func TestTMDB_EmptyImageBase(t *testing.T) {
	var configCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /configuration", func(w http.ResponseWriter, r *http.Request) {
		configCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"images": map[string]any{"secure_base_url": ""},
		})
	})
	mux.HandleFunc("GET /movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": 20, "title": "x", "poster_path": "/p.jpg"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewTMDB(srv.URL, "k")
	_, err := c.Movie(context.Background(), 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_base_url")
}

func TestTMDB_UntypedJSONResponse(t *testing.T) {
	// Some proxies strip the content type; the body is still decoded
	mux := http.NewServeMux()
	mux.HandleFunc("GET /configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images":{"secure_base_url":"https://img.example/"}}`))
	})
	mux.HandleFunc("GET /movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":20,"title":"The Grand Budapest Hotel","poster_path":"/gbh.jpg"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewTMDB(srv.URL, "k")
	m, err := c.Movie(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/w500/gbh.jpg", m.PosterURL)
}
