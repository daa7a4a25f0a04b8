// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTMDBBaseURL = "https://api.themoviedb.org/3"
	posterSize         = "w500"
)

type tmdbConfiguration struct {
	Images struct {
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

// TMDB is a Catalog backed by The Movie Database API. Movies and the image
// base URL are cached for the life of the process.
type TMDB struct {
	httpClient *resty.Client
	apiKey     string

	mu        sync.RWMutex
	imageBase string
	movies    map[int64]Movie
}

func NewTMDB(baseURL, apiKey string) *TMDB {
	if baseURL == "" {
		baseURL = DefaultTMDBBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json")

	return &TMDB{
		httpClient: client,
		apiKey:     apiKey,
		movies:     map[int64]Movie{},
	}
}

// PosterURL joins the image base, size and poster path. Empty when there is no poster.
func PosterURL(base, posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	return base + size + posterPath
}

func (c *TMDB) imageBaseURL(ctx context.Context) (string, error) {
	c.mu.RLock()
	base := c.imageBase
	c.mu.RUnlock()
	if base != "" {
		return base, nil
	}

	var cfg tmdbConfiguration
	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetQueryParam("api_key", c.apiKey).
		SetResult(&cfg).
		Get("/configuration")
	if err != nil {
		return "", fmt.Errorf("tmdb configuration: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("tmdb configuration: %s", resp.Status())
	}
	if cfg.Images.SecureBaseURL == "" {
		return "", errors.New("tmdb configuration: empty secure_base_url")
	}

	c.mu.Lock()
	c.imageBase = cfg.Images.SecureBaseURL
	c.mu.Unlock()
	return cfg.Images.SecureBaseURL, nil
}

func (c *TMDB) Movie(ctx context.Context, id int64) (Movie, error) {
	c.mu.RLock()
	m, ok := c.movies[id]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	base, err := c.imageBaseURL(ctx)
	if err != nil {
		return Movie{}, err
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetQueryParam("api_key", c.apiKey).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&m).
		Get("/movie/{id}")
	if err != nil {
		return Movie{}, fmt.Errorf("tmdb movie %d: %w", id, err)
	}
	if resp.IsError() {
		return Movie{}, fmt.Errorf("tmdb movie %d: %s", id, resp.Status())
	}
	m.PosterURL = PosterURL(base, m.PosterPath, posterSize)

	c.mu.Lock()
	c.movies[id] = m
	c.mu.Unlock()
	return m, nil
}
