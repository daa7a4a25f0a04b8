// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "surrounding spaces", header: "Bearer   abc123  ", want: "abc123"},
		{name: "empty header", header: "", wantErr: ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc123", wantErr: ErrMissingToken},
		{name: "lowercase scheme", header: "bearer abc123", wantErr: ErrMissingToken},
		{name: "no token", header: "Bearer ", wantErr: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateBearer(t *testing.T) {
	secret := "cron-secret"

	tests := []struct {
		name    string
		header  string
		secret  string
		wantErr error
	}{
		{name: "correct secret", header: "Bearer cron-secret", secret: secret},
		{name: "wrong secret", header: "Bearer nope", secret: secret, wantErr: ErrInvalidToken},
		{name: "prefix of secret", header: "Bearer cron", secret: secret, wantErr: ErrInvalidToken},
		{name: "missing header", header: "", secret: secret, wantErr: ErrMissingToken},
		{name: "no secret configured", header: "Bearer ", secret: "", wantErr: ErrNoSecret},
		{name: "no secret configured rejects any token", header: "Bearer anything", secret: "", wantErr: ErrNoSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBearer(tt.header, tt.secret)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHasSession(t *testing.T) {
	tests := []struct {
		session string
		want    bool
	}{
		{"s_abc", true},
		{" s_abc ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := HasSession(tt.session); got != tt.want {
			t.Errorf("HasSession(%q) = %v, want %v", tt.session, got, tt.want)
		}
	}
}
