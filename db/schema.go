// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
// SQLite is limited to one open connection so writers never see SQLITE_BUSY.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to configure sqlite: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	schema := postgresSchema
	if dbType == TypeSQLite {
		schema = sqliteSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Proposals. seq records insertion order for ranking ties.
CREATE TABLE IF NOT EXISTS proposal (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL NOT NULL,
    room_slug TEXT NOT NULL,
    movie_id BIGINT NOT NULL,
    pitch TEXT NOT NULL DEFAULT '',
    trailer_url TEXT NOT NULL DEFAULT '',
    submitter_label TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_proposal_room_seq ON proposal(room_slug, seq);

-- Votes: the pair is the natural key
CREATE TABLE IF NOT EXISTS vote (
    proposal_id TEXT NOT NULL REFERENCES proposal(id) ON DELETE CASCADE,
    session_id TEXT NOT NULL,
    PRIMARY KEY (proposal_id, session_id)
);

-- Current pick, one row per room
CREATE TABLE IF NOT EXISTS locked_pick (
    room_slug TEXT PRIMARY KEY,
    proposal_id TEXT NOT NULL REFERENCES proposal(id) ON DELETE CASCADE,
    movie_id BIGINT NOT NULL,
    locked_at TIMESTAMPTZ NOT NULL
);

-- Play history, append-only
CREATE TABLE IF NOT EXISTS played_entry (
    id BIGSERIAL PRIMARY KEY,
    room_slug TEXT NOT NULL,
    movie_id BIGINT NOT NULL,
    locked_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_played_entry_room_slug ON played_entry(room_slug, id);
`

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS proposal (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    room_slug TEXT NOT NULL,
    movie_id INTEGER NOT NULL,
    pitch TEXT NOT NULL DEFAULT '',
    trailer_url TEXT NOT NULL DEFAULT '',
    submitter_label TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_proposal_room_seq ON proposal(room_slug, seq);

CREATE TABLE IF NOT EXISTS vote (
    proposal_id TEXT NOT NULL REFERENCES proposal(id) ON DELETE CASCADE,
    session_id TEXT NOT NULL,
    PRIMARY KEY (proposal_id, session_id)
);

CREATE TABLE IF NOT EXISTS locked_pick (
    room_slug TEXT PRIMARY KEY,
    proposal_id TEXT NOT NULL REFERENCES proposal(id) ON DELETE CASCADE,
    movie_id INTEGER NOT NULL,
    locked_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS played_entry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room_slug TEXT NOT NULL,
    movie_id INTEGER NOT NULL,
    locked_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_played_entry_room_slug ON played_entry(room_slug, id);
`
