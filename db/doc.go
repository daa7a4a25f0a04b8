// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Connecting

Open selects the driver from the database type:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:dailyfictions.db")

PostgreSQL uses github.com/lib/pq and SQLite uses modernc.org/sqlite (no cgo).
SQLite connections are capped at one so concurrent writers queue instead of
failing with SQLITE_BUSY.

# Schema Creation

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - proposal: film proposals per room
  - vote: (proposal_id, session_id) facts, primary key on the pair
  - locked_pick: current pick, one row per room
  - played_entry: append-only play history

# Relationships

	proposal 1──* vote
	proposal 1──? locked_pick
	room     1──* played_entry

played_entry keeps only the movie id and timestamp, so history survives
proposal cleanup.
*/
package db
