// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/dailyfictions/models"
)

// SQLStore implements Store on PostgreSQL or SQLite. Queries use $n
// placeholders, which both drivers accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// ---------- Proposals ----------

func (s *SQLStore) CreateProposal(ctx context.Context, p models.Proposal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO proposal (id, room_slug, movie_id, pitch, trailer_url, submitter_label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.RoomSlug, p.MovieID, p.Pitch, p.TrailerURL, p.SubmitterLabel, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

func (s *SQLStore) GetProposal(ctx context.Context, id string) (models.Proposal, error) {
	var p models.Proposal
	err := s.db.QueryRowContext(ctx, `
		SELECT id, room_slug, movie_id, pitch, trailer_url, submitter_label, created_at
		FROM proposal
		WHERE id = $1
	`, id).Scan(&p.ID, &p.RoomSlug, &p.MovieID, &p.Pitch, &p.TrailerURL, &p.SubmitterLabel, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Proposal{}, ErrNotFound
	}
	if err != nil {
		return models.Proposal{}, fmt.Errorf("query proposal: %w", err)
	}
	return p, nil
}

// ListProposals returns proposals in insertion order
func (s *SQLStore) ListProposals(ctx context.Context, room string) ([]models.Proposal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, room_slug, movie_id, pitch, trailer_url, submitter_label, created_at
		FROM proposal
		WHERE room_slug = $1
		ORDER BY seq
	`, room)
	if err != nil {
		return nil, fmt.Errorf("query proposals: %w", err)
	}
	defer rows.Close()

	proposals := []models.Proposal{}
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(&p.ID, &p.RoomSlug, &p.MovieID, &p.Pitch, &p.TrailerURL, &p.SubmitterLabel, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proposals: %w", err)
	}
	return proposals, nil
}

// ---------- Votes ----------

func (s *SQLStore) HasVoted(ctx context.Context, proposalID, sessionID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE proposal_id = $1 AND session_id = $2
		)
	`, proposalID, sessionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query vote: %w", err)
	}
	return exists, nil
}

// AddVote relies on the (proposal_id, session_id) primary key, so two
// identical concurrent inserts can never both succeed.
func (s *SQLStore) AddVote(ctx context.Context, proposalID, sessionID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (proposal_id, session_id)
		VALUES ($1, $2)
		ON CONFLICT (proposal_id, session_id) DO NOTHING
	`, proposalID, sessionID)
	if err != nil {
		return false, fmt.Errorf("insert vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert vote: %w", err)
	}
	return n == 1, nil
}

func (s *SQLStore) RemoveVote(ctx context.Context, proposalID, sessionID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM vote WHERE proposal_id = $1 AND session_id = $2
	`, proposalID, sessionID)
	if err != nil {
		return false, fmt.Errorf("delete vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete vote: %w", err)
	}
	return n > 0, nil
}

func (s *SQLStore) CountVotes(ctx context.Context, proposalID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE proposal_id = $1
	`, proposalID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return count, nil
}

func (s *SQLStore) ListVotes(ctx context.Context) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT proposal_id, session_id FROM vote`)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ProposalID, &v.SessionID); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate votes: %w", err)
	}
	return votes, nil
}

// ---------- Picks ----------

func (s *SQLStore) GetLocked(ctx context.Context, room string) (models.LockedPick, bool, error) {
	var pick models.LockedPick
	err := s.db.QueryRowContext(ctx, `
		SELECT proposal_id, movie_id, locked_at
		FROM locked_pick
		WHERE room_slug = $1
	`, room).Scan(&pick.ProposalID, &pick.MovieID, &pick.LockedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LockedPick{}, false, nil
	}
	if err != nil {
		return models.LockedPick{}, false, fmt.Errorf("query locked pick: %w", err)
	}
	return pick, true, nil
}

func (s *SQLStore) Lock(ctx context.Context, room string, pick models.LockedPick) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin lock: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO locked_pick (room_slug, proposal_id, movie_id, locked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_slug) DO UPDATE
		SET proposal_id = excluded.proposal_id,
		    movie_id = excluded.movie_id,
		    locked_at = excluded.locked_at
	`, room, pick.ProposalID, pick.MovieID, pick.LockedAt)
	if err != nil {
		return fmt.Errorf("upsert locked pick: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO played_entry (room_slug, movie_id, locked_at)
		VALUES ($1, $2, $3)
	`, room, pick.MovieID, pick.LockedAt)
	if err != nil {
		return fmt.Errorf("insert played entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lock: %w", err)
	}
	return nil
}

func (s *SQLStore) ClearLocked(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM locked_pick`)
	if err != nil {
		return 0, fmt.Errorf("clear locked picks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear locked picks: %w", err)
	}
	return int(n), nil
}

func (s *SQLStore) ListPlayed(ctx context.Context, room string, limit int) ([]models.PlayedEntry, error) {
	query := `
		SELECT movie_id, locked_at
		FROM played_entry
		WHERE room_slug = $1
		ORDER BY id DESC
	`
	args := []any{room}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query played entries: %w", err)
	}
	defer rows.Close()

	played := []models.PlayedEntry{}
	for rows.Next() {
		var e models.PlayedEntry
		if err := rows.Scan(&e.MovieID, &e.LockedAt); err != nil {
			return nil, fmt.Errorf("scan played entry: %w", err)
		}
		played = append(played, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate played entries: %w", err)
	}
	return played, nil
}
