// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/danielhkuo/dailyfictions/models"
)

// RedisVoteLedger keeps one set of session ids per proposal. SADD and SREM
// report whether the member changed, which makes add/remove atomic per pair.
//
// Keys:
//
//	{prefix}votes:{proposal_id}   set of session ids
//	{prefix}votes:index           set of proposal ids that ever received a vote
type RedisVoteLedger struct {
	client *redis.Client
	prefix string
}

func NewRedisVoteLedger(client *redis.Client, prefix string) *RedisVoteLedger {
	return &RedisVoteLedger{client: client, prefix: prefix}
}

func (r *RedisVoteLedger) votesKey(proposalID string) string {
	return r.prefix + "votes:" + proposalID
}

func (r *RedisVoteLedger) indexKey() string {
	return r.prefix + "votes:index"
}

func (r *RedisVoteLedger) HasVoted(ctx context.Context, proposalID, sessionID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.votesKey(proposalID), sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember: %w", err)
	}
	return ok, nil
}

func (r *RedisVoteLedger) AddVote(ctx context.Context, proposalID, sessionID string) (bool, error) {
	var added *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, r.votesKey(proposalID), sessionID)
		pipe.SAdd(ctx, r.indexKey(), proposalID)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis sadd: %w", err)
	}
	return added.Val() == 1, nil
}

func (r *RedisVoteLedger) RemoveVote(ctx context.Context, proposalID, sessionID string) (bool, error) {
	n, err := r.client.SRem(ctx, r.votesKey(proposalID), sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("redis srem: %w", err)
	}
	return n == 1, nil
}

func (r *RedisVoteLedger) CountVotes(ctx context.Context, proposalID string) (int, error) {
	n, err := r.client.SCard(ctx, r.votesKey(proposalID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scard: %w", err)
	}
	return int(n), nil
}

func (r *RedisVoteLedger) ListVotes(ctx context.Context) ([]models.Vote, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers index: %w", err)
	}
	if len(ids) == 0 {
		return []models.Vote{}, nil
	}

	cmds := make([]*redis.StringSliceCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.SMembers(ctx, r.votesKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis smembers votes: %w", err)
	}

	votes := []models.Vote{}
	for i, cmd := range cmds {
		for _, session := range cmd.Val() {
			votes = append(votes, models.Vote{ProposalID: ids[i], SessionID: session})
		}
	}
	return votes, nil
}
