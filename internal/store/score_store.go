package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/neo-social/neo_server/internal/models"
)

// RedisScoreStore caches ScoreSnapshots computed during feed assembly.
// Snapshots are a point-in-time read model for dashboards and debugging,
// never a source of truth for counters or ordering; every feed call
// recomputes from current counters.
type RedisScoreStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisScoreStore(client *redis.Client, ttl time.Duration) *RedisScoreStore {
	return &RedisScoreStore{client: client, ttl: ttl}
}

type ScoreStore interface {
	SaveSnapshots(ctx context.Context, snapshots []models.ScoreSnapshot) error
	GetSnapshot(ctx context.Context, videoID uuid.UUID) (*models.ScoreSnapshot, error)
}

func scoreKey(videoID uuid.UUID) string {
	return "score:" + videoID.String()
}

func (rs *RedisScoreStore) SaveSnapshots(ctx context.Context, snapshots []models.ScoreSnapshot) error {
	pipe := rs.client.Pipeline()
	for _, snap := range snapshots {
		payload, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal score snapshot: %w", err)
		}
		pipe.Set(ctx, scoreKey(snap.VideoID), payload, rs.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save score snapshots: %w", err)
	}
	return nil
}

func (rs *RedisScoreStore) GetSnapshot(ctx context.Context, videoID uuid.UUID) (*models.ScoreSnapshot, error) {
	payload, err := rs.client.Get(ctx, scoreKey(videoID)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get score snapshot: %w", err)
	}

	var snap models.ScoreSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score snapshot: %w", err)
	}
	return &snap, nil
}
