package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/neo-social/neo_server/internal/models"
)

type ClickhouseEngagementStore struct {
	conn driver.Conn
}

func NewClickhouseEngagementStore(conn driver.Conn) *ClickhouseEngagementStore {
	return &ClickhouseEngagementStore{conn: conn}
}

type EngagementTimelineEntry struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EngagementStore interface {
	RecordEvent(ctx context.Context, event models.EngagementEvent) error
	GetVideoEngagementTimeline(videoID string) ([]EngagementTimelineEntry, error)
}

func (c *ClickhouseEngagementStore) RecordEvent(ctx context.Context, event models.EngagementEvent) error {
	query := `
		INSERT INTO default.engagement_events (video_id, user_id, event_type, occurred_at)
		VALUES (?, ?, ?, ?)
	`

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	err := c.conn.Exec(ctx, query,
		event.VideoID.String(), event.UserID.String(), string(event.EventType), occurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record engagement event: %w", err)
	}
	return nil
}

func (c *ClickhouseEngagementStore) GetVideoEngagementTimeline(videoID string) ([]EngagementTimelineEntry, error) {

	query := `
		SELECT event_type, user_id, occurred_at
		FROM default.engagement_events
		WHERE video_id = ?
		ORDER BY occurred_at DESC
	`

	rows, err := c.conn.Query(context.Background(), query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get engagement timeline: %w", err)
	}
	defer rows.Close()

	var entries []EngagementTimelineEntry

	for rows.Next() {
		var entry EngagementTimelineEntry

		err := rows.Scan(
			&entry.EventType,
			&entry.UserID,
			&entry.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan engagement event: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil

}
