package models

import (
	"time"

	"github.com/google/uuid"
)

type EngagementEventType string

const (
	EngagementLike   EngagementEventType = "like"
	EngagementUnlike EngagementEventType = "unlike"
	EngagementView   EngagementEventType = "view"
	EngagementRemix  EngagementEventType = "remix"
)

type ClickhouseEngagementEvent struct {
	VideoID    string    `ch:"video_id"`
	UserID     string    `ch:"user_id"`
	EventType  string    `ch:"event_type"`
	OccurredAt time.Time `ch:"occurred_at"`
}

// EngagementEvent is the application-level shape before serialization.
type EngagementEvent struct {
	VideoID    uuid.UUID           `json:"video_id"`
	UserID     uuid.UUID           `json:"user_id"`
	EventType  EngagementEventType `json:"event_type"`
	OccurredAt time.Time           `json:"occurred_at"`
}
