package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreSnapshot is a point-in-time read model of a computed rank score.
// It is never a source of truth for counters.
type ScoreSnapshot struct {
	VideoID    uuid.UUID `json:"video_id"`
	Score      float64   `json:"score"`
	ComputedAt time.Time `json:"computed_at"`
}
