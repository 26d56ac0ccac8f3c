package models

import (
	"time"

	"github.com/google/uuid"
)

// RemixEdge is a directed lineage edge from an original video to a remix
// derived from it. Edges are created atomically with the child video and
// never mutated afterwards.
type RemixEdge struct {
	Id                uuid.UUID `json:"id"`
	ParentVideoID     uuid.UUID `json:"parent_video_id"`
	ChildVideoID      uuid.UUID `json:"child_video_id"`
	RemixType         string    `json:"remix_type"`
	RoyaltyPercentage float64   `json:"royalty_percentage"`
	Created_At        time.Time `json:"created_at"`
}
