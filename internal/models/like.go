package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is unique per (user, video) pair. Existence is binary, toggled by
// the user action, never counted twice.
type Like struct {
	UserID     uuid.UUID `json:"user_id"`
	VideoID    uuid.UUID `json:"video_id"`
	Created_At time.Time `json:"created_at"`
}
