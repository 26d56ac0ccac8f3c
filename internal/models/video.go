package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is immutable after creation except the engagement counters,
// which are adjusted by like/view/remix events.
type Video struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	ViewCount       int       `json:"view_count"`
	IsRemix         bool      `json:"is_remix"`
	AIPromptUsed    string    `json:"ai_prompt_used,omitempty"`
	AIModelUsed     string    `json:"ai_model_used,omitempty"`
	Created_At      time.Time `json:"created_at"`
}
