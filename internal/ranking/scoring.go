package ranking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNegativeCounter means a candidate carried a negative engagement
	// counter. Counters are monotonic, so this is corrupt input.
	ErrNegativeCounter = errors.New("ranking: negative engagement counter")
)

// Weights is the scoring policy. Values are configuration, never baked
// into the algorithm.
type Weights struct {
	Like          float64
	Remix         float64
	RecencyBonus  float64
	RecencyWindow time.Duration
}

// DefaultWeights weighs remixes above likes to reward derivation, a
// deliberate product policy.
func DefaultWeights() Weights {
	return Weights{
		Like:          3,
		Remix:         5,
		RecencyBonus:  50,
		RecencyWindow: 24 * time.Hour,
	}
}

// Signals are the engagement inputs for a single video, supplied by the
// storage collaborator per call. RemixChildren counts direct children in
// the lineage graph only, never the full descendant count.
type Signals struct {
	VideoID       uuid.UUID
	AuthorID      uuid.UUID
	Likes         int
	RemixChildren int
	Views         int
	CreatedAt     time.Time
}

// Validate rejects corrupt counters before they reach scoring.
func (s Signals) Validate() error {
	if s.Likes < 0 || s.RemixChildren < 0 || s.Views < 0 {
		return ErrNegativeCounter
	}
	return nil
}

// Score is pure and deterministic: identical signals and the same now
// always produce the same value.
//
//	score = likes*W_LIKE + remixChildren*W_REMIX + bonus
//
// where bonus is RecencyBonus iff the video is younger than RecencyWindow.
func (w Weights) Score(s Signals, now time.Time) float64 {
	score := float64(s.Likes)*w.Like + float64(s.RemixChildren)*w.Remix
	if now.Sub(s.CreatedAt) < w.RecencyWindow {
		score += w.RecencyBonus
	}
	return score
}
