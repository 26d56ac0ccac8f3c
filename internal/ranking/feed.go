package ranking

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeForYou    Mode = "foryou"
	ModeFollowing Mode = "following"
)

var (
	ErrInvalidMode = errors.New("ranking: invalid feed mode")
	ErrInvalidPage = errors.New("ranking: invalid pagination parameters")
)

// ParseMode validates a feed mode string. An empty mode defaults to forYou.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeForYou, "":
		return ModeForYou, nil
	case ModeFollowing:
		return ModeFollowing, nil
	default:
		return "", ErrInvalidMode
	}
}

// RankedVideo is a candidate with its computed score.
type RankedVideo struct {
	Signals
	Score float64
}

// Page is one offset/limit window of the ranked feed.
//
// FollowsNobody marks the explicitly empty page returned when a following
// feed is requested by a viewer who follows nobody. Callers must render it
// distinctly from an empty catalog; it is never a fallback to the global
// feed.
type Page struct {
	Items         []RankedVideo
	Skip          int
	Limit         int
	Total         int
	FollowsNobody bool
}

// Assemble ranks the candidates and returns one page.
//
// Ranking is recomputed from current counters on every call; no ordering
// state is carried between calls. Determinism comes from the full sort
// key: score desc, createdAt desc, video id asc. Concatenated consecutive
// pages over unchanged data therefore equal one larger page, with no
// duplicates or gaps.
func Assemble(w Weights, candidates []Signals, mode Mode, followed map[uuid.UUID]struct{}, skip, limit int, now time.Time) (Page, error) {
	if skip < 0 || limit <= 0 {
		return Page{}, ErrInvalidPage
	}

	if mode != ModeForYou && mode != ModeFollowing {
		return Page{}, ErrInvalidMode
	}

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return Page{}, err
		}
	}

	if mode == ModeFollowing {
		if len(followed) == 0 {
			return Page{Skip: skip, Limit: limit, FollowsNobody: true}, nil
		}
		filtered := make([]Signals, 0, len(candidates))
		for _, c := range candidates {
			if _, ok := followed[c.AuthorID]; ok {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	ranked := make([]RankedVideo, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, RankedVideo{Signals: c, Score: w.Score(c, now)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
			return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
		}
		return strings.Compare(ranked[i].VideoID.String(), ranked[j].VideoID.String()) < 0
	})

	page := Page{Skip: skip, Limit: limit, Total: len(ranked)}
	if skip >= len(ranked) {
		return page, nil
	}
	end := skip + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	page.Items = ranked[skip:end]
	return page, nil
}
