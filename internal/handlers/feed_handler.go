package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/middlewares"
	"github.com/neo-social/neo_server/internal/models"
	"github.com/neo-social/neo_server/internal/ranking"
	"github.com/neo-social/neo_server/internal/store"
	"github.com/neo-social/neo_server/internal/utils"
)

type FeedHandler struct {
	VideoStore  store.VideoStore
	FollowStore store.FollowStore
	ScoreStore  store.ScoreStore
	Weights     ranking.Weights
	Logger      *log.Logger
}

func NewFeedHandler(videoStore store.VideoStore, followStore store.FollowStore, scoreStore store.ScoreStore, weights ranking.Weights, logger *log.Logger) *FeedHandler {
	return &FeedHandler{
		VideoStore:  videoStore,
		FollowStore: followStore,
		ScoreStore:  scoreStore,
		Weights:     weights,
		Logger:      logger,
	}
}

// FeedItem is the API shape of one ranked feed entry.
type FeedItem struct {
	ID            uuid.UUID `json:"id"`
	Score         float64   `json:"score"`
	Author        uuid.UUID `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	Title         string    `json:"title"`
	VideoURL      string    `json:"video_url"`
	Likes         int       `json:"likes"`
	RemixChildren int       `json:"remix_children"`
	Views         int       `json:"views"`
	IsRemix       bool      `json:"is_remix"`
}

func (fh *FeedHandler) HandlerGetFeed(w http.ResponseWriter, r *http.Request) {

	mode, err := ranking.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		fh.Logger.Printf("Error: invalid mode parameter '%s'", r.URL.Query().Get("mode"))
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	skip := 0
	if skipStr := r.URL.Query().Get("skip"); skipStr != "" {
		skip, err = strconv.Atoi(skipStr)
		if err != nil || skip < 0 {
			fh.Logger.Printf("Error: invalid skip parameter '%s'", skipStr)
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
			return
		}
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			fh.Logger.Printf("Error: invalid limit parameter '%s'", limitStr)
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
			return
		}
	}

	viewer, hasViewer := middlewares.GetViewerFromContext(r)
	if mode == ranking.ModeFollowing && !hasViewer {
		fh.Logger.Println("Error: following feed requested without a viewer")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Viewer required for following feed"})
		return
	}

	candidates, err := fh.VideoStore.GetFeedCandidates()
	if err != nil {
		fh.Logger.Printf("Error getting feed candidates: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	signals := make([]ranking.Signals, 0, len(candidates))
	byID := make(map[uuid.UUID]store.VideoWithCounts, len(candidates))
	for _, c := range candidates {
		signals = append(signals, ranking.Signals{
			VideoID:       c.ID,
			AuthorID:      c.UserID,
			Likes:         c.LikeCount,
			RemixChildren: c.RemixCount,
			Views:         c.ViewCount,
			CreatedAt:     c.Created_At,
		})
		byID[c.ID] = c
	}

	var followed map[uuid.UUID]struct{}
	if mode == ranking.ModeFollowing {
		followedIDs, err := fh.FollowStore.GetFollowedIDs(viewer)
		if err != nil {
			fh.Logger.Printf("Error getting follow set: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
			return
		}
		followed = make(map[uuid.UUID]struct{}, len(followedIDs))
		for _, id := range followedIDs {
			followed[id] = struct{}{}
		}
	}

	now := time.Now()
	start := time.Now()
	page, err := ranking.Assemble(fh.Weights, signals, mode, followed, skip, limit, now)
	if middlewares.Metrics.FeedAssembleDuration != nil {
		middlewares.Metrics.FeedAssembleDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		switch {
		case errors.Is(err, ranking.ErrInvalidPage), errors.Is(err, ranking.ErrInvalidMode), errors.Is(err, ranking.ErrNegativeCounter):
			fh.Logger.Printf("Error assembling feed: %v", err)
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		default:
			fh.Logger.Printf("Error assembling feed: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		}
		return
	}

	items := make([]FeedItem, 0, len(page.Items))
	snapshots := make([]models.ScoreSnapshot, 0, len(page.Items))
	for _, ranked := range page.Items {
		video := byID[ranked.VideoID]
		items = append(items, FeedItem{
			ID:            ranked.VideoID,
			Score:         ranked.Score,
			Author:        ranked.AuthorID,
			CreatedAt:     ranked.CreatedAt,
			Title:         video.Title,
			VideoURL:      video.VideoURL,
			Likes:         ranked.Likes,
			RemixChildren: ranked.RemixChildren,
			Views:         ranked.Views,
			IsRemix:       video.IsRemix,
		})
		snapshots = append(snapshots, models.ScoreSnapshot{
			VideoID:    ranked.VideoID,
			Score:      ranked.Score,
			ComputedAt: now,
		})
	}

	// Snapshot writes are a best-effort read model, never load-bearing.
	if fh.ScoreStore != nil && len(snapshots) > 0 {
		if err := fh.ScoreStore.SaveSnapshots(r.Context(), snapshots); err != nil {
			fh.Logger.Printf("Error caching score snapshots: %v", err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": utils.Envelope{
		"items":          items,
		"skip":           page.Skip,
		"limit":          page.Limit,
		"total":          page.Total,
		"follows_nobody": page.FollowsNobody,
	}})
}
