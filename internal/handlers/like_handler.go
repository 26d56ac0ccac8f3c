package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/middlewares"
	"github.com/neo-social/neo_server/internal/models"
	"github.com/neo-social/neo_server/internal/store"
	"github.com/neo-social/neo_server/internal/store/analytics"
	"github.com/neo-social/neo_server/internal/utils"
)

type LikeHandler struct {
	LikeStore       store.LikeStore
	VideoStore      store.VideoStore
	EngagementStore analytics.EngagementStore
	Logger          *log.Logger
}

func NewLikeHandler(likeStore store.LikeStore, videoStore store.VideoStore, engagementStore analytics.EngagementStore, logger *log.Logger) *LikeHandler {
	return &LikeHandler{
		LikeStore:       likeStore,
		VideoStore:      videoStore,
		EngagementStore: engagementStore,
		Logger:          logger,
	}
}

// HandlerToggleLike flips the viewer's like on a video and returns the new
// state plus the updated count.
func (lh *LikeHandler) HandlerToggleLike(w http.ResponseWriter, r *http.Request) {

	viewer, ok := middlewares.GetViewerFromContext(r)
	if !ok {
		lh.Logger.Println("No viewer found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		lh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if _, err := lh.VideoStore.GetVideoByID(videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
			return
		}
		lh.Logger.Println("Error getting video", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	liked, count, err := lh.LikeStore.ToggleLike(viewer, videoID)
	if err != nil {
		lh.Logger.Println("Error toggling like", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	if middlewares.Metrics.LikeTogglesTotal != nil {
		middlewares.Metrics.LikeTogglesTotal.Inc()
	}

	if lh.EngagementStore != nil {
		eventType := models.EngagementLike
		if !liked {
			eventType = models.EngagementUnlike
		}
		event := models.EngagementEvent{
			VideoID:    videoID,
			UserID:     viewer,
			EventType:  eventType,
			OccurredAt: time.Now(),
		}
		if err := lh.EngagementStore.RecordEvent(r.Context(), event); err != nil {
			lh.Logger.Println("Error recording like event", err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": utils.Envelope{
		"liked": liked,
		"count": count,
	}})
}
