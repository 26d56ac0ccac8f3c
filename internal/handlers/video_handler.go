package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/lineage"
	"github.com/neo-social/neo_server/internal/middlewares"
	"github.com/neo-social/neo_server/internal/models"
	"github.com/neo-social/neo_server/internal/store"
	"github.com/neo-social/neo_server/internal/store/analytics"
	"github.com/neo-social/neo_server/internal/utils"
)

type VideoHandler struct {
	VideoStore      store.VideoStore
	EngagementStore analytics.EngagementStore
	Graph           *lineage.Graph
	Logger          *log.Logger
}

func NewVideoHandler(videoStore store.VideoStore, engagementStore analytics.EngagementStore, graph *lineage.Graph, logger *log.Logger) *VideoHandler {
	return &VideoHandler{
		VideoStore:      videoStore,
		EngagementStore: engagementStore,
		Graph:           graph,
		Logger:          logger,
	}
}

type createVideoRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"`
	ThumbnailURL    string `json:"thumbnail_url"`
	DurationSeconds int    `json:"duration_seconds"`
}

// HandlerCreateVideo registers the metadata of an uploaded video. The blob
// itself lives with the external storage collaborator; we only receive its
// URL.
func (vh *VideoHandler) HandlerCreateVideo(w http.ResponseWriter, r *http.Request) {

	viewer, ok := middlewares.GetViewerFromContext(r)
	if !ok {
		vh.Logger.Println("No viewer found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	var req createVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		vh.Logger.Println("Error decoding create video request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if req.Title == "" || req.VideoURL == "" {
		vh.Logger.Println("Error: title and video_url are required")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	video := &models.Video{
		ID:              uuid.New(),
		UserID:          viewer,
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		IsRemix:         false,
	}

	if err := vh.VideoStore.CreateVideo(video); err != nil {
		vh.Logger.Println("Error creating video", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	vh.Graph.AddVideo(video.ID)

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": video})
}

func (vh *VideoHandler) HandlerGetVideoByID(w http.ResponseWriter, r *http.Request) {

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	video, err := vh.VideoStore.GetVideoByID(videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
			return
		}
		vh.Logger.Println("Error getting video", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": video})
}

// HandlerListVideos returns every video with its current counters,
// unranked. The feed endpoint is the ranked view over the same rows.
func (vh *VideoHandler) HandlerListVideos(w http.ResponseWriter, r *http.Request) {

	videos, err := vh.VideoStore.GetFeedCandidates()
	if err != nil {
		vh.Logger.Println("Error listing videos", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

// HandlerRecordView bumps the monotonic view counter and emits an
// engagement event for analytics.
func (vh *VideoHandler) HandlerRecordView(w http.ResponseWriter, r *http.Request) {

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		vh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if err := vh.VideoStore.IncrementViewCount(videoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
			return
		}
		vh.Logger.Println("Error incrementing view count", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	if vh.EngagementStore != nil {
		viewer, _ := middlewares.GetViewerFromContext(r)
		event := models.EngagementEvent{
			VideoID:    videoID,
			UserID:     viewer,
			EventType:  models.EngagementView,
			OccurredAt: time.Now(),
		}
		if err := vh.EngagementStore.RecordEvent(r.Context(), event); err != nil {
			vh.Logger.Println("Error recording view event", err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Success"})
}
