package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/lineage"
	"github.com/neo-social/neo_server/internal/middlewares"
	"github.com/neo-social/neo_server/internal/models"
	"github.com/neo-social/neo_server/internal/services"
	"github.com/neo-social/neo_server/internal/store"
	"github.com/neo-social/neo_server/internal/store/analytics"
	"github.com/neo-social/neo_server/internal/utils"
)

type RemixHandler struct {
	VideoStore        store.VideoStore
	LineageStore      store.LineageStore
	EngagementStore   analytics.EngagementStore
	Graph             *lineage.Graph
	Generator         *services.RemixGenerator
	DefaultRoyaltyPct float64
	Logger            *log.Logger
}

func NewRemixHandler(videoStore store.VideoStore, lineageStore store.LineageStore, engagementStore analytics.EngagementStore, graph *lineage.Graph, generator *services.RemixGenerator, defaultRoyaltyPct float64, logger *log.Logger) *RemixHandler {
	return &RemixHandler{
		VideoStore:        videoStore,
		LineageStore:      lineageStore,
		EngagementStore:   engagementStore,
		Graph:             graph,
		Generator:         generator,
		DefaultRoyaltyPct: defaultRoyaltyPct,
		Logger:            logger,
	}
}

type createRemixRequest struct {
	Prompt            string   `json:"prompt"`
	Style             string   `json:"style"`
	RoyaltyPercentage *float64 `json:"royalty_percentage"`
}

type createEdgeRequest struct {
	ParentVideoID     uuid.UUID `json:"parent_video_id"`
	ChildVideoID      uuid.UUID `json:"child_video_id"`
	RoyaltyPercentage float64   `json:"royalty_percentage"`
}

// writeLineageError maps lineage sentinels to the API error contract.
func writeLineageError(w http.ResponseWriter, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, lineage.ErrRoyaltyOutOfRange):
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Royalty percentage out of range"})
	case errors.Is(err, lineage.ErrUnknownVideo):
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
	case errors.Is(err, lineage.ErrDuplicateParent):
		utils.WriteJSON(w, http.StatusConflict, utils.Envelope{"message": "Child already has a parent"})
	case errors.Is(err, lineage.ErrCycleDetected):
		utils.WriteJSON(w, http.StatusConflict, utils.Envelope{"message": "Edge would create a cycle"})
	case errors.Is(err, lineage.ErrLineageTooDeep):
		utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.Envelope{"message": "Lineage too deep"})
	default:
		logger.Println("Unexpected lineage error", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
	}
}

// HandlerCreateRemix derives a new video from an existing one: calls the
// AI generator collaborator, then creates the child video and its lineage
// edge atomically. The in-memory graph validates the edge first; if the
// store rejects the transaction the graph insert is compensated.
func (rh *RemixHandler) HandlerCreateRemix(w http.ResponseWriter, r *http.Request) {

	viewer, ok := middlewares.GetViewerFromContext(r)
	if !ok {
		rh.Logger.Println("No viewer found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	parentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		rh.Logger.Println("Error parsing parent video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	var req createRemixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rh.Logger.Println("Error decoding remix request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	parent, err := rh.VideoStore.GetVideoByID(parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Original video not found"})
			return
		}
		rh.Logger.Println("Error getting parent video", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	royaltyPct := rh.DefaultRoyaltyPct
	if req.RoyaltyPercentage != nil {
		royaltyPct = *req.RoyaltyPercentage
	}

	remixURL, err := rh.Generator.GenerateRemix(r.Context(), parent.VideoURL, req.Prompt)
	if err != nil {
		rh.Logger.Println("Error generating remix", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Remix generation failed"})
		return
	}

	style := req.Style
	if style == "" {
		style = "remix"
	}

	child := &models.Video{
		ID:           uuid.New(),
		UserID:       viewer,
		Title:        fmt.Sprintf("[%s] %s", strings.ToUpper(style), parent.Title),
		Description:  fmt.Sprintf("AI remix with prompt: %s", req.Prompt),
		VideoURL:     remixURL,
		IsRemix:      true,
		AIPromptUsed: req.Prompt,
		AIModelUsed:  rh.Generator.ModelName,
	}

	edge := &models.RemixEdge{
		Id:                uuid.New(),
		ParentVideoID:     parentID,
		ChildVideoID:      child.ID,
		RemixType:         "ai_style_transfer",
		RoyaltyPercentage: royaltyPct,
	}

	rh.Graph.AddVideo(child.ID)
	if err := rh.Graph.AddEdge(parentID, child.ID, royaltyPct, time.Now()); err != nil {
		writeLineageError(w, rh.Logger, err)
		return
	}

	if err := rh.VideoStore.CreateRemix(child, edge); err != nil {
		rh.Graph.DeleteEdge(child.ID)
		rh.Logger.Println("Error persisting remix", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	if middlewares.Metrics.RemixEdgesTotal != nil {
		middlewares.Metrics.RemixEdgesTotal.Inc()
	}

	if rh.EngagementStore != nil {
		event := models.EngagementEvent{
			VideoID:    parentID,
			UserID:     viewer,
			EventType:  models.EngagementRemix,
			OccurredAt: time.Now(),
		}
		if err := rh.EngagementStore.RecordEvent(r.Context(), event); err != nil {
			rh.Logger.Println("Error recording remix event", err)
		}
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": utils.Envelope{
		"video": child,
		"edge":  edge,
	}})
}

// HandlerCreateEdge inserts a raw lineage edge between two existing
// videos. The graph enforces the single-parent and no-cycle invariants;
// exactly one of two racing inserts for the same child succeeds.
func (rh *RemixHandler) HandlerCreateEdge(w http.ResponseWriter, r *http.Request) {

	var req createEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rh.Logger.Println("Error decoding edge request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if req.ParentVideoID == uuid.Nil || req.ChildVideoID == uuid.Nil {
		rh.Logger.Println("Error: parent_video_id and child_video_id are required")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if err := rh.Graph.AddEdge(req.ParentVideoID, req.ChildVideoID, req.RoyaltyPercentage, time.Now()); err != nil {
		writeLineageError(w, rh.Logger, err)
		return
	}

	edge := &models.RemixEdge{
		Id:                uuid.New(),
		ParentVideoID:     req.ParentVideoID,
		ChildVideoID:      req.ChildVideoID,
		RemixType:         "manual",
		RoyaltyPercentage: req.RoyaltyPercentage,
	}

	if err := rh.LineageStore.InsertEdge(edge); err != nil {
		rh.Graph.DeleteEdge(req.ChildVideoID)
		rh.Logger.Println("Error persisting lineage edge", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	if middlewares.Metrics.RemixEdgesTotal != nil {
		middlewares.Metrics.RemixEdgesTotal.Inc()
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": edge})
}
