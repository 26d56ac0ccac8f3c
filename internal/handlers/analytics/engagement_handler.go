package analytics

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/store/analytics"
	"github.com/neo-social/neo_server/internal/utils"
)

type AnalyticsEngagementHandler struct {
	EngagementStore analytics.EngagementStore
	Logger          *log.Logger
}

func NewAnalyticsEngagementHandler(engagementStore analytics.EngagementStore, logger *log.Logger) *AnalyticsEngagementHandler {
	return &AnalyticsEngagementHandler{
		EngagementStore: engagementStore,
		Logger:          logger,
	}
}

func (aeh *AnalyticsEngagementHandler) HandlerGetVideoEngagementByID(w http.ResponseWriter, r *http.Request) {

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		aeh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	timeline, err := aeh.EngagementStore.GetVideoEngagementTimeline(videoID.String())
	if err != nil {
		aeh.Logger.Println("Error getting engagement timeline", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": timeline})
}
