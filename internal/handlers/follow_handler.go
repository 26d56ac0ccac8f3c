package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/middlewares"
	"github.com/neo-social/neo_server/internal/store"
	"github.com/neo-social/neo_server/internal/utils"
)

type FollowHandler struct {
	FollowStore store.FollowStore
	Logger      *log.Logger
}

func NewFollowHandler(followStore store.FollowStore, logger *log.Logger) *FollowHandler {
	return &FollowHandler{
		FollowStore: followStore,
		Logger:      logger,
	}
}

func (flh *FollowHandler) HandlerToggleFollow(w http.ResponseWriter, r *http.Request) {

	viewer, ok := middlewares.GetViewerFromContext(r)
	if !ok {
		flh.Logger.Println("No viewer found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		flh.Logger.Println("Error parsing user id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if targetID == viewer {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Cannot follow self"})
		return
	}

	following, count, err := flh.FollowStore.ToggleFollow(viewer, targetID)
	if err != nil {
		flh.Logger.Println("Error toggling follow", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": utils.Envelope{
		"following":       following,
		"followers_count": count,
	}})
}
