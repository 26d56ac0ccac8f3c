package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/lineage"
	"github.com/neo-social/neo_server/internal/utils"
)

type RoyaltyHandler struct {
	Distributor *lineage.Distributor
	Logger      *log.Logger
}

func NewRoyaltyHandler(distributor *lineage.Distributor, logger *log.Logger) *RoyaltyHandler {
	return &RoyaltyHandler{
		Distributor: distributor,
		Logger:      logger,
	}
}

// HandlerGetRoyaltyShares returns the compounded share owed to each
// ancestor of a video plus the remainder retained by its own owner. A
// root video yields an empty share map and a 100% remainder.
func (ryh *RoyaltyHandler) HandlerGetRoyaltyShares(w http.ResponseWriter, r *http.Request) {

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		ryh.Logger.Println("Error parsing video id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	shares, err := ryh.Distributor.EffectiveShares(videoID)
	if err != nil {
		switch {
		case errors.Is(err, lineage.ErrUnknownVideo):
			utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		case errors.Is(err, lineage.ErrLineageTooDeep):
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.Envelope{"message": "Lineage too deep"})
		default:
			ryh.Logger.Println("Error computing royalty shares", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		}
		return
	}

	remainder := 100.0
	sharesByID := make(map[string]float64, len(shares))
	for ancestorID, pct := range shares {
		sharesByID[ancestorID.String()] = pct
		remainder -= pct
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": utils.Envelope{
		"video_id":        videoID,
		"shares":          sharesByID,
		"owner_remainder": remainder,
	}})
}
