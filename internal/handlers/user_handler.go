package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/neo-social/neo_server/internal/models"
	"github.com/neo-social/neo_server/internal/store"
	"github.com/neo-social/neo_server/internal/utils"
)

type UserHandler struct {
	UserStore store.UserStore
	Logger    *log.Logger
}

func NewUserHandler(userStore store.UserStore, logger *log.Logger) *UserHandler {
	return &UserHandler{
		UserStore: userStore,
		Logger:    logger,
	}
}

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

func (uh *UserHandler) HandlerCreateUser(w http.ResponseWriter, r *http.Request) {

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uh.Logger.Println("Error decoding create user request", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if req.Username == "" || req.Email == "" {
		uh.Logger.Println("Error: username and email are required")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	user := &models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	}

	if err := uh.UserStore.CreateUser(user); err != nil {
		uh.Logger.Println("Error creating user", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": user})
}

func (uh *UserHandler) HandlerGetUserByID(w http.ResponseWriter, r *http.Request) {

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		uh.Logger.Println("Error parsing user id", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	user, err := uh.UserStore.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "User not found"})
			return
		}
		uh.Logger.Println("Error getting user", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": user})
}
