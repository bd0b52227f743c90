package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"poirec-server/middleware"
	"poirec-server/models"
	"poirec-server/services"
	"poirec-server/utils/errors"
)

type UserHandler struct {
	userService    *services.UserService
	checkinService *services.CheckinService
}

type CheckinsResponse struct {
	Checkins []models.Checkin `json:"checkins"`
	Count    int              `json:"count"`
}

func NewUserHandler(userService *services.UserService, checkinService *services.CheckinService) *UserHandler {
	return &UserHandler{userService: userService, checkinService: checkinService}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ListCheckins(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, r, errors.ErrUnauthorized)
		return
	}

	checkins, err := h.checkinService.ListForUser(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, CheckinsResponse{Checkins: checkins, Count: len(checkins)})
}

func (h *UserHandler) CreateCheckin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, r, errors.ErrUnauthorized)
		return
	}

	var input struct {
		POIID string `json:"poi_id" validate:"required"`
	}
	if err := decodeBody(w, r, &input); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	checkin, err := h.checkinService.Create(r.Context(), userID, input.POIID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, checkin)
}

func (h *UserHandler) DeleteCheckin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, r, errors.ErrUnauthorized)
		return
	}

	if err := h.checkinService.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
