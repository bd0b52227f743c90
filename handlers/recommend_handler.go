package handlers

import (
	"net/http"

	"poirec-server/middleware"
	"poirec-server/search"
)

type RecommendHandler struct {
	orchestrator *search.Orchestrator
}

type RecommendRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Range     float64 `json:"range"`
}

func NewRecommendHandler(orchestrator *search.Orchestrator) *RecommendHandler {
	return &RecommendHandler{orchestrator: orchestrator}
}

// Recommend handles POST /recommend.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var input RecommendRequest
	if err := decodeBody(w, r, &input); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	pois, err := h.orchestrator.Recommend(r.Context(), search.RecommendRequest{
		UserID:    input.UserID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Range:     input.Range,
	})
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, pois)
}
