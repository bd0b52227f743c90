package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"poirec-server/middleware"
	"poirec-server/models"
	"poirec-server/search"
	"poirec-server/services"
)

type POIHandler struct {
	poiService    *services.PoiService
	categoryLimit int
}

func NewPOIHandler(poiService *services.PoiService, categoryLimit int) *POIHandler {
	if categoryLimit <= 0 {
		categoryLimit = search.DefaultLimit
	}
	return &POIHandler{poiService: poiService, categoryLimit: categoryLimit}
}

// SearchPOIs handles GET /poi/search. category, notCategory and prices may
// be repeated.
func (h *POIHandler) SearchPOIs(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchQuery(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	pois, err := h.poiService.Search(r.Context(), query)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, pois)
}

func parseSearchQuery(r *http.Request) (search.Query, error) {
	q := r.URL.Query()

	lat, err := optionalFloat(q, "latitude")
	if err != nil {
		return search.Query{}, err
	}
	lon, err := optionalFloat(q, "longitude")
	if err != nil {
		return search.Query{}, err
	}
	dist, err := optionalFloat(q, "distance")
	if err != nil {
		return search.Query{}, err
	}
	limit, err := optionalInt(q, "limit")
	if err != nil {
		return search.Query{}, err
	}

	var prices []models.PriceTier
	for _, raw := range q["prices"] {
		tier, err := models.ParsePriceTier(raw)
		if err != nil {
			return search.Query{}, invalidParam("prices", err)
		}
		prices = append(prices, tier)
	}

	return search.Query{
		Name:          optionalString(q, "name"),
		Categories:    search.FilterFromSlice(q["category"]),
		NotCategories: search.FilterFromSlice(q["notCategory"]),
		Latitude:      lat,
		Longitude:     lon,
		Distance:      dist,
		Prices:        search.FilterFromSlice(prices),
		Limit:         limit,
	}, nil
}

// SuggestPOINames handles GET /poi/search/name/{query}.
func (h *POIHandler) SuggestPOINames(w http.ResponseWriter, r *http.Request) {
	names, err := h.poiService.SuggestNames(r.Context(), mux.Vars(r)["query"], 0)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, names)
}

// SearchCategoryNames handles GET /poi/category.
func (h *POIHandler) SearchCategoryNames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := optionalInt(q, "limit")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	names, err := h.poiService.SearchCategoryNames(r.Context(), optionalString(q, "query"), limit.OrElse(h.categoryLimit))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, names)
}

func (h *POIHandler) GetPOI(w http.ResponseWriter, r *http.Request) {
	poi, err := h.poiService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, poi)
}

func (h *POIHandler) CreatePOI(w http.ResponseWriter, r *http.Request) {
	var input services.PoiInput
	if err := decodeBody(w, r, &input); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	poi, err := h.poiService.Create(r.Context(), input)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, poi)
}

func (h *POIHandler) EditPOI(w http.ResponseWriter, r *http.Request) {
	var input services.PoiInput
	if err := decodeBody(w, r, &input); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	poi, err := h.poiService.Edit(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, poi)
}

func (h *POIHandler) DeletePOI(w http.ResponseWriter, r *http.Request) {
	if err := h.poiService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
