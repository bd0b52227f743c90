package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poirec-server/models"
	"poirec-server/store/storetest"
	"poirec-server/utils/errors"
)

func TestHTTPRecommender(t *testing.T) {
	var gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")

		var candidates []models.POI
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &candidates))
		slices.Reverse(candidates)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidates)
	}))
	defer server.Close()

	rec := NewHTTPRecommender(RecommenderOptions{BaseURL: server.URL + "/", Timeout: time.Second})
	candidates := storetest.POIs()

	ranked, err := rec.Recommend(context.Background(), storetest.TestUserID, candidates)
	require.NoError(t, err)

	assert.Equal(t, "/recommend/"+storetest.TestUserID, gotPath)
	assert.Equal(t, "application/json", gotContentType)
	require.Len(t, ranked, 3)
	assert.Equal(t, "poi-europa", ranked[0].ID)
	assert.Equal(t, "poi-absalon", ranked[2].ID)
}

func TestHTTPRecommenderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	rec := NewHTTPRecommender(RecommenderOptions{BaseURL: server.URL, Timeout: time.Second})
	_, err := rec.Recommend(context.Background(), "u", storetest.POIs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.NotErrorIs(t, err, ErrRecommenderUnavailable)
}

func TestHTTPRecommenderTimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	rec := NewHTTPRecommender(RecommenderOptions{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := rec.Recommend(context.Background(), "u", storetest.POIs())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusServiceUnavailable, errors.FromError(err).Status)
}

func TestHTTPRecommenderCircuitOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	rec := NewHTTPRecommender(RecommenderOptions{
		BaseURL:          server.URL,
		Timeout:          time.Second,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	})

	for range 2 {
		_, err := rec.Recommend(context.Background(), "u", storetest.POIs())
		require.Error(t, err)
	}
	_, err := rec.Recommend(context.Background(), "u", storetest.POIs())
	assert.ErrorIs(t, err, ErrRecommenderUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPRecommenderClientErrorsDoNotTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	rec := NewHTTPRecommender(RecommenderOptions{BaseURL: server.URL, FailureThreshold: 1, OpenTimeout: time.Minute})
	for range 3 {
		_, err := rec.Recommend(context.Background(), "u", storetest.POIs())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrRecommenderUnavailable)
	}
}

func TestPassthroughRecommender(t *testing.T) {
	candidates := storetest.POIs()
	got, err := PassthroughRecommender{}.Recommend(context.Background(), "u", candidates)
	require.NoError(t, err)
	assert.Equal(t, candidates, got)
}
