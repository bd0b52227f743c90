package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"poirec-server/logging"
	"poirec-server/metrics"
	"poirec-server/models"
	"poirec-server/utils/errors"
)

var ErrRecommenderUnavailable = errors.NewAPIError("RECOMMENDER_UNAVAILABLE", "Recommendation service temporarily unavailable", http.StatusServiceUnavailable)

// RecommenderOptions configures HTTPRecommender.
type RecommenderOptions struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
	HTTPClient       *http.Client
}

// HTTPRecommender ranks candidates by posting them to
// {BaseURL}/recommend/{userID}. Calls go through a circuit breaker that
// opens after FailureThreshold consecutive failures.
type HTTPRecommender struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[[]models.POI]
}

func NewHTTPRecommender(opts RecommenderOptions) *HTTPRecommender {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	threshold := opts.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	const name = "recommender"
	cb := gobreaker.NewCircuitBreaker[[]models.POI](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation and 4xx replies say nothing about the
			// recommender's health.
			var se *statusError
			return err == nil ||
				stderrors.Is(err, context.Canceled) ||
				(stderrors.As(err, &se) && se.status < http.StatusInternalServerError)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return &HTTPRecommender{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		client:  client,
		cb:      cb,
	}
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("recommender returned %d: %s", e.status, e.body)
}

// Recommend returns the recommender's ordering of candidates.
func (r *HTTPRecommender) Recommend(ctx context.Context, userID string, candidates []models.POI) ([]models.POI, error) {
	start := time.Now()
	ranked, err := r.cb.Execute(func() ([]models.POI, error) {
		return r.call(ctx, userID, candidates)
	})

	outcome := "ok"
	switch {
	case stderrors.Is(err, gobreaker.ErrOpenState), stderrors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
		err = fmt.Errorf("%w: %w", ErrRecommenderUnavailable, err)
	case err != nil:
		outcome = "error"
	}
	metrics.RecordRecommenderCall(outcome, len(candidates), time.Since(start))
	return ranked, err
}

func (r *HTTPRecommender) call(ctx context.Context, userID string, candidates []models.POI) ([]models.POI, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	body, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("encode candidates: %w", err)
	}

	endpoint := r.baseURL + "/recommend/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call recommender: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(snippet))}
	}

	var ranked []models.POI
	if err := json.NewDecoder(resp.Body).Decode(&ranked); err != nil {
		return nil, fmt.Errorf("decode recommender response: %w", err)
	}
	return ranked, nil
}

// PassthroughRecommender returns the candidates in the order given. It is
// used when no recommender is configured.
type PassthroughRecommender struct{}

func (PassthroughRecommender) Recommend(_ context.Context, _ string, candidates []models.POI) ([]models.POI, error) {
	return candidates, nil
}
