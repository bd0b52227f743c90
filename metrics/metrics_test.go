package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/poi/{id}", "404"))

	RecordHTTPRequest("GET", "/poi/{id}", http.StatusNotFound, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/poi/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestRecordSearch(t *testing.T) {
	okBefore := testutil.ToFloat64(SearchRequests.WithLabelValues("pois", "ok"))
	errBefore := testutil.ToFloat64(SearchRequests.WithLabelValues("pois", "error"))

	RecordSearch("pois", 3, nil)
	RecordSearch("pois", 0, errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(SearchRequests.WithLabelValues("pois", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(SearchRequests.WithLabelValues("pois", "error")))
}

func TestCircuitBreakerStateGauge(t *testing.T) {
	CircuitBreakerState.WithLabelValues("recommender").Set(2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("recommender")))
}
