package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(201))
	assert.Equal(t, "429", classifyStatus(429))
	assert.Equal(t, "4xx", classifyStatus(422))
	assert.Equal(t, "5xx", classifyStatus(503))
	assert.Equal(t, "unknown", classifyStatus(0))
}

func TestRecordOffer(t *testing.T) {
	before := testutil.ToFloat64(offersTotal.WithLabelValues("create", "ok"))

	RecordOffer("create", "ok")

	assert.Equal(t, before+1, testutil.ToFloat64(offersTotal.WithLabelValues("create", "ok")))
}

func TestMetricsHandler(t *testing.T) {
	RecordRequest(http.MethodPost, "/sale/product-offers", 201, 0)
	rec := httptest.NewRecorder()

	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "allegro_request_duration_seconds")
}

func TestUpdateMetrics_Snapshot(t *testing.T) {
	var m UpdateMetrics
	m.ProcessedCount.Add(2)
	m.ErroredCount.Add(1)

	assert.Equal(t, map[string]int32{"processed": 2, "uploaded": 0, "errored": 1, "corrected": 0}, m.Snapshot())
}
