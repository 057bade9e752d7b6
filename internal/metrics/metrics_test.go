package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"asterisk-tts/internal/config"
	"asterisk-tts/pkg/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func successRecord() *models.SynthesisRecord {
	return &models.SynthesisRecord{
		Status:     models.StatusSuccess,
		HTTPStatus: 200,
		AudioBytes: 16044,
		DurationMS: 1500,
		CreatedAt:  time.Unix(1700000000, 0),
	}
}

func TestObserve(t *testing.T) {
	r := New(zap.NewNop(), config.MetricsConfig{})

	r.Observe(successRecord())

	assert.Equal(t, 1.0, testutil.ToFloat64(r.lastRunSuccess))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.lastRunDuration))
	assert.Equal(t, 200.0, testutil.ToFloat64(r.lastHTTPStatus))
	assert.Equal(t, 16044.0, testutil.ToFloat64(r.lastAudioBytes))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastSuccessTimestamp))

	r.Observe(&models.SynthesisRecord{
		Status:     models.StatusFailure,
		Reason:     "http_error",
		HTTPStatus: 500,
		CreatedAt:  time.Unix(1700000100, 0),
	})

	assert.Equal(t, 0.0, testutil.ToFloat64(r.lastRunSuccess))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("http_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.requestDuration))
	assert.Equal(t, 1700000100.0, testutil.ToFloat64(r.lastRunTimestamp))
	// Время последнего успеха не меняется при ошибке
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastSuccessTimestamp))
}

func TestRecord_PushDisabled(t *testing.T) {
	r := New(zap.NewNop(), config.MetricsConfig{})
	assert.NoError(t, r.Record(context.Background(), successRecord()))
}

func TestRecord_Push(t *testing.T) {
	var (
		method string
		path   string
		body   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		method = req.Method
		path = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	r := New(zap.NewNop(), config.MetricsConfig{
		PushgatewayURL: server.URL,
		Job:            "asterisk_tts",
		Timeout:        time.Second,
	})

	require.NoError(t, r.Record(context.Background(), successRecord()))

	assert.Equal(t, http.MethodPost, method)
	assert.True(t, strings.HasPrefix(path, "/metrics/job/asterisk_tts/instance/"))
	assert.Contains(t, body, "asterisk_tts_last_run_success")
	assert.Contains(t, body, "asterisk_tts_last_success_timestamp_seconds")
	assert.Contains(t, body, "asterisk_tts_runs_total")
	assert.Contains(t, body, "asterisk_tts_request_duration_seconds")
}

func TestRecord_PushFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r := New(zap.NewNop(), config.MetricsConfig{
		PushgatewayURL: server.URL,
		Job:            "asterisk_tts",
		Timeout:        time.Second,
	})

	assert.Error(t, r.Record(context.Background(), successRecord()))
}
