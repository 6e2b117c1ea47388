package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	recorder := New()
	recorder.ObserveRequest("tools/list", "ok")
	recorder.ObserveRequest("tools/list", "ok")
	recorder.ObserveFetch("remote", "not_found", 10*time.Millisecond)
	recorder.SessionOpened()
	recorder.SessionOpened()
	recorder.SessionClosed()

	assert.Equal(t, float64(2), testutil.ToFloat64(recorder.requests.WithLabelValues("tools/list", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(recorder.fetches.WithLabelValues("remote", "not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(recorder.sessions))

	count, err := testutil.GatherAndCount(recorder.Registry(), "staticmcp_requests_total", "staticmcp_open_sessions")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	writer := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(writer, httptest.NewRequest("GET", "/metrics", nil))
	assert.True(t, strings.Contains(writer.Body.String(), "staticmcp_requests_total"))
}

func TestRecorder_Nil(t *testing.T) {
	var recorder *Recorder
	assert.NotPanics(t, func() {
		recorder.ObserveRequest("ping", "ok")
		recorder.ObserveFetch("local", "ok", time.Millisecond)
		recorder.SessionOpened()
		recorder.SessionClosed()
	})
}
