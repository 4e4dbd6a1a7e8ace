package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"octav_mcp/internal/app/port"
)

var _ port.Metrics = (*Collector)(nil)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "network_error", StatusClass(0))
	assert.Equal(t, "2xx", StatusClass(200))
	assert.Equal(t, "4xx", StatusClass(402))
	assert.Equal(t, "4xx", StatusClass(429))
	assert.Equal(t, "5xx", StatusClass(503))
}

func TestCollector_ObserveToolCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector()
	require.NoError(t, c.Register(reg))

	c.ObserveToolCall("octav_get_portfolio", "success", 120*time.Millisecond)
	c.ObserveToolCall("octav_get_portfolio", "success", 80*time.Millisecond)
	c.ObserveToolCall("octav_get_portfolio", "validation_error", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.toolCalls.WithLabelValues("octav_get_portfolio", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.toolCalls.WithLabelValues("octav_get_portfolio", "validation_error")))

	expected := `
# HELP octav_mcp_tool_calls_total Tool calls by tool name and outcome.
# TYPE octav_mcp_tool_calls_total counter
octav_mcp_tool_calls_total{outcome="success",tool="octav_get_portfolio"} 2
octav_mcp_tool_calls_total{outcome="validation_error",tool="octav_get_portfolio"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "octav_mcp_tool_calls_total"))
}

func TestCollector_ObserveAPIRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector()
	require.NoError(t, c.Register(reg))

	c.ObserveAPIRequest("portfolio", 200, 10*time.Millisecond)
	c.ObserveAPIRequest("portfolio", 0, 10*time.Millisecond)
	c.ObserveAPIRequest("credits", 402, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.apiRequests.WithLabelValues("portfolio", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.apiRequests.WithLabelValues("portfolio", "network_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.apiRequests.WithLabelValues("credits", "4xx")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.apiDuration))
}

func TestCollector_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector()
	require.NoError(t, c.Register(reg))
	assert.Error(t, c.Register(reg))
}

func TestNewRegistry_ServesApplicationMetrics(t *testing.T) {
	reg, c, err := NewRegistry()
	require.NoError(t, err)

	c.ObserveToolCall("octav_get_credits", "success", time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `octav_mcp_tool_calls_total{outcome="success",tool="octav_get_credits"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
