package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "octav_mcp"

// Collector holds the application collectors and implements port.Metrics.
type Collector struct {
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	apiRequests  *prometheus.CounterVec
	apiDuration  *prometheus.HistogramVec
}

// NewCollector creates unregistered collectors.
func NewCollector() *Collector {
	return &Collector{
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool calls by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Tool call latency including validation, the API request and formatting.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "octav_api_requests_total",
			Help:      "Requests sent to the Octav API by endpoint and status class.",
		}, []string{"endpoint", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "octav_api_request_duration_seconds",
			Help:      "Octav API request latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
	}
}

// Register adds every collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.toolCalls, c.toolDuration, c.apiRequests, c.apiDuration} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the Go runtime, process and
// application collectors.
func NewRegistry() (*prometheus.Registry, *Collector, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c := NewCollector()
	if err := c.Register(reg); err != nil {
		return nil, nil, err
	}
	return reg, c, nil
}

// Handler serves reg in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (c *Collector) ObserveToolCall(tool string, outcome string, elapsed time.Duration) {
	c.toolCalls.WithLabelValues(tool, outcome).Inc()
	c.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveAPIRequest(endpoint string, statusCode int, elapsed time.Duration) {
	c.apiRequests.WithLabelValues(endpoint, StatusClass(statusCode)).Inc()
	c.apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// StatusClass buckets a status code as "2xx", "4xx" and so on; 0 means the
// request never got a response.
func StatusClass(statusCode int) string {
	if statusCode <= 0 {
		return "network_error"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}
