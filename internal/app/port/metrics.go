package port

import "time"

// Metrics records tool and API activity. A nil Metrics is never passed around;
// use NopMetrics when nothing should be recorded.
type Metrics interface {
	ObserveToolCall(tool string, outcome string, elapsed time.Duration)
	ObserveAPIRequest(endpoint string, statusCode int, elapsed time.Duration)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveToolCall(string, string, time.Duration) {}
func (NopMetrics) ObserveAPIRequest(string, int, time.Duration)  {}
