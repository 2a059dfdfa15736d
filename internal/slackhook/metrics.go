package slackhook

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Metrics are process-lifetime counters exposed on /status.
type Metrics struct {
	StartedAt time.Time `json:"started_at"`

	EventsReceived       int `json:"events_received"`
	CommandsReceived     int `json:"commands_received"`
	InteractionsReceived int `json:"interactions_received"`

	LinksResolved  int `json:"links_resolved"`
	ResolveErrors  int `json:"resolve_errors"`
	PostsSent      int `json:"posts_sent"`
	DeliveryErrors int `json:"delivery_errors"`
	AuthRejected   int `json:"auth_rejected"`

	LastError   string `json:"last_error,omitempty"`
	LastErrorAt string `json:"last_error_at,omitempty"`
}

type metricsState struct {
	metricsMu sync.Mutex
	metrics   Metrics
}

func (m *metricsState) noteEvent() {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.EventsReceived++
}

func (m *metricsState) noteCommand() {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.CommandsReceived++
}

func (m *metricsState) noteInteraction() {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.InteractionsReceived++
}

func (m *metricsState) noteAuthRejected() {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.AuthRejected++
}

func (m *metricsState) noteResolved(n int) {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.LinksResolved += n
}

func (m *metricsState) noteResolveError(err error) {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.ResolveErrors++
	m.noteErrLocked(err)
}

func (m *metricsState) notePosted() {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.PostsSent++
}

func (m *metricsState) noteDeliveryError(err error) {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	m.metrics.DeliveryErrors++
	m.noteErrLocked(err)
}

func (m *metricsState) noteErrLocked(err error) {
	if err == nil {
		return
	}
	m.metrics.LastError = err.Error()
	m.metrics.LastErrorAt = time.Now().UTC().Format(time.RFC3339)
}

func (m *metricsState) snapshot() Metrics {
	m.metricsMu.Lock()
	defer m.metricsMu.Unlock()
	return m.metrics
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":      true,
		"metrics": s.snapshot(),
	})
}
