package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records per-line outcomes of cart reconciliation pushes.
type SyncMetrics struct {
	pushed  *prometheus.CounterVec
	skipped *prometheus.CounterVec
	failed  *prometheus.CounterVec
}

// NewSyncMetrics registers the reconciler metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	pushed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_sync_lines_pushed",
		Help: "Cart lines successfully pushed to the server cart.",
	}, []string{"mode"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_sync_lines_skipped",
		Help: "Cart lines skipped because local and server quantities matched.",
	}, []string{"mode"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_sync_lines_failed",
		Help: "Cart lines whose push to the server cart failed.",
	}, []string{"mode"})
	reg.MustRegister(pushed, skipped, failed)
	return &SyncMetrics{
		pushed:  pushed,
		skipped: skipped,
		failed:  failed,
	}
}

// IncPushed increments the pushed counter for the given reconciliation mode.
func (s *SyncMetrics) IncPushed(mode string) {
	if s == nil || s.pushed == nil {
		return
	}
	s.pushed.WithLabelValues(normalizeLabel(mode)).Inc()
}

// IncSkipped increments the skipped counter for the given reconciliation mode.
func (s *SyncMetrics) IncSkipped(mode string) {
	if s == nil || s.skipped == nil {
		return
	}
	s.skipped.WithLabelValues(normalizeLabel(mode)).Inc()
}

// IncFailed increments the failure counter for the given reconciliation mode.
func (s *SyncMetrics) IncFailed(mode string) {
	if s == nil || s.failed == nil {
		return
	}
	s.failed.WithLabelValues(normalizeLabel(mode)).Inc()
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
