package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSyncMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSyncMetrics(reg)

	m.IncPushed("delta")
	m.IncPushed("delta")
	m.IncSkipped("delta")
	m.IncFailed("full")
	m.IncFailed("")

	if got := testutil.ToFloat64(m.pushed.WithLabelValues("delta")); got != 2 {
		t.Fatalf("expected 2 pushed, got %v", got)
	}
	if got := testutil.ToFloat64(m.skipped.WithLabelValues("delta")); got != 1 {
		t.Fatalf("expected 1 skipped, got %v", got)
	}
	if got := testutil.ToFloat64(m.failed.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("empty mode should count under unknown, got %v", got)
	}
}

func TestSyncMetricsNilSafe(t *testing.T) {
	var m *SyncMetrics
	m.IncPushed("delta")
	m.IncSkipped("delta")
	m.IncFailed("delta")

	zero := NewSyncMetrics(nil)
	zero.IncPushed("delta")
}

func TestPromoMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPromoMetrics(reg)

	m.IncApplied()
	m.IncRejected("not_found")
	m.IncRejected("not_found")

	if got := testutil.ToFloat64(m.applied); got != 1 {
		t.Fatalf("expected 1 applied, got %v", got)
	}
	if got := testutil.ToFloat64(m.rejected.WithLabelValues("not_found")); got != 2 {
		t.Fatalf("expected 2 rejections, got %v", got)
	}

	var nilMetrics *PromoMetrics
	nilMetrics.IncApplied()
	nilMetrics.IncRejected("conflict")
}
