package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromoMetrics records promo code application outcomes.
type PromoMetrics struct {
	applied  prometheus.Counter
	rejected *prometheus.CounterVec
}

// NewPromoMetrics registers the promo metrics on the provided registerer.
func NewPromoMetrics(reg prometheus.Registerer) *PromoMetrics {
	if reg == nil {
		return &PromoMetrics{}
	}
	applied := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "promo_codes_applied",
		Help: "Promo codes successfully validated and applied.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_codes_rejected",
		Help: "Promo code applications rejected, by reason.",
	}, []string{"reason"})
	reg.MustRegister(applied, rejected)
	return &PromoMetrics{
		applied:  applied,
		rejected: rejected,
	}
}

// IncApplied increments the applied counter.
func (p *PromoMetrics) IncApplied() {
	if p == nil || p.applied == nil {
		return
	}
	p.applied.Inc()
}

// IncRejected increments the rejection counter for the given reason.
func (p *PromoMetrics) IncRejected(reason string) {
	if p == nil || p.rejected == nil {
		return
	}
	p.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}
