package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/corporate-meals/internal/application/cache"
)

const namespace = "corporate_meals"

// ClientMetrics métricas de la caché remota, las mutaciones y el gateway.
// Cada instancia usa su propio registro; los tests pueden crear varias sin colisiones.
type ClientMetrics struct {
	registry *prometheus.Registry

	CacheRequests   *prometheus.CounterVec
	CacheFetches    *prometheus.CounterVec
	CacheFailures   *prometheus.CounterVec
	CacheDiscarded  *prometheus.CounterVec
	Mutations       *prometheus.CounterVec
	MutationSeconds *prometheus.HistogramVec
	GateDecisions   *prometheus.CounterVec
}

// New registra las métricas en un registro privado.
func New() *ClientMetrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &ClientMetrics{
		registry: reg,
		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Lecturas de la caché por familia de clave y resultado.",
		}, []string{"family", "result"}), // result: hit, miss
		CacheFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "fetches_total",
			Help:      "Fetches remotos iniciados por familia de clave.",
		}, []string{"family"}),
		CacheFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "fetch_failures_total",
			Help:      "Fetches remotos fallidos por familia de clave.",
		}, []string{"family"}),
		CacheDiscarded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "discarded_responses_total",
			Help:      "Respuestas descartadas porque la clave se invalidó durante el fetch.",
		}, []string{"family"}),
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mutation",
			Name:      "total",
			Help:      "Mutaciones por nombre y resultado.",
		}, []string{"mutation", "result"}), // result: success, failure, invalid, ignored
		MutationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mutation",
			Name:      "duration_seconds",
			Help:      "Duración de las mutaciones.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mutation"}),
		GateDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Decisiones del control de acceso por tipo.",
		}, []string{"decision"}),
	}
}

// Registry registro privado (tests).
func (m *ClientMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone el registro en formato Prometheus.
func (m *ClientMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ── cache.Observer ────────────────────────────────────────────────────────────

func (m *ClientMetrics) CacheHit(key cache.Key) {
	m.CacheRequests.WithLabelValues(key.Family(), "hit").Inc()
}

func (m *ClientMetrics) CacheMiss(key cache.Key) {
	m.CacheRequests.WithLabelValues(key.Family(), "miss").Inc()
}

func (m *ClientMetrics) FetchStarted(key cache.Key) {
	m.CacheFetches.WithLabelValues(key.Family()).Inc()
}

func (m *ClientMetrics) FetchFailed(key cache.Key) {
	m.CacheFailures.WithLabelValues(key.Family()).Inc()
}

func (m *ClientMetrics) FetchDiscarded(key cache.Key) {
	m.CacheDiscarded.WithLabelValues(key.Family()).Inc()
}

// ── mutation.Observer ─────────────────────────────────────────────────────────

func (m *ClientMetrics) MutationFinished(name, result string, elapsed time.Duration) {
	m.Mutations.WithLabelValues(name, result).Inc()
	m.MutationSeconds.WithLabelValues(name).Observe(elapsed.Seconds())
}

// GateDecision cuenta una decisión del gate (allow, pending, redirect).
func (m *ClientMetrics) GateDecision(kind string) {
	m.GateDecisions.WithLabelValues(kind).Inc()
}
