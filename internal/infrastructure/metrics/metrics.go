// Package metrics expone contadores Prometheus de decisiones de acceso y de peticiones HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
)

var _ usecase.DecisionObserver = (*Metrics)(nil)

// Metrics agrupa los colectores sobre un registro propio.
type Metrics struct {
	registry     *prometheus.Registry
	decisions    *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New crea y registra los colectores bajo namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Subsystem: "access", Name: "decisions_total", Help: "Decisiones de acceso por recurso, acción y resultado"},
			[]string{"resource", "action", "outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Subsystem: "http", Name: "requests_total", Help: "Peticiones HTTP atendidas"},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds", Help: "Latencia de peticiones HTTP", Buckets: prometheus.DefBuckets},
			[]string{"method", "route"},
		),
	}
	m.registry.MustRegister(
		m.decisions, m.httpRequests, m.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDecision cuenta una decisión. code vacío = permitido; si no, outcome es el código de rechazo.
func (m *Metrics) ObserveDecision(resource access.Resource, action access.Action, code string) {
	outcome := "allowed"
	if code != "" {
		outcome = code
	}
	m.decisions.WithLabelValues(string(resource), string(action), outcome).Inc()
}

// ObserveHTTP registra una petición atendida. route es el patrón de la ruta, no la URL concreta.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler sirve el registro en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry expone el registro (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
