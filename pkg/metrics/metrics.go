// Package metrics exports API counters to Prometheus. A nil *Recorder is
// valid and records nothing.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ayurdiet"

type Recorder struct {
	gatherer       prometheus.Gatherer
	classification *prometheus.CounterVec
	decisions      *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	streams        prometheus.Gauge
}

// New registers the collectors on reg. Passing nil uses a fresh registry.
// Re-registering on the same registry reuses the existing collectors.
func New(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		gatherer: reg,
		classification: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Questionnaire classifications by resulting constitution.",
		}, []string{"prakriti"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_decisions_total",
			Help:      "Route guard decisions by kind and requirement.",
		}, []string{"decision", "required"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		streams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_streams",
			Help:      "Open session status streams.",
		}),
	}

	var err error
	if r.classification, err = register(reg, r.classification); err != nil {
		return nil, err
	}
	if r.decisions, err = register(reg, r.decisions); err != nil {
		return nil, err
	}
	if r.httpDuration, err = register(reg, r.httpDuration); err != nil {
		return nil, err
	}
	if r.streams, err = register(reg, r.streams); err != nil {
		return nil, err
	}
	return r, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metrics collector: %w", err)
	}
	return c, nil
}

func (r *Recorder) Classification(prakriti string) {
	if r == nil {
		return
	}
	r.classification.WithLabelValues(prakriti).Inc()
}

func (r *Recorder) Decision(kind, required string) {
	if r == nil {
		return
	}
	r.decisions.WithLabelValues(kind, required).Inc()
}

func (r *Recorder) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (r *Recorder) StreamOpened() {
	if r != nil {
		r.streams.Inc()
	}
}

func (r *Recorder) StreamClosed() {
	if r != nil {
		r.streams.Dec()
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
