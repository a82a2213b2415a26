// Package monitoring exposes Prometheus metrics and OpenTelemetry tracing
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutriplan/v1/internal/ports/outbound"
)

const namespace = "nutriplan"

// Metrics records planner and HTTP activity on a private registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	menusSuggested     prometheus.Counter
	suggestedSlots     prometheus.Histogram
	slotsSkipped       *prometheus.CounterVec
	menusForked        prometheus.Counter
	menusEdited        prometheus.Counter
	itemStatusRejected *prometheus.CounterVec
	planTransitions    *prometheus.CounterVec
	plansCancelled     prometheus.Counter
}

// NewMetrics creates and registers every collector
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		menusSuggested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menus_suggested_total",
			Help:      "Total number of generated daily menus",
		}),
		suggestedSlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "menu_filled_slots",
			Help:      "Meal slots filled per generated menu",
			Buckets:   []float64{0, 1, 2, 3},
		}),
		slotsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "menu_slots_skipped_total",
				Help:      "Meal slots left empty because no candidate existed",
			},
			[]string{"slot"},
		),
		menusForked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menus_forked_total",
			Help:      "Suggested menus cloned on first user edit",
		}),
		menusEdited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menus_edited_total",
			Help:      "Menu edits applied",
		}),
		itemStatusRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "item_status_rejected_total",
				Help:      "Item status changes refused by the date window",
			},
			[]string{"reason"},
		),
		planTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plan_transitions_total",
				Help:      "Meal plan status transitions",
			},
			[]string{"from", "to"},
		),
		plansCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_cancelled_total",
			Help:      "Suggested plans cancelled when another plan was accepted",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.menusSuggested,
		m.suggestedSlots,
		m.slotsSkipped,
		m.menusForked,
		m.menusEdited,
		m.itemStatusRejected,
		m.planTransitions,
		m.plansCancelled,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) MenuSuggested(filledSlots int) {
	m.menusSuggested.Inc()
	m.suggestedSlots.Observe(float64(filledSlots))
}

func (m *Metrics) SlotSkipped(slot string) { m.slotsSkipped.WithLabelValues(slot).Inc() }

func (m *Metrics) MenuForked() { m.menusForked.Inc() }

func (m *Metrics) MenuEdited() { m.menusEdited.Inc() }

func (m *Metrics) ItemStatusRejected(reason string) {
	m.itemStatusRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) PlanTransition(from, to string) {
	m.planTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) PlansCancelled(count int64) { m.plansCancelled.Add(float64(count)) }

var _ outbound.MetricsRecorder = (*Metrics)(nil)
