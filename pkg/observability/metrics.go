package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records routing activity on a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	transactions *prometheus.CounterVec
	effects      *prometheus.CounterVec
	poolSize     prometheus.Gauge
	inFlight     prometheus.Gauge
	finished     *prometheus.CounterVec
	interrupted  *prometheus.CounterVec
	duration     prometheus.Histogram

	mu      sync.Mutex
	started map[string]time.Time
	now     func() time.Time
}

// NewMetrics registers the routing collectors under namespace (default "ribs").
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "ribs"
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Transactions processed by the routing pool, by kind.",
		}, []string{"kind"}),
		effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_total",
			Help:      "Effects reduced into the routing pool, by kind.",
		}, []string{"kind"}),
		poolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_elements",
			Help:      "Routing elements currently in the pool.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transitions_in_flight",
			Help:      "Visual transitions currently running.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_finished_total",
			Help:      "Finished transitions, by final phase.",
		}, []string{"phase"}),
		interrupted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_interrupted_total",
			Help:      "Transitions interrupted by a later transaction, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transition_duration_seconds",
			Help:      "Time from transition start to finish.",
			Buckets:   []float64{.05, .1, .2, .3, .5, .75, 1, 2},
		}),
		started: make(map[string]time.Time),
		now:     time.Now,
	}
	m.registry.MustRegister(
		m.transactions, m.effects, m.poolSize, m.inFlight,
		m.finished, m.interrupted, m.duration,
	)
	return m
}

// Registry exposes the private registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns the lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransaction: func(e *domain.TransactionEvent) {
			kind := e.Global
			if kind == "" {
				kind = "change"
			}
			m.transactions.WithLabelValues(kind).Inc()
		},
		OnEffect: func(e *domain.EffectEvent) {
			m.effects.WithLabelValues(e.Kind).Inc()
			m.poolSize.Set(float64(e.PoolSize))
		},
		OnTransitionStarted: func(e *domain.TransitionEvent) {
			m.inFlight.Inc()
			m.mu.Lock()
			m.started[e.Descriptor.String()] = m.now()
			m.mu.Unlock()
		},
		OnTransitionFinished: func(e *domain.TransitionEvent) {
			m.inFlight.Dec()
			m.finished.WithLabelValues(e.Phase.String()).Inc()

			key := e.Descriptor.String()
			m.mu.Lock()
			start, ok := m.started[key]
			delete(m.started, key)
			m.mu.Unlock()
			if ok {
				m.duration.Observe(m.now().Sub(start).Seconds())
			}
		},
		OnTransitionInterrupted: func(e *domain.TransitionEvent) {
			m.interrupted.WithLabelValues(e.Outcome).Inc()
		},
	}
}
