package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metricser .
type Metricser interface {
	EmitCounter(name string, count int, tags map[string]string)
	EmitStore(name string, value int, tags map[string]string)
	EmitTimer(name string, cost int, tags map[string]string)
}

// DefaultMetricser backs the Metricser interface with prometheus collectors,
// one vector per metric name, registered lazily on first emit.
type DefaultMetricser struct {
	registry   *prometheus.Registry
	namespace  string
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewMetricser .
func NewMetricser(namespace string) *DefaultMetricser {
	return &DefaultMetricser{
		registry:   prometheus.NewRegistry(),
		namespace:  namespace,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// NewDefaultMetricser .
func NewDefaultMetricser() *DefaultMetricser {
	return NewMetricser("robocurrent")
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *DefaultMetricser) Registry() *prometheus.Registry {
	return m.registry
}

func tagKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	return keys
}

// EmitCounter .
func (m *DefaultMetricser) EmitCounter(name string, count int, tags map[string]string) {
	vec, ok := m.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
		}, tagKeys(tags))
		m.registry.MustRegister(vec)
		m.counters[name] = vec
	}
	vec.With(tags).Add(float64(count))
}

// EmitStore .
func (m *DefaultMetricser) EmitStore(name string, value int, tags map[string]string) {
	vec, ok := m.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      name,
		}, tagKeys(tags))
		m.registry.MustRegister(vec)
		m.gauges[name] = vec
	}
	vec.With(tags).Set(float64(value))
}

// EmitTimer records a cost in milliseconds.
func (m *DefaultMetricser) EmitTimer(name string, cost int, tags map[string]string) {
	vec, ok := m.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, tagKeys(tags))
		m.registry.MustRegister(vec)
		m.histograms[name] = vec
	}
	vec.With(tags).Observe(float64(cost))
}
