// Package metrics records worker activity with Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "squeeze"
	subsystem = "worker"
)

// Prometheus implements ports.MetricsPort.
type Prometheus struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	bytesIn  *prometheus.CounterVec
	bytesOut *prometheus.CounterVec
}

// NewPrometheus registers the worker collectors on reg.
// Registering twice on the same registry panics, as promauto does.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Compression requests by path",
			},
			[]string{"path"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "failures_total",
				Help:      "Compression requests that ended with an error message",
			},
			[]string{"path", "reason"},
		),
		bytesIn: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "input_bytes_total",
				Help:      "Bytes received by finished requests",
			},
			[]string{"path"},
		),
		bytesOut: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "output_bytes_total",
				Help:      "Bytes emitted by finished requests",
			},
			[]string{"path"},
		),
	}
}

func (p *Prometheus) RequestStarted(path string) {
	p.requests.WithLabelValues(path).Inc()
}

func (p *Prometheus) RequestFailed(path, reason string) {
	p.failures.WithLabelValues(path, reason).Inc()
}

func (p *Prometheus) BytesProcessed(path string, in, out int) {
	p.bytesIn.WithLabelValues(path).Add(float64(in))
	p.bytesOut.WithLabelValues(path).Add(float64(out))
}

// Noop discards everything. Used when metrics are disabled.
type Noop struct{}

func (Noop) RequestStarted(string)           {}
func (Noop) RequestFailed(string, string)    {}
func (Noop) BytesProcessed(string, int, int) {}
