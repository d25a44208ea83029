// Package metrics exposes engine activity as Prometheus collectors.
//
// The engine depends only on the Recorder interface; Nop is used when no
// registry is wired.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Launch outcomes recorded by Recorder.Launch.
const (
	LaunchStarted = "started"
	LaunchRefused = "refused"
	LaunchFailed  = "failed"
)

// Recorder receives engine events.
type Recorder interface {
	GeometryRebuilt()
	RebuildFailed()
	ParameterFallback(param string)
	DecaysAccumulated(layer string, n float64)
	TotalDecays(total float64)
	Launch(outcome string)
}

// Nop discards every event.
type Nop struct{}

func (Nop) GeometryRebuilt()                  {}
func (Nop) RebuildFailed()                    {}
func (Nop) ParameterFallback(string)          {}
func (Nop) DecaysAccumulated(string, float64) {}
func (Nop) TotalDecays(float64)               {}
func (Nop) Launch(string)                     {}

// Prometheus records events into client_golang collectors.
type Prometheus struct {
	rebuilds      prometheus.Counter
	rebuildFailed prometheus.Counter
	fallbacks     *prometheus.CounterVec
	accumulated   *prometheus.CounterVec
	total         prometheus.Gauge
	launches      *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lvshield",
			Name:      "geometry_rebuilds_total",
			Help:      "Completed shell geometry rebuilds.",
		}),
		rebuildFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lvshield",
			Name:      "geometry_rebuild_failures_total",
			Help:      "Geometry rebuilds aborted by a hard failure.",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvshield",
			Name:      "parameter_fallbacks_total",
			Help:      "Invalid parameter values replaced by a default or clamped.",
		}, []string{"param"}),
		accumulated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvshield",
			Name:      "decays_accumulated_total",
			Help:      "Expected decays added to the budget, by layer.",
		}, []string{"layer"}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lvshield",
			Name:      "decay_budget",
			Help:      "Current total decay budget.",
		}),
		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvshield",
			Name:      "launches_total",
			Help:      "Run launch requests by outcome.",
		}, []string{"outcome"}),
	}
	for _, c := range []prometheus.Collector{
		p.rebuilds, p.rebuildFailed, p.fallbacks, p.accumulated, p.total, p.launches,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Prometheus) GeometryRebuilt() { p.rebuilds.Inc() }

func (p *Prometheus) RebuildFailed() { p.rebuildFailed.Inc() }

func (p *Prometheus) ParameterFallback(param string) { p.fallbacks.WithLabelValues(param).Inc() }

// DecaysAccumulated adds n to the per-layer counter. Negative n is dropped
// since counters cannot decrease.
func (p *Prometheus) DecaysAccumulated(layer string, n float64) {
	if n > 0 {
		p.accumulated.WithLabelValues(layer).Add(n)
	}
}

func (p *Prometheus) TotalDecays(total float64) { p.total.Set(total) }

func (p *Prometheus) Launch(outcome string) { p.launches.WithLabelValues(outcome).Inc() }

// Rebuilds exposes the rebuild counter for inspection.
func (p *Prometheus) Rebuilds() prometheus.Counter { return p.rebuilds }

// Total exposes the decay budget gauge for inspection.
func (p *Prometheus) Total() prometheus.Gauge { return p.total }
