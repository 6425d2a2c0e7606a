package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/san-kum/sortviz/internal/display"
	"github.com/san-kum/sortviz/internal/oplog"
	"github.com/san-kum/sortviz/internal/playback"
)

const namespace = "sortviz"

// Collector exports playback progress as Prometheus metrics.
type Collector struct {
	applied  *prometheus.CounterVec
	finished *prometheus.CounterVec
	cursor   prometheus.Gauge
	logLen   prometheus.Gauge
	speed    prometheus.Gauge
}

// NewCollector registers the collector's metrics on reg. Registering twice on
// the same registerer panics.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		applied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_applied_total",
			Help:      "Operations applied to the visible frame.",
		}, []string{"algorithm", "kind"}),
		finished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playbacks_finished_total",
			Help:      "Playbacks that reached the end of their log.",
		}, []string{"algorithm"}),
		cursor: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_cursor",
			Help:      "Index of the next operation to apply.",
		}),
		logLen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "log_length",
			Help:      "Number of operations in the current log.",
		}),
		speed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_speed",
			Help:      "Configured playback speed.",
		}),
	}
}

func (c *Collector) OnApply(op oplog.Op, st playback.Status, _ display.Frame) {
	c.applied.WithLabelValues(st.Algorithm, op.Kind().String()).Inc()
	c.observe(st)
}

func (c *Collector) OnFinish(st playback.Status) {
	c.finished.WithLabelValues(st.Algorithm).Inc()
	c.observe(st)
}

func (c *Collector) observe(st playback.Status) {
	c.cursor.Set(float64(st.Cursor))
	c.logLen.Set(float64(st.LogLen))
	c.speed.Set(float64(st.Speed))
}
