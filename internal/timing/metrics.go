package timing

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/beamform/internal/shm"
)

// Collector exposes a Coalescer's rolling averages as Prometheus
// gauges: one per-shader GPU time gauge plus the RF inter-arrival
// average, scraped on demand rather than pushed, since the underlying
// Stats are already rolling averages maintained by Drain.
type Collector struct {
	coalescer *Coalescer

	shaderSeconds *prometheus.GaugeVec
	rfDelta       prometheus.Gauge
}

// NewCollector wraps coalescer for Prometheus registration.
func NewCollector(coalescer *Coalescer) *Collector {
	return &Collector{
		coalescer: coalescer,
		shaderSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "beamformer",
			Subsystem: "compute",
			Name:      "shader_seconds",
			Help:      "Rolling average GPU execution time per compute shader stage.",
		}, []string{"shader"}),
		rfDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "beamformer",
			Subsystem: "compute",
			Name:      "rf_data_interval_seconds",
			Help:      "Rolling average interval between raw RF data arrivals.",
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.shaderSeconds.Describe(ch)
	ch <- c.rfDelta.Desc()
}

// Collect implements prometheus.Collector, refreshing gauge values from
// the wrapped Coalescer's current Stats snapshot.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for shader := 0; shader < shm.ShaderKindCount; shader++ {
		g := c.shaderSeconds.WithLabelValues(shm.ShaderKind(shader).String())
		g.Set(float64(c.coalescer.Stats.AverageTimes[shader]))
	}
	c.shaderSeconds.Collect(ch)

	c.rfDelta.Set(float64(c.coalescer.Stats.RFTimeDeltaAverage))
	ch <- c.rfDelta
}
