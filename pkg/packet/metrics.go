package packet

import "github.com/prometheus/client_golang/prometheus"

const (
	directionRead  = "read"
	directionWrite = "write"
)

type metrics struct {
	packets  *prometheus.CounterVec
	failures *prometheus.CounterVec
	bytes    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		packets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "protoreg",
				Subsystem: "packet",
				Name:      "total",
				Help:      "Packets encoded or decoded, by protocol name.",
			},
			[]string{"direction", "protocol"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "protoreg",
				Subsystem: "packet",
				Name:      "failures_total",
				Help:      "Packets that failed to encode or decode, by error code.",
			},
			[]string{"direction", "code"},
		),
		bytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "protoreg",
				Subsystem: "packet",
				Name:      "size_bytes",
				Help:      "Encoded packet size including identifier and attachment.",
				Buckets:   prometheus.ExponentialBuckets(2, 4, 10),
			},
			[]string{"direction"},
		),
	}
	reg.MustRegister(m.packets, m.failures, m.bytes)
	return m
}

func (m *metrics) observe(direction string, size int, names ...string) {
	if m == nil {
		return
	}
	for _, name := range names {
		m.packets.WithLabelValues(direction, name).Inc()
	}
	m.bytes.WithLabelValues(direction).Observe(float64(size))
}

func (m *metrics) fail(direction, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "codec"
	}
	m.failures.WithLabelValues(direction, code).Inc()
}
