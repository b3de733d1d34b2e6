package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsdec",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bitsdec",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
	decodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsdec",
			Subsystem: "decode",
			Name:      "total",
			Help:      "Transmissions decoded, by outcome kind (ok or error kind).",
		},
		[]string{"kind"},
	)
	decodeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bitsdec",
			Subsystem: "decode",
			Name:      "duration_seconds",
			Help:      "Decode and evaluation time in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
	)
	decodePackets = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bitsdec",
			Subsystem: "decode",
			Name:      "packets",
			Help:      "Packets per successfully decoded transmission.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	inputFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsdec",
			Subsystem: "input",
			Name:      "fetches_total",
			Help:      "Remote input fetches by HTTP status (0 when no response).",
		},
		[]string{"status"},
	)
	inputFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bitsdec",
			Subsystem: "input",
			Name:      "fetch_duration_seconds",
			Help:      "Remote input fetch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			decodes, decodeDuration, decodePackets,
			inputFetches, inputFetchDuration,
		)
	})
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordDecode counts one decode. kind is "ok" or a protocol error kind;
// packets is ignored for failures.
func RecordDecode(kind string, packets int, duration time.Duration) {
	RegisterMetrics()
	decodes.WithLabelValues(kind).Inc()
	decodeDuration.Observe(duration.Seconds())
	if kind == "ok" {
		decodePackets.Observe(float64(packets))
	}
}

func RecordFetch(status int, duration time.Duration) {
	RegisterMetrics()
	inputFetches.WithLabelValues(strconv.Itoa(status)).Inc()
	inputFetchDuration.Observe(duration.Seconds())
}
