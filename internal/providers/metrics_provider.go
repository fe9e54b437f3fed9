package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"smokeless/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncEventsRecorded()
	IncPersistenceErrors()
}

// TrackerGauges exposes the live values published as gauges.
type TrackerGauges interface {
	TodayCount() int
	DaysTracked() int
	StreakDays() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	persistenceErrors   prometheus.Counter
	eventsRecorded      prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncEventsRecorded() {
	m.eventsRecorded.Inc()
}

func (m *MetricsProvider) IncPersistenceErrors() {
	m.persistenceErrors.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smokeless_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smokeless_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smokeless_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smokeless_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "smokeless_persistence_duration_seconds",
			Help:    "Duration of store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smokeless_persistence_errors_total",
			Help: "Total number of failed store writes",
		}),

		eventsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smokeless_events_recorded_total",
			Help: "Total number of smoking events recorded since start",
		}),
	}
}

// RegisterTrackerGauges publishes the tracker's live values. It is a no-op
// when metrics are disabled.
func RegisterTrackerGauges(conf *structures.Config, gauges TrackerGauges) {
	if !conf.Metrics.Enabled {
		return
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "smokeless_today_count",
		Help: "Events recorded today",
	}, func() float64 {
		return float64(gauges.TodayCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "smokeless_days_tracked",
		Help: "Number of days in the log",
	}, func() float64 {
		return float64(gauges.DaysTracked())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "smokeless_streak_days",
		Help: "Whole days since the last recorded event",
	}, func() float64 {
		return float64(gauges.StreakDays())
	})
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncEventsRecorded()                               {}
func (n *noopMetrics) IncPersistenceErrors()                            {}
