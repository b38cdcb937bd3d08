package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// AcquiredCounter tracks successful lock acquisitions.
	AcquiredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exclusive_acquired_total",
		Help: "Total number of successful lock acquisitions",
	})
	// DeniedCounter tracks acquisition attempts lost to another holder.
	DeniedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exclusive_denied_total",
		Help: "Total number of denied lock acquisitions",
	})
	// StolenCounter tracks acquisitions that recovered an expired dead-owner lock.
	StolenCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exclusive_stolen_total",
		Help: "Total number of locks stolen from expired dead owners",
	})
	// ExpiredCounter tracks runs whose lease lapsed before release.
	ExpiredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exclusive_expired_before_release_total",
		Help: "Total number of runs whose lock expired before release",
	})
	// RunCounter tracks task bodies executed under a lock.
	RunCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exclusive_runs_total",
		Help: "Total number of task bodies executed under a lock",
	})
)

// NewRegistry creates a new Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// RegisterCoreMetrics registers the core lock metrics on the provided registry.
func RegisterCoreMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AcquiredCounter, DeniedCounter, StolenCounter, ExpiredCounter, RunCounter)
}
