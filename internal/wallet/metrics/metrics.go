package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for wallet operations.
type Metrics struct {
	Operations           *prometheus.CounterVec
	OperationLatency     *prometheus.HistogramVec
	Rejections           *prometheus.CounterVec
	ChaincertsDeposited  prometheus.Counter
	ChaincertsRevoked    prometheus.Counter
	OrganizationsAdded   prometheus.Counter
	OrganizationsRemoved prometheus.Counter
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chaincerts_wallet_operations_total",
			Help: "Total wallet operations, labeled by operation and outcome",
		}, []string{"operation", "outcome"}),
		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chaincerts_wallet_operation_latency_seconds",
			Help:    "Latency of wallet operations including the store transaction",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chaincerts_wallet_rejections_total",
			Help: "Wallet operations rejected with a wallet error kind",
		}, []string{"operation", "kind"}),
		ChaincertsDeposited: f.NewCounter(prometheus.CounterOpts{
			Name: "chaincerts_wallet_chaincerts_deposited_total",
			Help: "Total chaincerts deposited",
		}),
		ChaincertsRevoked: f.NewCounter(prometheus.CounterOpts{
			Name: "chaincerts_wallet_chaincerts_revoked_total",
			Help: "Total chaincerts moved to revoked",
		}),
		OrganizationsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "chaincerts_wallet_organizations_added_total",
			Help: "Total organizations added to wallet access control lists",
		}),
		OrganizationsRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "chaincerts_wallet_organizations_removed_total",
			Help: "Total organizations removed from wallet access control lists",
		}),
	}
}

// ObserveOperation records the outcome and latency of one operation.
func (m *Metrics) ObserveOperation(operation, outcome string, start time.Time) {
	m.Operations.WithLabelValues(operation, outcome).Inc()
	m.OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncrementRejection counts an operation rejected with a wallet error kind.
func (m *Metrics) IncrementRejection(operation, kind string) {
	m.Rejections.WithLabelValues(operation, kind).Inc()
}
