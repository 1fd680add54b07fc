package protocols

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "vybium_stark_fri"

// Metrics records prover and verifier activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	proofs         prometheus.Counter
	proveDuration  prometheus.Histogram
	proofBytes     prometheus.Histogram
	verifications  *prometheus.CounterVec
	verifyDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		proofs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "proofs_total",
			Help:      "Number of proofs generated",
		}),
		proveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "prove_duration_seconds",
			Help:      "Time spent generating a proof",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		proofBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "proof_size_bytes",
			Help:      "Encoded size of generated proofs",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 12),
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "verifications_total",
			Help:      "Number of verifications by result",
		}, []string{"result"}),
		verifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "verify_duration_seconds",
			Help:      "Time spent verifying a proof",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.proofs, m.proveDuration, m.proofBytes, m.verifications, m.verifyDuration} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeProof(elapsed time.Duration, size int) {
	if m == nil {
		return
	}
	m.proofs.Inc()
	m.proveDuration.Observe(elapsed.Seconds())
	m.proofBytes.Observe(float64(size))
}

func (m *Metrics) observeVerification(elapsed time.Duration, accepted bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.verifications.WithLabelValues(result).Inc()
	m.verifyDuration.Observe(elapsed.Seconds())
}
