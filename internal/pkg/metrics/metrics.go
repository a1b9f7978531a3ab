package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the money-adjacent events of the payment and upload paths.
type Metrics struct {
	paymentsVerified   prometheus.Counter
	paymentsRejected   prometheus.Counter
	ordersMaterialized prometheus.Counter
	duplicateVerifies  prometheus.Counter
	uploadRetries      prometheus.Counter
	uploadFailures     prometheus.Counter
}

// New registers the counters with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the counters with the given registerer.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{
		paymentsVerified: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_payments_verified_total",
			Help: "Total number of successfully verified payments",
		}),
		paymentsRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_payments_rejected_total",
			Help: "Total number of payments the gateway reported as not successful",
		}),
		ordersMaterialized: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_materialized_total",
			Help: "Total number of orders persisted from confirmed payments",
		}),
		duplicateVerifies: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_duplicate_verifications_total",
			Help: "Total number of verify calls that resolved to an existing order",
		}),
		uploadRetries: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_upload_retries_total",
			Help: "Total number of retried image uploads",
		}),
		uploadFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_upload_failures_total",
			Help: "Total number of image uploads that exhausted all attempts",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	counter := prometheus.NewCounter(opts)
	if err := registerer.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return counter
}

// All increment methods tolerate a nil receiver so collaborators can run
// without metrics in tests.

func (m *Metrics) PaymentVerified() {
	if m != nil {
		m.paymentsVerified.Inc()
	}
}

func (m *Metrics) PaymentRejected() {
	if m != nil {
		m.paymentsRejected.Inc()
	}
}

func (m *Metrics) OrderMaterialized() {
	if m != nil {
		m.ordersMaterialized.Inc()
	}
}

func (m *Metrics) DuplicateVerification() {
	if m != nil {
		m.duplicateVerifies.Inc()
	}
}

func (m *Metrics) UploadRetried() {
	if m != nil {
		m.uploadRetries.Inc()
	}
}

func (m *Metrics) UploadFailed() {
	if m != nil {
		m.uploadFailures.Inc()
	}
}
