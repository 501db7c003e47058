package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedactionsTotal counts newly created mappings by category
	RedactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aegis_redactions_total",
		Help: "Total number of new redaction mappings created",
	}, []string{"category"})

	// RedactionReuseTotal counts redact calls answered from the forward index
	RedactionReuseTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aegis_redaction_reuse_total",
		Help: "Total number of redact calls that reused an existing placeholder",
	})

	// UnredactTotal counts reverse lookups
	UnredactTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aegis_unredact_total",
		Help: "Total number of unredact lookups",
	})

	// UnredactMissesTotal counts reverse lookups for unknown placeholders
	UnredactMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aegis_unredact_misses_total",
		Help: "Total number of unredact lookups that found no mapping",
	})

	// PlaceholdersRestoredTotal counts placeholders substituted back into documents
	PlaceholdersRestoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aegis_placeholders_restored_total",
		Help: "Total number of placeholders restored to original text in documents",
	})

	// MappingStoreSize tracks the number of stored mappings
	MappingStoreSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aegis_mapping_store_size",
		Help: "Current number of redaction mappings stored",
	})

	// IntegrityChecksTotal counts integrity validations by result
	IntegrityChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aegis_integrity_checks_total",
		Help: "Total number of mapping integrity checks",
	}, []string{"result"})
)

// RecordRedaction records a newly created mapping. An empty category is
// reported as "none" to keep the label set bounded and readable.
func RecordRedaction(category string) {
	if category == "" {
		category = "none"
	}
	RedactionsTotal.WithLabelValues(category).Inc()
}

// RecordIntegrityCheck records an integrity validation result
func RecordIntegrityCheck(ok bool) {
	result := "ok"
	if !ok {
		result = "violation"
	}
	IntegrityChecksTotal.WithLabelValues(result).Inc()
}
