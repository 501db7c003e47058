// Package redactor implements reversible redaction: sensitive text spans are
// replaced with deterministic placeholder tokens that can later be resolved
// back to the original text. The same text always maps to the same
// placeholder within a Redactor instance, so redacted documents stay
// referentially consistent.
package redactor

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hfi/aegis-redact/internal/audit"
	"github.com/hfi/aegis-redact/internal/config"
	"github.com/hfi/aegis-redact/internal/metrics"
	"github.com/hfi/aegis-redact/internal/storage"
	"github.com/hfi/aegis-redact/pkg/placeholder"
)

// ErrPlaceholderNotFound is returned by Unredact when the supplied
// placeholder has no reverse-index entry.
var ErrPlaceholderNotFound = errors.New("placeholder not found in mapping")

// Redactor maps sensitive text to placeholder tokens and back. Each
// instance owns its own indices, so independent redaction sessions do not
// contaminate each other. Safe for concurrent use.
type Redactor struct {
	store   storage.MappingStore
	gen     *placeholder.Generator
	log     zerolog.Logger
	audit   audit.Recorder
	metrics bool
}

// Option configures a Redactor
type Option func(*Redactor)

// WithLogger sets the operational logger. The default logger is disabled.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Redactor) {
		r.log = logger
	}
}

// WithMetrics enables or disables Prometheus metrics. Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(r *Redactor) {
		r.metrics = enabled
	}
}

// New creates a Redactor with empty indices
func New(opts ...Option) *Redactor {
	r := &Redactor{
		store:   storage.NewMemoryStore(),
		gen:     placeholder.NewGenerator(),
		log:     zerolog.Nop(),
		audit:   audit.NewNopRecorder(),
		metrics: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// NewFromEnv creates a Redactor configured from the YAML file named by
// CONFIG_PATH (default config.yaml). A missing file yields defaults.
func NewFromEnv() (*Redactor, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging level %q: %w", cfg.Logging.Level, err)
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	r := New(WithLogger(logger), WithMetrics(cfg.Metrics.Enabled))

	if cfg.Audit.Enabled {
		rec, err := audit.NewLogger(&cfg.Audit)
		if err != nil {
			return nil, fmt.Errorf("failed to set up audit logging: %w", err)
		}
		r.audit = rec
	}

	return r, nil
}

// Redact returns a stable placeholder for text. On first encounter a new
// mapping is created; every later call returns the stored placeholder
// unchanged, whatever category is passed (the first call's category wins).
// An empty category produces an untyped token.
func (r *Redactor) Redact(text, category string) string {
	if existing, ok := r.store.LookupByText(text); ok {
		r.recordReuse(existing)
		return existing
	}

	token := r.gen.Generate(text, category)
	stored, inserted := r.store.StoreIfAbsent(text, token)
	if !inserted {
		// Lost the race against a concurrent first redaction of this text
		r.recordReuse(stored)
		return stored
	}

	if r.metrics {
		metrics.RecordRedaction(category)
		metrics.MappingStoreSize.Set(float64(r.store.Size()))
	}
	r.audit.LogMappingCreated(stored, category)
	r.log.Debug().
		Str("placeholder", stored).
		Str("category", category).
		Int("mappings", r.store.Size()).
		Msg("mapping created")

	return stored
}

func (r *Redactor) recordReuse(token string) {
	if r.metrics {
		metrics.RedactionReuseTotal.Inc()
	}
	r.audit.LogMappingReused(token)
}

// Unredact resolves a placeholder back to its original text. It fails with
// an error wrapping ErrPlaceholderNotFound when the placeholder was never
// issued by this Redactor.
func (r *Redactor) Unredact(token string) (string, error) {
	if r.metrics {
		metrics.UnredactTotal.Inc()
	}

	text, ok := r.store.Lookup(token)
	if !ok {
		if r.metrics {
			metrics.UnredactMissesTotal.Inc()
		}
		r.audit.LogLookupFailed(token)
		r.log.Warn().Str("placeholder", token).Msg("unredact lookup failed")
		return "", fmt.Errorf("placeholder %q: %w", token, ErrPlaceholderNotFound)
	}

	return text, nil
}

// ValidateIntegrity reports whether the forward and reverse indices are
// exact inverses of each other. It is a diagnostic query: any inconsistency
// yields false, never an error.
func (r *Redactor) ValidateIntegrity() bool {
	ok := r.store.ValidateIntegrity()

	if r.metrics {
		metrics.RecordIntegrityCheck(ok)
	}
	r.audit.LogIntegrityChecked(ok)
	if !ok {
		r.log.Error().Int("mappings", r.store.Size()).Msg("mapping integrity violation")
	}

	return ok
}

// Size returns the number of mapping entries
func (r *Redactor) Size() int {
	return r.store.Size()
}

// Close releases the audit sink and the mapping store
func (r *Redactor) Close() error {
	if err := r.audit.Close(); err != nil {
		return err
	}
	return r.store.Close()
}
