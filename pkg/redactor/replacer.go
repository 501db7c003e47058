package redactor

import (
	"sort"
	"strings"

	"github.com/hfi/aegis-redact/internal/metrics"
)

// Span is a sensitive text span identified by the caller, optionally
// labeled with a category such as "email" or "name".
type Span struct {
	Text     string
	Category string
}

// RedactAll replaces every occurrence of each span's text in the document
// with its placeholder. Spans go through the same mapping engine as Redact,
// so repeated spans and repeated calls stay referentially stable.
func (r *Redactor) RedactAll(text string, spans []Span) string {
	result := text
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		token := r.Redact(span.Text, span.Category)
		result = strings.ReplaceAll(result, span.Text, token)
	}
	return result
}

// RestoreStats describes the outcome of a Restore call
type RestoreStats struct {
	// Restored is the number of placeholders substituted with original text
	Restored int
	// NotFound is the number of placeholders with no mapping entry
	NotFound int
}

// Restore substitutes every known placeholder in the document with its
// original text. Unknown placeholders are left in place and counted in
// NotFound rather than treated as errors.
func (r *Redactor) Restore(text string) (string, RestoreStats) {
	var stats RestoreStats

	indices := r.gen.FindAllIndex(text)
	if len(indices) == 0 {
		return text, stats
	}

	// Replace from end to start so earlier indices stay valid
	sort.Slice(indices, func(i, j int) bool {
		return indices[i][0] > indices[j][0]
	})

	result := text
	for _, idx := range indices {
		start, end := idx[0], idx[1]
		token := text[start:end]

		if original, ok := r.store.Lookup(token); ok {
			result = result[:start] + original + result[end:]
			stats.Restored++
		} else {
			stats.NotFound++
		}
	}

	if stats.Restored > 0 {
		if r.metrics {
			metrics.PlaceholdersRestoredTotal.Add(float64(stats.Restored))
		}
		r.audit.LogPlaceholdersRestored(stats.Restored)
	}

	return result, stats
}
