// Package storage holds the bidirectional text/placeholder indices backing
// the redaction mapper.
package storage

// MappingStore defines the interface for storing redaction mappings.
// Implementations must keep the forward (text -> placeholder) and reverse
// (placeholder -> text) indices as exact inverses of each other.
type MappingStore interface {
	// StoreIfAbsent inserts the pair when text has no forward entry yet and
	// returns the stored placeholder. When text is already mapped, the
	// existing placeholder is returned and inserted is false (first write
	// wins). The check and insert happen atomically.
	StoreIfAbsent(text, placeholder string) (stored string, inserted bool)

	// Lookup retrieves the original text by its placeholder
	Lookup(placeholder string) (string, bool)

	// LookupByText retrieves the placeholder for a text value
	LookupByText(text string) (string, bool)

	// Size returns the number of stored mappings
	Size() int

	// ValidateIntegrity reports whether the two indices are exact inverses
	ValidateIntegrity() bool

	// Close releases any resources
	Close() error
}
