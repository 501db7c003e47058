package storage

import "sync"

// MemoryStore is an in-memory implementation of MappingStore. Entries are
// created once and never updated or deleted; both indices live as long as
// the store instance.
type MemoryStore struct {
	mu      sync.RWMutex
	forward map[string]string // text -> placeholder
	reverse map[string]string // placeholder -> text
}

// NewMemoryStore creates a new in-memory mapping store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
}

// StoreIfAbsent inserts the pair unless text already has a forward entry.
// The whole check-then-insert runs under one lock so concurrent first
// redactions of the same text cannot insert divergent entries.
func (m *MemoryStore) StoreIfAbsent(text, placeholder string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.forward[text]; ok {
		return existing, false
	}

	m.forward[text] = placeholder
	m.reverse[placeholder] = text
	return placeholder, true
}

// Lookup retrieves the original text by its placeholder
func (m *MemoryStore) Lookup(placeholder string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.reverse[placeholder]
	return text, ok
}

// LookupByText retrieves the placeholder for a text value
func (m *MemoryStore) LookupByText(text string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	placeholder, ok := m.forward[text]
	return placeholder, ok
}

// Size returns the number of stored mappings
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.forward)
}

// ValidateIntegrity reports whether the forward and reverse indices are
// exact inverses: equal cardinality, every forward pair mirrored in the
// reverse index and vice versa. Any inconsistency yields false, never an
// error.
func (m *MemoryStore) ValidateIntegrity() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.forward) != len(m.reverse) {
		return false
	}

	for text, placeholder := range m.forward {
		if got, ok := m.reverse[placeholder]; !ok || got != text {
			return false
		}
	}

	for placeholder, text := range m.reverse {
		if got, ok := m.forward[text]; !ok || got != placeholder {
			return false
		}
	}

	return true
}

// Close releases resources. A no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
