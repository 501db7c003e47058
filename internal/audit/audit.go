// Package audit provides a structured audit trail for redaction mapping
// events. Events carry placeholders and categories, never the sensitive
// text itself.
package audit

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// EventType represents the type of audit event
type EventType string

const (
	EventMappingCreated      EventType = "mapping_created"
	EventMappingReused       EventType = "mapping_reused"
	EventPlaceholderRestored EventType = "placeholder_restored"
	EventLookupFailed        EventType = "lookup_failed"
	EventIntegrityChecked    EventType = "integrity_checked"
)

// Event represents an audit log event
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Category    string    `json:"category,omitempty"`
	Count       int       `json:"count,omitempty"`
	OK          bool      `json:"ok,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Config holds audit logger configuration
type Config struct {
	// Enabled enables/disables audit logging
	Enabled bool `yaml:"enabled"`

	// Level controls what events are logged
	// "minimal" - only failed lookups and integrity violations
	// "standard" - mapping creations plus everything in minimal
	// "verbose" - all events including mapping reuse
	Level string `yaml:"level"`

	// Output specifies where to write logs
	// "stdout", "stderr", or a file path
	Output string `yaml:"output"`

	// Format specifies log format: "json" or "text"
	Format string `yaml:"format"`
}

// DefaultConfig returns the default audit configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Level:   "standard",
		Output:  "stdout",
		Format:  "json",
	}
}

// Recorder is implemented by audit sinks
type Recorder interface {
	Log(event *Event)
	LogMappingCreated(placeholder, category string)
	LogMappingReused(placeholder string)
	LogPlaceholdersRestored(count int)
	LogLookupFailed(placeholder string)
	LogIntegrityChecked(ok bool)
	Close() error
}

// Logger handles audit logging
type Logger struct {
	mu      sync.RWMutex
	config  *Config
	logger  *slog.Logger
	output  io.Writer
	enabled bool
}

// NewLogger creates a new audit logger
func NewLogger(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	l := &Logger{
		config:  cfg,
		enabled: cfg.Enabled,
	}

	if err := l.setupOutput(); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Logger) setupOutput() error {
	var output io.Writer

	switch l.config.Output {
	case "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		// File output
		f, err := os.OpenFile(l.config.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		output = f
	}

	l.output = output

	var handler slog.Handler
	if l.config.Format == "json" {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	l.logger = slog.New(handler)
	return nil
}

// Log logs an audit event
func (l *Logger) Log(event *Event) {
	l.mu.RLock()
	enabled := l.enabled
	logger := l.logger
	l.mu.RUnlock()

	if !enabled || logger == nil {
		return
	}

	if !l.shouldLog(event) {
		return
	}

	event.Timestamp = time.Now()

	attrs := []any{
		slog.String("type", string(event.Type)),
	}

	if event.Placeholder != "" {
		attrs = append(attrs, slog.String("placeholder", event.Placeholder))
	}
	if event.Category != "" {
		attrs = append(attrs, slog.String("category", event.Category))
	}
	if event.Count > 0 {
		attrs = append(attrs, slog.Int("count", event.Count))
	}
	if event.Type == EventIntegrityChecked {
		attrs = append(attrs, slog.Bool("ok", event.OK))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	logger.Info("audit", attrs...)
}

func (l *Logger) shouldLog(event *Event) bool {
	switch l.config.Level {
	case "minimal":
		return event.Type == EventLookupFailed ||
			(event.Type == EventIntegrityChecked && !event.OK)
	case "standard":
		return event.Type != EventMappingReused
	case "verbose":
		return true
	default:
		return true
	}
}

// LogMappingCreated logs a new mapping entry
func (l *Logger) LogMappingCreated(placeholder, category string) {
	l.Log(&Event{
		Type:        EventMappingCreated,
		Placeholder: placeholder,
		Category:    category,
	})
}

// LogMappingReused logs a redact call that returned an existing placeholder
func (l *Logger) LogMappingReused(placeholder string) {
	l.Log(&Event{
		Type:        EventMappingReused,
		Placeholder: placeholder,
	})
}

// LogPlaceholdersRestored logs placeholder restorations in a document
func (l *Logger) LogPlaceholdersRestored(count int) {
	l.Log(&Event{
		Type:  EventPlaceholderRestored,
		Count: count,
	})
}

// LogLookupFailed logs a reverse lookup for an unknown placeholder
func (l *Logger) LogLookupFailed(placeholder string) {
	l.Log(&Event{
		Type:        EventLookupFailed,
		Placeholder: placeholder,
		Error:       "placeholder not found",
	})
}

// LogIntegrityChecked logs an integrity validation result
func (l *Logger) LogIntegrityChecked(ok bool) {
	l.Log(&Event{
		Type: EventIntegrityChecked,
		OK:   ok,
	})
}

// Enable enables audit logging
func (l *Logger) Enable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = true
}

// Disable disables audit logging
func (l *Logger) Disable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config.Level = level
}

// Close closes the logger
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if closer, ok := l.output.(io.Closer); ok {
		if l.output != os.Stdout && l.output != os.Stderr {
			return closer.Close()
		}
	}
	return nil
}

// ToJSON converts an event to JSON
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NopRecorder is a recorder that does nothing
type NopRecorder struct{}

// NewNopRecorder creates a no-op recorder
func NewNopRecorder() *NopRecorder {
	return &NopRecorder{}
}

// Log does nothing
func (r *NopRecorder) Log(_ *Event) {}

// LogMappingCreated does nothing
func (r *NopRecorder) LogMappingCreated(_, _ string) {}

// LogMappingReused does nothing
func (r *NopRecorder) LogMappingReused(_ string) {}

// LogPlaceholdersRestored does nothing
func (r *NopRecorder) LogPlaceholdersRestored(_ int) {}

// LogLookupFailed does nothing
func (r *NopRecorder) LogLookupFailed(_ string) {}

// LogIntegrityChecked does nothing
func (r *NopRecorder) LogIntegrityChecked(_ bool) {}

// Close does nothing
func (r *NopRecorder) Close() error { return nil }
