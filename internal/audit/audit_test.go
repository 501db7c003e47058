package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFileLogger(t *testing.T, level string) (*Logger, string) {
	t.Helper()

	logFile := filepath.Join(t.TempDir(), "audit.log")
	cfg := &Config{
		Enabled: true,
		Level:   level,
		Output:  logFile,
		Format:  "json",
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	return logger, logFile
}

func readLog(t *testing.T, logFile string) string {
	t.Helper()

	content, err := os.ReadFile(logFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestLogger_Log(t *testing.T) {
	logger, logFile := newFileLogger(t, "verbose")
	defer logger.Close()

	logger.LogMappingCreated("[REDACTED_EMAIL_a1b2c3d4]", "email")

	content := readLog(t, logFile)
	if !strings.Contains(content, "mapping_created") {
		t.Error("Log should contain 'mapping_created'")
	}
	if !strings.Contains(content, "[REDACTED_EMAIL_a1b2c3d4]") {
		t.Error("Log should contain the placeholder")
	}
	if !strings.Contains(content, "email") {
		t.Error("Log should contain the category")
	}
}

func TestLogger_NeverLogsText(t *testing.T) {
	logger, logFile := newFileLogger(t, "verbose")
	defer logger.Close()

	// The recorder API accepts placeholders and categories only, so the
	// sensitive value cannot appear in any event.
	logger.LogMappingCreated("[REDACTED_a1b2c3d4]", "")
	logger.LogLookupFailed("[REDACTED_deadbeef]")

	content := readLog(t, logFile)
	if strings.Contains(content, "John Doe") {
		t.Error("Log must never contain original text")
	}
}

func TestLogger_LogLevel_Minimal(t *testing.T) {
	logger, logFile := newFileLogger(t, "minimal")
	defer logger.Close()

	// Should NOT be logged at minimal level
	logger.LogMappingCreated("[REDACTED_00000001]", "name")
	logger.LogIntegrityChecked(true)

	// Should be logged
	logger.LogLookupFailed("[REDACTED_deadbeef]")
	logger.LogIntegrityChecked(false)

	content := readLog(t, logFile)
	if strings.Contains(content, "mapping_created") {
		t.Error("Should NOT contain mapping_created at minimal level")
	}
	if !strings.Contains(content, "lookup_failed") {
		t.Error("Should contain lookup_failed")
	}
	if !strings.Contains(content, `"ok":false`) {
		t.Error("Should contain the failed integrity check")
	}
}

func TestLogger_LogLevel_Standard(t *testing.T) {
	logger, logFile := newFileLogger(t, "standard")
	defer logger.Close()

	logger.LogMappingCreated("[REDACTED_00000001]", "name")
	logger.LogMappingReused("[REDACTED_00000001]")

	content := readLog(t, logFile)
	if !strings.Contains(content, "mapping_created") {
		t.Error("Should contain mapping_created at standard level")
	}
	if strings.Contains(content, "mapping_reused") {
		t.Error("Should NOT contain mapping_reused at standard level")
	}
}

func TestLogger_Disabled(t *testing.T) {
	logger, logFile := newFileLogger(t, "verbose")
	defer logger.Close()

	logger.Disable()
	logger.LogMappingCreated("[REDACTED_00000001]", "name")

	if content := readLog(t, logFile); content != "" {
		t.Errorf("Disabled logger wrote output: %q", content)
	}

	logger.Enable()
	logger.LogMappingCreated("[REDACTED_00000002]", "name")

	if content := readLog(t, logFile); !strings.Contains(content, "[REDACTED_00000002]") {
		t.Error("Re-enabled logger should write output")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewLogger(&Config{
		Enabled: true,
		Level:   "verbose",
		Output:  logFile,
		Format:  "text",
	})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer logger.Close()

	logger.LogPlaceholdersRestored(3)

	content := readLog(t, logFile)
	if !strings.Contains(content, "placeholder_restored") {
		t.Error("Text log should contain the event type")
	}
	if !strings.Contains(content, "count=3") {
		t.Error("Text log should contain the count attribute")
	}
}

func TestEvent_ToJSON(t *testing.T) {
	e := &Event{
		Type:        EventLookupFailed,
		Placeholder: "[REDACTED_deadbeef]",
		Error:       "placeholder not found",
	}

	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	if !strings.Contains(string(data), "lookup_failed") {
		t.Errorf("ToJSON() = %s, want it to contain the event type", data)
	}
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = NewNopRecorder()

	// Must be safe to call everything
	r.Log(&Event{Type: EventMappingCreated})
	r.LogMappingCreated("[REDACTED_00000001]", "name")
	r.LogMappingReused("[REDACTED_00000001]")
	r.LogPlaceholdersRestored(1)
	r.LogLookupFailed("[REDACTED_deadbeef]")
	r.LogIntegrityChecked(true)

	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
