package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(Options{Dir: dir, Name: "test"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	logger.Info("hello from test")
	_ = logger.Sync()

	payload, err := os.ReadFile(filepath.Join(dir, "test.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(payload), "hello from test") {
		t.Fatalf("log file missing message: %s", payload)
	}
	if !strings.Contains(string(payload), `"timestamp"`) {
		t.Fatalf("log file not JSON encoded: %s", payload)
	}
}

func TestNewStdoutOnly(t *testing.T) {
	logger, err := New(Options{Debug: true})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level should be enabled")
	}
}

func TestFileSinkDefaultName(t *testing.T) {
	sink := FileSink("logs", "")
	if sink.Filename != filepath.Join("logs", "rtfilms.log") {
		t.Fatalf("Filename = %s", sink.Filename)
	}
}
