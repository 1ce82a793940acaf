package logging

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(Options{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be a no-op when no level is configured")
	}
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")

	if err := Initialize(Options{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !GetLogger().Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestInitializeInvalidLevel(t *testing.T) {
	if err := Initialize(Options{Level: "chatty"}); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestInitializeWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xvgu.log")

	if err := Initialize(Options{Level: "info", File: path}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	Info("tower ready", zap.Int("layer", 2))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"tower ready"`) {
		t.Errorf("log file = %s, want JSON entry", data)
	}
}

func TestLogFrame(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)

	LogFrame(l, "out", []byte{0x1B, 0x03, 0x00, 0x01, 0x00, 0x04, 0x0D})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["hex"] != "1b03000100040d" {
		t.Errorf("hex = %v", fields["hex"])
	}
	if fields["direction"] != "out" {
		t.Errorf("direction = %v", fields["direction"])
	}

	// Long frames are logged whole.
	long := make([]byte, 300)
	long[299] = 0x0D
	LogFrame(l, "out", long)
	fields = logs.All()[1].ContextMap()
	if got := fields["hex"].(string); got != hex.EncodeToString(long) {
		t.Errorf("hex of 300-byte frame has %d chars, want 600", len(got))
	}
	if fields["length"] != int64(300) {
		t.Errorf("length = %v", fields["length"])
	}

	// Nothing is logged when debug is disabled.
	quietCore, quietLogs := observer.New(zapcore.InfoLevel)
	LogFrame(zap.New(quietCore), "in", []byte{0x00})
	if quietLogs.Len() != 0 {
		t.Errorf("got %d entries at info level, want 0", quietLogs.Len())
	}
}
