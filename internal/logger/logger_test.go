package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestUseRoutesHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))

	Info("page visited", "page", 3)
	Warn("no connect controls")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "page visited" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["page"]; got != int64(3) {
		t.Fatalf("expected page=3, got %v", got)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %s", entries[1].Level)
	}
}

func TestInitWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	if err := Init(Options{Level: "debug", ToFile: true, FilePath: path}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Debug("hello file", "k", "v")
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello file"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	if err := Init(Options{Level: "loud"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Get().Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled at the fallback level")
	}
	if !Get().Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be enabled at the fallback level")
	}
}
