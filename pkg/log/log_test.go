package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"resource-hub-go/internal/config"
)

func restoreLogger(t *testing.T) {
	prev := sugar
	t.Cleanup(func() { sugar = prev })
}

func TestInitWritesJSONToOutputPath(t *testing.T) {
	restoreLogger(t)
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(config.LogConfig{Level: "info", Format: "json", OutputPath: dir}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Infow("resource uploaded", "resource_id", 7)
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"resource uploaded"`) || !strings.Contains(string(data), `"resource_id":7`) {
		t.Fatalf("unexpected log output %s", data)
	}
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	restoreLogger(t)
	if err := Init(config.LogConfig{Level: "verbose", Format: "console"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !sugar.Desugar().Core().Enabled(zap.InfoLevel) || sugar.Desugar().Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected info level")
	}
}
