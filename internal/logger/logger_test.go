package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOptionsWithDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	opts, err := Options{Filename: "  ", MaxBackups: 3}.withDefaults()
	if err != nil {
		t.Fatalf("defaults failed: %v", err)
	}
	if opts.Dir != filepath.Join(wd, "logs") || opts.Filename != "fandom-mart.log" {
		t.Fatalf("unexpected location %s/%s", opts.Dir, opts.Filename)
	}
	if opts.MaxSizeMB != 100 || opts.MaxBackups != 3 || opts.MaxAgeDays != 30 {
		t.Fatalf("unexpected rotation %+v", opts)
	}
}

func TestLogFilePathCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	path, err := logFilePath(Options{Dir: dir, Filename: "api.log"})
	if err != nil {
		t.Fatalf("log file path failed: %v", err)
	}
	if path != filepath.Join(dir, "api.log") {
		t.Fatalf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s failed: %v", path, err)
	}
	return string(content)
}

func TestReleaseModeWritesJSON(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "release.log"})
	log.Sugar().Infow("order_created", "order_no", "FM20261017000001")
	_ = log.Sync()

	content := readLog(t, filepath.Join(dir, "release.log"))
	for _, want := range []string{`"message":"order_created"`, `"order_no":"FM20261017000001"`, `"level":"info"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("log should contain %s, got %s", want, content)
		}
	}
}

func TestDebugModeSkipsFile(t *testing.T) {
	dir := t.TempDir()
	log := New("debug", Options{Dir: dir, Filename: "debug.log"})
	log.Debug("debug-only")
	_ = log.Sync()
	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create a log file")
	}
}

func TestNamedLoggerCarriesComponent(t *testing.T) {
	dir := t.TempDir()
	L = New("release", Options{Dir: dir, Filename: "named.log"})
	t.Cleanup(func() { L = nil })

	Named("cart").Infow("cart_persisted", "scope", "guest")
	SW("request_id", "req-9").Warnw("checkout_rejected")
	Sync()

	content := readLog(t, filepath.Join(dir, "named.log"))
	if !strings.Contains(content, `"logger":"cart"`) || !strings.Contains(content, `"request_id":"req-9"`) {
		t.Fatalf("expected component and request id, got %s", content)
	}
}
