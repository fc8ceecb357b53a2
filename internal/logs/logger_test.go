package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFanout(t *testing.T) {
	defer SetLevel("info")
	buf := new(bytes.Buffer)
	path := filepath.Join(t.TempDir(), "termfolio.log")

	logger, closer, err := New(Options{Console: buf, File: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("revealed", "section", "about")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "section=about") {
		t.Errorf("console missing record: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("file record is not json: %v", err)
	}
	if rec["msg"] != "revealed" || rec["section"] != "about" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestLevel(t *testing.T) {
	defer SetLevel("info")
	buf := new(bytes.Buffer)
	logger, _, _ := New(Options{Console: buf})

	if err := SetLevel("warn"); err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level not applied: %q", buf.String())
	}
	if Level() != slog.LevelWarn {
		t.Errorf("expected warn, got %v", Level())
	}

	if err := SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := SetLevel(""); err != nil || Level() != slog.LevelWarn {
		t.Error("empty level should keep the current one")
	}
}

func TestDiscard(t *testing.T) {
	logger, closer, err := New(Options{})
	if err != nil || logger == nil || closer.Close() != nil {
		t.Fatalf("expected discard logger, got %v", err)
	}
	logger.Error("nowhere")
}
