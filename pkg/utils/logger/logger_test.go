package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAggregate(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("loaded %d vertices", 3)
	l.Warn("skipped %d lines", 1)
	l.Error("failed: %v", "boom")

	logs := buf.String()
	for _, expected := range []string{"INFO: ", "loaded 3 vertices", "WARN: ", "skipped 1 lines", "ERROR: ", "failed: boom"} {
		if !strings.Contains(logs, expected) {
			t.Errorf("expected logs to contain %q, got %q", expected, logs)
		}
	}
}

func TestNilAggregate(t *testing.T) {
	var l *Aggregate
	l.Info("nothing")
	l.Warn("nothing")
	l.Error("nothing")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkrank.log")

	l, file, err := Init(path)
	if err != nil {
		t.Fatalf("Init(): expected nil, got %v", err)
	}

	l.Info("hello")
	if err := file.Close(); err != nil {
		t.Fatalf("Close(): expected nil, got %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): expected nil, got %v", err)
	}

	// the timestamp sits between the prefix and the message
	for _, expected := range []string{"INFO: ", "hello"} {
		if !strings.Contains(string(content), expected) {
			t.Errorf("Init(): expected the log file to contain %q, got %q", expected, content)
		}
	}
}
