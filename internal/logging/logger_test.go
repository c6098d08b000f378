package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	SetDefault(zerolog.New(&buf))

	logger := Component("transform")
	logger.Info().Msg("run started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if entry["cmp"] != "transform" {
		t.Errorf("cmp = %v, want transform", entry["cmp"])
	}
	if entry["message"] != "run started" {
		t.Errorf("message = %v, want run started", entry["message"])
	}
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New("warn", "", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer()

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Error("info should be filtered at warn level")
	}
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Error("warn should be logged")
	}

	if _, _, err := New("loud", "", &buf); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "redline.log")
	l, closer, err := New("debug", file, nil)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug().Str("k", "v").Msg("to file")
	closer()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"k":"v"`)) {
		t.Errorf("unexpected log file content %q", data)
	}
}

func TestContextValues(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithDocument(ctx, "note.md")

	if GetRunID(ctx) != "run-1" {
		t.Errorf("GetRunID = %q", GetRunID(ctx))
	}
	if GetDocument(ctx) != "note.md" {
		t.Errorf("GetDocument = %q", GetDocument(ctx))
	}
	if GetRunID(context.Background()) != "" {
		t.Error("expected empty run id")
	}
}

func TestContextHook(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New("info", "", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer()

	ctx := WithDocument(WithRunID(context.Background(), "run-7"), "draft.md")
	l.Info().Ctx(ctx).Msg("with context")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if entry["run"] != "run-7" {
		t.Errorf("run = %v, want run-7", entry["run"])
	}
	if entry["doc"] != "draft.md" {
		t.Errorf("doc = %v, want draft.md", entry["doc"])
	}

	buf.Reset()
	l.Info().Msg("plain")
	if bytes.Contains(buf.Bytes(), []byte(`"run"`)) {
		t.Errorf("unexpected run field in %q", buf.String())
	}
}
