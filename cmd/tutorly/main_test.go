package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func setupEnv(t *testing.T, seed string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	dsn := filepath.Join(dir, "roster.db")
	t.Setenv("TUTORLY_ENV_FILE", "")
	t.Setenv("TUTORLY_DATABASE_DSN", dsn)
	t.Setenv("TUTORLY_LOG_LEVEL", "info")
	t.Setenv("TUTORLY_LOG_FORMAT", "json")
	t.Setenv("TUTORLY_SEED_SAMPLE", seed)
	return dsn
}

func TestRun_SeedsSampleRosterOnFirstStart(t *testing.T) {
	setupEnv(t, "true")

	var out, logs bytes.Buffer
	if err := run(context.Background(), strings.NewReader("list\nexit\n"), &out, &logs); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	if !strings.Contains(out.String(), "1. #1 tutor Alex Yeoh") {
		t.Fatalf("expected sample roster in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "16. #16 student Chloe Ng") {
		t.Fatalf("expected all sample persons listed, got %q", out.String())
	}
	if !strings.Contains(logs.String(), `"msg":"seeded sample roster"`) {
		t.Fatalf("expected seed log entry, got %q", logs.String())
	}
}

func TestRun_PersistsChangesAcrossRestarts(t *testing.T) {
	setupEnv(t, "true")

	script := "match 1 4\nexit\n"
	if err := run(context.Background(), strings.NewReader(script), &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("first run returned error: %v", err)
	}

	var out, logs bytes.Buffer
	if err := run(context.Background(), strings.NewReader("list\n"), &out, &logs); err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if strings.Contains(logs.String(), "seeded sample roster") {
		t.Fatalf("expected existing roster not to be reseeded")
	}
	if !strings.Contains(out.String(), "#1 tutor Alex Yeoh | Mathematics | level 2-5 | price 30-45 | matched with #4") {
		t.Fatalf("expected match to survive restart, got %q", out.String())
	}
}

func TestRun_StartsEmptyWithoutSeeding(t *testing.T) {
	setupEnv(t, "false")

	var out bytes.Buffer
	if err := run(context.Background(), strings.NewReader("stats\n"), &out, &bytes.Buffer{}); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Tutor statistics") {
		t.Fatalf("expected statistics output, got %q", out.String())
	}
	if strings.Contains(out.String(), "Alex Yeoh") {
		t.Fatalf("expected empty roster, got %q", out.String())
	}
}

func TestRun_InvalidConfiguration(t *testing.T) {
	setupEnv(t, "maybe")

	err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "TUTORLY_SEED_SAMPLE") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
