package repository

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/infrastructure/config"
)

func newTestRepo(t *testing.T, path string) *StatsFileRepository {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{Stats: config.StatsConfig{Path: path}}
	repo, err := NewStatsFileRepository(cfg, logger)
	if err != nil {
		t.Fatalf("NewStatsFileRepository returned error: %v", err)
	}
	return repo
}

func TestLoadMissingFileSeedsFreshDocument(t *testing.T) {
	repo := newTestRepo(t, filepath.Join(t.TempDir(), "stats.json"))

	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(doc.Categories) != 0 {
		t.Fatalf("expected empty categories, got %v", doc.Categories)
	}
	want := []string{entity.SentinelQuestion}
	if !reflect.DeepEqual(doc.Questions, want) {
		t.Fatalf("expected seeded history %v, got %v", want, doc.Questions)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t, filepath.Join(t.TempDir(), "stats.json"))
	ctx := context.Background()

	doc := entity.NewStatsDocument()
	doc.RecordAnswer("Science and Nature", true)
	doc.RecordAnswer("Science and Nature", false)
	doc.RecordAnswer("History", true)
	doc.RecordAskedQuestion("An octopus has three hearts.")

	if err := repo.Save(ctx, doc); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !reflect.DeepEqual(loaded, doc) {
		t.Fatalf("round trip mismatch: saved %+v, loaded %+v", doc, loaded)
	}
}

func TestSaveWritesCapitalizedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	repo := newTestRepo(t, path)

	doc := entity.NewStatsDocument()
	doc.RecordAnswer("Mythology", true)

	if err := repo.Save(context.Background(), doc); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stats file: %v", err)
	}

	for _, key := range []string{`"Categories"`, `"Questions"`, `"Correct"`, `"Incorrect"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected persisted key %s in %s", key, data)
		}
	}
}

func TestLoadCorruptFileReturnsErrCorruptStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	repo := newTestRepo(t, path)
	_, err := repo.Load(context.Background())
	if !errors.Is(err, entity.ErrCorruptStats) {
		t.Fatalf("expected ErrCorruptStats, got %v", err)
	}
}

func TestLoadUpgradesLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	legacy := `{"Categories": {"History": {"Correct": 1, "Incorrect": 2}}}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	repo := newTestRepo(t, path)
	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if doc.Questions == nil || len(doc.Questions) != 0 {
		t.Fatalf("expected empty upgraded history, got %v", doc.Questions)
	}
	if got := doc.Categories["History"]; got.Correct != 1 || got.Incorrect != 2 {
		t.Fatalf("expected History tally preserved, got %+v", got)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo := newTestRepo(t, filepath.Join(dir, "stats.json"))

	doc := entity.NewStatsDocument()
	for i := 0; i < 3; i++ {
		doc.RecordAnswer("Geography", i%2 == 0)
		if err := repo.Save(context.Background(), doc); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "stats.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only stats.json, got %v", names)
	}
}
