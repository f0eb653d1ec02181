// Package repository provides file-backed persistence for game statistics.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/infrastructure/config"
)

// StatsFileRepository persists the stats document as pretty-printed JSON on
// local disk. Writes go through a temp file plus rename so a crash mid-write
// never leaves a half-written document behind.
type StatsFileRepository struct {
	path   string
	logger *logrus.Logger
}

// NewStatsFileRepository resolves the stats file location from config. An
// empty configured path falls back to a per-user file next to the executable.
func NewStatsFileRepository(cfg *config.Config, logger *logrus.Logger) (*StatsFileRepository, error) {
	path := strings.TrimSpace(cfg.Stats.Path)
	if path == "" {
		resolved, err := defaultStatsPath()
		if err != nil {
			return nil, fmt.Errorf("resolve stats path: %w", err)
		}
		path = resolved
	}

	return &StatsFileRepository{path: path, logger: logger}, nil
}

// defaultStatsPath builds <executable dir>/<executable>_stats_<username>.json.
func defaultStatsPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}

	current, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("look up current user: %w", err)
	}

	base := filepath.Base(exe)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(exe), fmt.Sprintf("%s_stats_%s.json", base, current.Username)), nil
}

// Path returns the resolved stats file location.
func (r *StatsFileRepository) Path() string { return r.path }

// Load reads the stats document, seeding a fresh one when no file exists yet.
func (r *StatsFileRepository) Load(ctx context.Context) (*entity.StatsDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debugf("stats file %s missing, starting fresh", r.path)
			return entity.NewStatsDocument(), nil
		}
		return nil, fmt.Errorf("read stats file: %w", err)
	}

	var doc entity.StatsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrCorruptStats, r.path, err)
	}

	doc.Normalize()
	return &doc, nil
}

// Save writes the document to a temp file in the target directory, then
// renames it over the old file.
func (r *StatsFileRepository) Save(ctx context.Context, doc *entity.StatsDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create stats directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp stats file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp stats file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp stats file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace stats file: %w", err)
	}

	return nil
}
