package repository

import (
	"context"

	"github.com/eslsoft/trivnet/internal/entity"
)

// ReportQuery holds parameters for summarizing recorded stats.
type ReportQuery struct {
	FilterOrder
}

// StatsRepository persists the per-user stats document.
type StatsRepository interface {
	// Load returns the stored document, a fresh seeded one when nothing has
	// been persisted yet, or an error wrapping entity.ErrCorruptStats when
	// the stored document cannot be parsed.
	Load(ctx context.Context) (*entity.StatsDocument, error)
	// Save rewrites the whole document atomically.
	Save(ctx context.Context, doc *entity.StatsDocument) error
}
