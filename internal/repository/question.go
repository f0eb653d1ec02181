package repository

import (
	"context"

	"github.com/eslsoft/trivnet/internal/entity"
)

// Bounds of the provider category id range used for random draws.
const (
	CategoryMin = 1
	CategoryMax = 31
)

// QuestionSource produces a single question for a numeric provider category.
type QuestionSource interface {
	FetchOne(ctx context.Context, category int) (entity.Question, error)
}
