package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/trivnet/internal/entity"
	"github.com/eslsoft/trivnet/internal/repository"
)

const (
	defaultAttemptBudget = 10
	defaultRetryDelay    = time.Second
)

// Prompter presents a question to the player and captures one answer.
type Prompter interface {
	Ask(ctx context.Context, q entity.Question) (string, error)
}

// RoundResult reports what happened in a played round.
type RoundResult struct {
	Question entity.Question
	Answer   string
	Correct  bool
}

// GameUsecase runs a single question round against the stats history.
type GameUsecase interface {
	PlayRound(ctx context.Context) (*RoundResult, error)
}

// GameOption tweaks round behaviour.
type GameOption func(*gameUsecase)

// WithAttemptBudget overrides how many fetches a round may spend hunting for
// an unasked question.
func WithAttemptBudget(attempts int) GameOption {
	return func(u *gameUsecase) {
		if attempts > 0 {
			u.attempts = attempts
		}
	}
}

// WithRetryDelay overrides the pause between consecutive fetch attempts.
func WithRetryDelay(delay time.Duration) GameOption {
	return func(u *gameUsecase) {
		if delay >= 0 {
			u.delay = delay
		}
	}
}

// NewGameUsecase wires the stats store, question source and prompter with
// default round behaviour.
func NewGameUsecase(stats repository.StatsRepository, source repository.QuestionSource, prompter Prompter, logger *logrus.Logger, opts ...GameOption) GameUsecase {
	u := &gameUsecase{
		stats:    stats,
		source:   source,
		prompter: prompter,
		logger:   logger,
		attempts: defaultAttemptBudget,
		delay:    defaultRetryDelay,
		randInt:  rand.Intn,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type gameUsecase struct {
	stats    repository.StatsRepository
	source   repository.QuestionSource
	prompter Prompter
	logger   *logrus.Logger

	attempts int
	delay    time.Duration

	randInt func(n int) int
	sleep   func(ctx context.Context, d time.Duration) error
}

// PlayRound loads the history, finds a question not asked before, asks it,
// and records the outcome. A wrong or unrecognized answer is a normal result,
// not an error.
func (u *gameUsecase) PlayRound(ctx context.Context) (*RoundResult, error) {
	doc, err := u.stats.Load(ctx)
	if err != nil {
		return nil, err
	}

	question, err := u.nextQuestion(ctx, doc)
	if err != nil {
		return nil, err
	}

	answer, err := u.prompter.Ask(ctx, question)
	if err != nil {
		return nil, err
	}

	result := &RoundResult{
		Question: question,
		Answer:   answer,
		Correct:  question.IsCorrect(answer),
	}

	doc.RecordAnswer(question.Category, result.Correct)
	doc.RecordAskedQuestion(question.Text)

	if err := u.stats.Save(ctx, doc); err != nil {
		return nil, err
	}

	return result, nil
}

// nextQuestion draws random categories until it finds a question that is not
// in the asked history yet, pausing between attempts. Once the attempt budget
// is spent it gives up with entity.ErrSourceExhausted.
func (u *gameUsecase) nextQuestion(ctx context.Context, doc *entity.StatsDocument) (entity.Question, error) {
	var lastErr error

	for attempt := 1; attempt <= u.attempts; attempt++ {
		if attempt > 1 {
			if err := u.sleep(ctx, u.delay); err != nil {
				return entity.Question{}, err
			}
		}

		category := repository.CategoryMin + u.randInt(repository.CategoryMax-repository.CategoryMin+1)

		question, err := u.source.FetchOne(ctx, category)
		if err != nil {
			lastErr = err
			u.logger.Warnf("fetch question failed (attempt %d, category %d): %v", attempt, category, err)
			continue
		}

		if doc.HasAsked(question.Text) {
			lastErr = fmt.Errorf("already asked: %q", question.Text)
			u.logger.Debugf("question already asked (attempt %d, category %d)", attempt, category)
			continue
		}

		return question, nil
	}

	return entity.Question{}, fmt.Errorf("%w after %d attempts: %v", entity.ErrSourceExhausted, u.attempts, lastErr)
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
