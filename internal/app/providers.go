package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/trivnet/internal/infrastructure/config"
	"github.com/eslsoft/trivnet/internal/repository"
	"github.com/eslsoft/trivnet/internal/usecase"
	"github.com/eslsoft/trivnet/internal/usecase/backup"
)

// provideGameUsecase applies the configured attempt budget and retry delay.
func provideGameUsecase(
	cfg *config.Config,
	stats repository.StatsRepository,
	source repository.QuestionSource,
	prompter usecase.Prompter,
	logger *logrus.Logger,
) usecase.GameUsecase {
	var opts []usecase.GameOption
	if cfg.Game.Attempts > 0 {
		opts = append(opts, usecase.WithAttemptBudget(cfg.Game.Attempts))
	}
	if cfg.Game.RetryDelay > 0 {
		opts = append(opts, usecase.WithRetryDelay(cfg.Game.RetryDelay))
	}
	return usecase.NewGameUsecase(stats, source, prompter, logger, opts...)
}

func provideBackupService(stats repository.StatsRepository) (*backup.Service, error) {
	return backup.NewService(stats)
}
