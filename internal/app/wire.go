//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/trivnet/internal/adapter/opentdb"
	adapterrepo "github.com/eslsoft/trivnet/internal/adapter/repository"
	"github.com/eslsoft/trivnet/internal/adapter/terminal"
	"github.com/eslsoft/trivnet/internal/infrastructure/config"
	"github.com/eslsoft/trivnet/internal/infrastructure/logging"
	"github.com/eslsoft/trivnet/internal/repository"
	"github.com/eslsoft/trivnet/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var loggingSet = wire.NewSet(
	logging.NewLogger,
)

var repositorySet = wire.NewSet(
	adapterrepo.NewStatsFileRepository,
	wire.Bind(new(repository.StatsRepository), new(*adapterrepo.StatsFileRepository)),
)

var sourceSet = wire.NewSet(
	opentdb.NewClient,
	wire.Bind(new(repository.QuestionSource), new(*opentdb.Client)),
)

var consoleSet = wire.NewSet(
	terminal.NewConsole,
	wire.Bind(new(usecase.Prompter), new(*terminal.Console)),
)

var usecaseSet = wire.NewSet(
	provideGameUsecase,
	usecase.NewReportUsecase,
	provideBackupService,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		loggingSet,
		repositorySet,
		sourceSet,
		consoleSet,
		usecaseSet,
		wire.Struct(new(Container), "Config", "Logger", "Console", "Stats", "Game", "Report", "Backup"),
	)
	return nil, nil, nil
}
