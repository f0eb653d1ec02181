package app

import (
	"github.com/sirupsen/logrus"

	adapterrepo "github.com/eslsoft/trivnet/internal/adapter/repository"
	"github.com/eslsoft/trivnet/internal/adapter/terminal"
	"github.com/eslsoft/trivnet/internal/infrastructure/config"
	"github.com/eslsoft/trivnet/internal/usecase"
	"github.com/eslsoft/trivnet/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Console *terminal.Console
	Stats   *adapterrepo.StatsFileRepository
	Game    usecase.GameUsecase
	Report  usecase.ReportUsecase
	Backup  *backup.Service
}
