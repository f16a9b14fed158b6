package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hackathon-manager/internal/app/rest"
	"hackathon-manager/internal/config"
	v1 "hackathon-manager/internal/http/v1"
	"hackathon-manager/internal/lib/logger/sl"
	"hackathon-manager/internal/lib/migrator"
	"hackathon-manager/internal/repo"
	"hackathon-manager/internal/service"
	"hackathon-manager/internal/storage/postgresql"
)

type App struct {
	log     *slog.Logger
	storage *postgresql.Storage
	restApp *rest.App
}

func MustNew(log *slog.Logger) *App {
	cfg := config.MustLoad()

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		log.Error("failed to run migrations", sl.Err(err))
		panic(err)
	}

	storage := postgresql.Init(cfg.Postgres)

	hackathonRepo := repo.NewHackathonRepo(storage.GetDB())
	teamRepo := repo.NewTeamRepo(storage.GetDB())
	submissionRepo := repo.NewSubmissionRepo(storage.GetDB())

	hackathonService := service.NewHackathonService(log, hackathonRepo)
	teamService := service.NewTeamService(log, teamRepo, hackathonRepo)
	submissionService := service.NewSubmissionService(log, submissionRepo, teamRepo, hackathonRepo)

	routerDependencies := v1.RouterDependencies{
		HackathonService:  hackathonService,
		TeamService:       teamService,
		SubmissionService: submissionService,
	}

	restApp := rest.New(
		log,
		&routerDependencies,
		cfg.Server.Port,
		cfg.Auth.Secret,
	)

	return &App{
		log:     log,
		storage: storage,
		restApp: restApp,
	}
}

func (a *App) MustRun() {
	const op = "app.MustRun"
	a.log.With(slog.String("op", op)).Info("starting application")

	if err := a.restApp.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func (a *App) GracefulShutdown() {
	const op = "app.GracefulShutdown"
	a.log.With(slog.String("op", op)).Info("shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.restApp.Stop(ctx); err != nil {
		a.log.Error("failed to stop HTTP server", sl.Err(err))
	}

	if a.storage != nil {
		a.storage.Close()
		a.log.Info("database connection closed")
	}
}
