// resultsimport bulk-applies reviewer scores and reviews from a CSV results
// sheet to the submissions table, through the same update path the API uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"hackathon-manager/internal/config"
	"hackathon-manager/internal/importer"
	"hackathon-manager/internal/repo"
	"hackathon-manager/internal/service"
	"hackathon-manager/internal/storage/postgresql"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	path := flag.String("results", "results.csv", "path to the CSV results sheet (id,review,score)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.MustLoad()

	storage := postgresql.Init(cfg.Postgres)
	defer storage.Close()

	hackathonRepo := repo.NewHackathonRepo(storage.GetDB())
	teamRepo := repo.NewTeamRepo(storage.GetDB())
	submissionRepo := repo.NewSubmissionRepo(storage.GetDB())

	submissionService := service.NewSubmissionService(log, submissionRepo, teamRepo, hackathonRepo)

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("failed to open results sheet: %w", err)
	}
	defer f.Close()

	report, err := importer.New(log, submissionService).ImportCSV(context.Background(), f)
	if err != nil {
		return err
	}

	log.Info("import finished",
		slog.Int("applied", report.Applied),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", len(report.Failed.WrappedErrors())),
	)

	if reportErr := report.Err(); reportErr != nil {
		return fmt.Errorf("some rows failed:\n%w", reportErr)
	}

	return nil
}
