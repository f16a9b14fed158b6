// Package importer applies reviewer results from a CSV sheet to stored
// submissions. Row failures never stop the run; they are collected into a
// report the caller decides what to do with.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"hackathon-manager/internal/domain/models"
	"hackathon-manager/internal/lib/logger/sl"
)

// ResultApplier is the submission update path shared with the HTTP service.
type ResultApplier interface {
	ApplyResult(ctx context.Context, id int64, review string, score int) (models.Submission, error)
}

type Report struct {
	Applied int
	Skipped int
	Failed  *multierror.Error
}

// Err returns the collected row failures, or nil when every row applied.
func (r Report) Err() error {
	return r.Failed.ErrorOrNil()
}

type Importer struct {
	log     *slog.Logger
	applier ResultApplier
}

func New(log *slog.Logger, applier ResultApplier) *Importer {
	return &Importer{
		log:     log,
		applier: applier,
	}
}

// ImportCSV reads rows of (id, review, score) and applies each one.
// A non-numeric or empty score counts as 0. Rows with a negative id are
// skipped. The returned error covers only unreadable input; per-row
// failures live in the report.
func (imp *Importer) ImportCSV(ctx context.Context, r io.Reader) (Report, error) {
	const op = "importer.ImportCSV"

	log := imp.log.With(slog.String("op", op))

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Report{}, fmt.Errorf("%s: failed to read header: %w", op, err)
	}

	idCol, reviewCol, scoreCol, err := resolveColumns(header)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", op, err)
	}

	var report Report
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Failed = multierror.Append(report.Failed, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		id, err := strconv.ParseInt(record[idCol], 10, 64)
		if err != nil {
			report.Failed = multierror.Append(report.Failed, fmt.Errorf("line %d: invalid id %q", line, record[idCol]))
			continue
		}
		if id < 0 {
			report.Skipped++
			continue
		}

		review := record[reviewCol]

		// a blank or non-numeric score cell means "no score yet"
		score, err := strconv.Atoi(strings.TrimSpace(record[scoreCol]))
		if err != nil {
			score = 0
		}

		if _, err := imp.applier.ApplyResult(ctx, id, review, score); err != nil {
			log.Warn("failed to apply result", slog.Int64("submission_id", id), sl.Err(err))
			report.Failed = multierror.Append(report.Failed, fmt.Errorf("line %d (submission %d): %w", line, id, err))
			continue
		}

		log.Info("result applied", slog.Int64("submission_id", id), slog.Int("score", score))
		report.Applied++
	}

	return report, nil
}

func resolveColumns(header []string) (idCol, reviewCol, scoreCol int, err error) {
	idCol, reviewCol, scoreCol = -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			idCol = i
		case "review":
			reviewCol = i
		case "score":
			scoreCol = i
		}
	}
	if idCol < 0 || reviewCol < 0 || scoreCol < 0 {
		return 0, 0, 0, fmt.Errorf("header must contain id, review and score columns, got %v", header)
	}
	return idCol, reviewCol, scoreCol, nil
}
