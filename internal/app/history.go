package app

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/models"
)

// ErrHistoryDisabled is returned by history queries when no store is configured
var ErrHistoryDisabled = errors.New("run history is disabled")

// recordRun stores the run in the history. Failures are logged, never fatal.
func (a *App) recordRun(ctx context.Context, run *Run, started time.Time) {
	if a.History == nil {
		return
	}

	record := &models.RunRecord{
		ID:         common.NewRunID(),
		Mode:       run.Mode,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Prefix:     run.Prefix,
		ModelName:  run.Report.ModelName,
		Inputs:     run.Inputs,
		Outputs:    run.Outputs,
		Skipped:    run.Skipped,
		Paths:      run.Report.Paths.Len(),
		TestsTotal: run.Testcase.Summary.TestsTotal,
		TestsPass:  run.Testcase.Summary.TestsPass,
		TestsFail:  run.Testcase.Summary.TestsFail,
	}

	if err := a.History.SaveRun(ctx, record); err != nil {
		a.Logger.Warn().Err(err).Str("prefix", run.Prefix).Msg("Failed to record run history")
		return
	}
	run.ID = record.ID
}

// ListHistory returns the most recent runs, newest first
func (a *App) ListHistory(ctx context.Context) ([]*models.RunRecord, error) {
	if a.History == nil {
		return nil, ErrHistoryDisabled
	}
	return a.History.ListRuns(ctx, a.Config.History.Limit)
}
