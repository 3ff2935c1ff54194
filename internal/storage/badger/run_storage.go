package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/yangreport/internal/interfaces"
	"github.com/ternarybob/yangreport/internal/models"
)

// RunStorage implements interfaces.RunStorage for Badger
type RunStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.RunStorage = (*RunStorage)(nil)

// NewRunStorage creates a run history store on an open database
func NewRunStorage(db *BadgerDB, logger arbor.ILogger) *RunStorage {
	return &RunStorage{
		db:     db,
		logger: logger,
	}
}

// SaveRun inserts or replaces a run record
func (s *RunStorage) SaveRun(ctx context.Context, run *models.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if run == nil || run.ID == "" {
		return errors.New("run record requires an id")
	}

	if err := s.db.Store().Upsert(run.ID, run); err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	s.logger.Debug().Str("run_id", run.ID).Str("mode", run.Mode).Msg("Saved run record")
	return nil
}

// GetRun retrieves a run by id
func (s *RunStorage) GetRun(ctx context.Context, id string) (*models.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var run models.RunRecord
	err := s.db.Store().Get(id, &run)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, interfaces.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns runs newest first. limit <= 0 returns every run.
func (s *RunStorage) ListRuns(ctx context.Context, limit int) ([]*models.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := badgerhold.Where("ID").Ne("").SortBy("StartedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var runs []models.RunRecord
	if err := s.db.Store().Find(&runs, query); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	result := make([]*models.RunRecord, len(runs))
	for i := range runs {
		result[i] = &runs[i]
	}
	return result, nil
}

// DeleteRun removes a run
func (s *RunStorage) DeleteRun(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Store().Delete(id, models.RunRecord{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("%s: %w", id, interfaces.ErrRunNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	s.logger.Debug().Str("run_id", id).Msg("Deleted run record")
	return nil
}

// Close closes the underlying database
func (s *RunStorage) Close() error {
	return s.db.Close()
}
