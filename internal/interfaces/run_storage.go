package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/yangreport/internal/models"
)

// ErrRunNotFound is returned when a run id is not in the history store
var ErrRunNotFound = errors.New("run not found")

// RunStorage persists the history of report runs
type RunStorage interface {
	// SaveRun inserts or replaces a run record
	SaveRun(ctx context.Context, run *models.RunRecord) error

	// GetRun retrieves a run by id, returns ErrRunNotFound if missing
	GetRun(ctx context.Context, id string) (*models.RunRecord, error)

	// ListRuns returns runs ordered by started_at DESC (limit <= 0 returns all)
	ListRuns(ctx context.Context, limit int) ([]*models.RunRecord, error)

	// DeleteRun removes a run, returns ErrRunNotFound if missing
	DeleteRun(ctx context.Context, id string) error

	// Close releases the underlying store
	Close() error
}
