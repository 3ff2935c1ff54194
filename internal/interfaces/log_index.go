package interfaces

import "github.com/ternarybob/yangreport/internal/models"

// LogIndex resolves the execution-log block recorded for a test
type LogIndex interface {
	// Lookup returns the record for a raw test name
	Lookup(testName string) (*models.LogRecord, bool)

	// Len returns the number of indexed blocks
	Len() int
}
