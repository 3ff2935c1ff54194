package common

import "errors"

// Error kinds surfaced by the report pipeline. Callers wrap these with context
// and test for them with errors.Is.
var (
	// ErrInputNotFound is returned when a required file or directory does not exist
	ErrInputNotFound = errors.New("input not found")
	// ErrMalformedDocument is returned when a JSON result document cannot be decoded
	ErrMalformedDocument = errors.New("malformed document")
	// ErrSchemaParse is returned when the validation schema YAML cannot be decoded
	ErrSchemaParse = errors.New("schema parse error")
	// ErrUnmappedTestName marks a test name without a <- ... -> path segment
	ErrUnmappedTestName = errors.New("test name has no path segment")
	// ErrSchemaGap marks a type or validation referenced by results but absent from the schema
	ErrSchemaGap = errors.New("schema gap")
	// ErrMetricCoercion marks a summary metric that could not be converted to an integer
	ErrMetricCoercion = errors.New("metric coercion failure")
	// ErrTemplateNotFound is returned when no override or embedded template exists
	ErrTemplateNotFound = errors.New("template not found")
)
