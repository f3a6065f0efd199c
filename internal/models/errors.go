package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates an empty or malformed question. It is detected
// before any upstream service is contacted and maps to a 400 response.
var ErrInvalidInput = errors.New("question must not be empty")

// ErrRebuildInProgress is returned when a rebuild is requested while another
// rebuild is still running. Rebuilds are single-writer and callers must
// serialize invocations.
var ErrRebuildInProgress = errors.New("index rebuild already in progress")

// UpstreamOp identifies which outbound call failed. Embedding and completion
// failures have different retry implications for callers.
type UpstreamOp string

const (
	OpEmbed    UpstreamOp = "embed"
	OpComplete UpstreamOp = "complete"
)

// UpstreamError wraps an embedding or completion provider failure. The core
// does not retry; callers decide retry policy based on Op.
type UpstreamError struct {
	Op  UpstreamOp
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s call failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as an upstream failure for the given operation.
func NewUpstreamError(op UpstreamOp, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

// IndexingError indicates a failed corpus rebuild. The previous generation
// remains live; the caller is responsible for retry or alerting.
type IndexingError struct {
	Stage string // serialize, embed, store, swap
	Err   error
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("index rebuild failed during %s: %v", e.Stage, e.Err)
}

func (e *IndexingError) Unwrap() error {
	return e.Err
}

// NewIndexingError wraps err as a fatal rebuild failure at the given stage.
func NewIndexingError(stage string, err error) *IndexingError {
	return &IndexingError{Stage: stage, Err: err}
}
