package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The transport and pagination
// layers return these (optionally wrapped) so the orchestrator can translate
// them into run-level decisions.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist on the backend
// - ErrStalled: a paginated collection stopped advancing short of its total
// - ErrUnavailable: backend temporarily unavailable after the retry budget
var (
	ErrNotFound    = errors.New("not found")
	ErrStalled     = errors.New("pagination stalled")
	ErrUnavailable = errors.New("unavailable")
)
