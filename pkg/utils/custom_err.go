package utils

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrPlanNotFound            = errors.New("plan not found")
	ErrDatabaseError           = errors.New("database error")
	ErrUnexpectedBehaviorOfAI  = errors.New("unexpected behavior of AI")
	ErrMalformedStructuredData = errors.New("structured block could not be decoded")
	ErrNoRecognizableContent   = errors.New("no structured block or day heading found")
	ErrToolOnlyResponse        = errors.New("agent returned a tool trace without a final answer")
	ErrUpstreamUnavailable     = errors.New("language model is not configured or unavailable")
	ErrRetrievalDisabled       = errors.New("retrieval backend is not configured")
	ErrPersistenceDisabled     = errors.New("plan storage is not configured")
)
