package models

import "time"

// FailureKind classifies a submission that never reached the display.
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureDecode    FailureKind = "decode"
)

// Failure is one entry on the diagnostic channel.
type Failure struct {
	ID           string
	SubmissionID string
	Method       string
	URL          string
	Kind         FailureKind
	Message      string
	OccurredAt   time.Time
}
