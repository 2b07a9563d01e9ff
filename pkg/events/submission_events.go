package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeSubmissionCompleted = "SUBMISSION_COMPLETED"
	TypeSubmissionFailed    = "SUBMISSION_FAILED"
)

// NewSubmissionCompleted announces that a submission passed the whole
// pipeline: files uploaded, workflow notified, tracking row registered.
func NewSubmissionCompleted(correlationId uuid.UUID, submitterKind string, files []string) Event {
	return BaseEvent{
		Type: TypeSubmissionCompleted,
		Data: map[string]interface{}{
			"correlation_id": correlationId.String(),
			"submitter_kind": submitterKind,
			"files":          files,
		},
		OccurredAt: time.Now(),
	}
}

// NewSubmissionFailed announces a submission that died mid-saga. Stage names
// how far it got; orphaned blobs are reconciled manually by correlation id.
func NewSubmissionFailed(correlationId uuid.UUID, stage, reason string) Event {
	return BaseEvent{
		Type: TypeSubmissionFailed,
		Data: map[string]interface{}{
			"correlation_id": correlationId.String(),
			"stage":          stage,
			"reason":         reason,
		},
		OccurredAt: time.Now(),
	}
}
