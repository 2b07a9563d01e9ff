package intake

import "fmt"

// SagaStage marks how far the upload orchestrator got before failing. The
// marker reaches the user verbatim so partial progress is never lost; it
// stands in for automatic rollback, which the pipeline deliberately omits.
type SagaStage string

const (
	SagaStagePrimary      SagaStage = "primary_upload"
	SagaStageMaterials    SagaStage = "materials_upload"
	SagaStageNotification SagaStage = "workflow_notification"
	SagaStageRegistration SagaStage = "tracking_registration"
)

// ValidationError wraps a document check failure. It is resolved entirely
// within the wizard's gates and never reaches the orchestrator.
type ValidationError struct {
	Document string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %v", e.Document, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// UploadError is a storage failure. Recoverable: the user retries the step.
type UploadError struct {
	Stage    SagaStage
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// NotificationError means the workflow engine was unreachable or rejected the
// call. Files stay uploaded; there is no compensation.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("files uploaded, notification failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// RegistrationError means the tracking store rejected the record after the
// workflow engine was already notified. Terminal for automatic recovery;
// reconciliation happens manually by correlation id.
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("files uploaded, notification succeeded, registration failed: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// StageOf reports the saga stage an orchestrator error belongs to.
func StageOf(err error) SagaStage {
	switch e := err.(type) {
	case *UploadError:
		return e.Stage
	case *NotificationError:
		return SagaStageNotification
	case *RegistrationError:
		return SagaStageRegistration
	default:
		return ""
	}
}
