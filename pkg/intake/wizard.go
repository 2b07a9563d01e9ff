package intake

import "fmt"

// Event drives the wizard. Each event either advances the submission one
// stage, performs a same-stage reset, or fails its guard.
type Event string

const (
	// EventSelectKind locks the submitter kind and opens the spreadsheet gate.
	EventSelectKind Event = "select_kind"

	// EventAcceptSpreadsheet advances once the spreadsheet passed schema
	// validation and was uploaded.
	EventAcceptSpreadsheet Event = "accept_spreadsheet"

	// EventConfirmSignatures is the manual attestation; it advances past the
	// document stage when the document itself has been accepted.
	EventConfirmSignatures Event = "confirm_signatures"

	// EventRejectSignatures is the manual veto: the uploaded document is
	// cleared and the wizard holds at the document stage for re-selection.
	EventRejectSignatures Event = "reject_signatures"

	// EventResetSpreadsheet and EventResetDocument are explicit same-stage
	// resets. An accepted document is never replaced silently.
	EventResetSpreadsheet Event = "reset_spreadsheet"
	EventResetDocument    Event = "reset_document"

	// EventComplete closes the wizard after the upload orchestrator reported
	// overall success.
	EventComplete Event = "complete"
)

// GuardError reports a transition whose guard predicate failed.
type GuardError struct {
	Stage  Stage
	Event  Event
	Reason string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("cannot apply %s at stage %s: %s", e.Event, e.Stage, e.Reason)
}

func guardFailed(sub *Submission, ev Event, reason string) (Stage, error) {
	return sub.Stage, &GuardError{Stage: sub.Stage, Event: ev, Reason: reason}
}

// Transition applies ev to sub. Guards are pure predicates over the current
// submission; side effects are limited to the submission itself. Backward
// navigation is not modeled.
func Transition(sub *Submission, ev Event) (Stage, error) {
	switch ev {
	case EventSelectKind:
		if sub.Stage != StageSelectKind {
			return guardFailed(sub, ev, "kind already selected")
		}
		if !sub.SubmitterKind.Valid() {
			return guardFailed(sub, ev, "submitter kind not set")
		}
		sub.Stage = StageSpreadsheet

	case EventAcceptSpreadsheet:
		if sub.Stage != StageSpreadsheet {
			return guardFailed(sub, ev, "not at spreadsheet stage")
		}
		if !sub.Spreadsheet.Accepted() {
			return guardFailed(sub, ev, "spreadsheet not validated and uploaded")
		}
		sub.Stage = StageDocument

	case EventConfirmSignatures:
		if sub.Stage != StageDocument {
			return guardFailed(sub, ev, "not at document stage")
		}
		if !sub.Document.Accepted() {
			return guardFailed(sub, ev, "document not validated and uploaded")
		}
		sub.ManualConfirmation = ConfirmationConfirmed
		sub.Stage = StageMaterials

	case EventRejectSignatures:
		if sub.Stage != StageDocument {
			return guardFailed(sub, ev, "not at document stage")
		}
		// Deliberate manual veto, independent of the text validator.
		sub.ManualConfirmation = ConfirmationRejected
		sub.Document.Clear()

	case EventResetSpreadsheet:
		if sub.Stage != StageSpreadsheet {
			return guardFailed(sub, ev, "not at spreadsheet stage")
		}
		sub.Spreadsheet.Clear()
		sub.FieldMap = nil

	case EventResetDocument:
		if sub.Stage != StageDocument {
			return guardFailed(sub, ev, "not at document stage")
		}
		sub.Document.Clear()
		sub.ManualConfirmation = ConfirmationUnset

	case EventComplete:
		if sub.Stage != StageMaterials {
			return guardFailed(sub, ev, "not at materials stage")
		}
		if sub.ManualConfirmation != ConfirmationConfirmed {
			return guardFailed(sub, ev, "signatures not confirmed")
		}
		sub.Stage = StageDone

	default:
		return guardFailed(sub, ev, "unknown event")
	}

	return sub.Stage, nil
}
