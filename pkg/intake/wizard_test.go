package intake

import (
	"errors"
	"testing"
)

func acceptedSlot(name string) DocumentSlot {
	return DocumentSlot{Filename: name, Validated: true, Uploaded: true}
}

func TestTransitionSelectKindRequiresKind(t *testing.T) {
	sub := NewSubmission("user-1")

	if _, err := Transition(sub, EventSelectKind); err == nil {
		t.Fatal("transition without kind should fail")
	}
	if sub.Stage != StageSelectKind {
		t.Errorf("stage = %s, want %s", sub.Stage, StageSelectKind)
	}

	sub.SubmitterKind = SubmitterClient
	stage, err := Transition(sub, EventSelectKind)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != StageSpreadsheet {
		t.Errorf("stage = %s, want %s", stage, StageSpreadsheet)
	}
}

func TestTransitionSpreadsheetGate(t *testing.T) {
	tests := []struct {
		name    string
		slot    DocumentSlot
		wantErr bool
	}{
		{"empty slot", DocumentSlot{}, true},
		{"validated only", DocumentSlot{Filename: "oc.xlsx", Validated: true}, true},
		{"uploaded only", DocumentSlot{Filename: "oc.xlsx", Uploaded: true}, true},
		{"accepted", acceptedSlot("oc.xlsx"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := NewSubmission("user-1")
			sub.SubmitterKind = SubmitterAgency
			sub.Stage = StageSpreadsheet
			sub.Spreadsheet = tt.slot

			_, err := Transition(sub, EventAcceptSpreadsheet)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransitionConfirmSignatures(t *testing.T) {
	sub := NewSubmission("user-1")
	sub.SubmitterKind = SubmitterClient
	sub.Stage = StageDocument
	sub.Document = acceptedSlot("oc.pdf")

	stage, err := Transition(sub, EventConfirmSignatures)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != StageMaterials {
		t.Errorf("stage = %s, want %s", stage, StageMaterials)
	}
	if sub.ManualConfirmation != ConfirmationConfirmed {
		t.Error("confirmation should be recorded")
	}
}

func TestTransitionConfirmBeforeDocumentAccepted(t *testing.T) {
	sub := NewSubmission("user-1")
	sub.Stage = StageDocument
	sub.Document = DocumentSlot{Filename: "oc.pdf", Validated: true}

	_, err := Transition(sub, EventConfirmSignatures)
	var guardErr *GuardError
	if !errors.As(err, &guardErr) {
		t.Fatalf("err = %v, want GuardError", err)
	}
	if sub.ManualConfirmation != ConfirmationUnset {
		t.Error("failed confirmation must not set the flag")
	}
}

func TestTransitionRejectSignaturesClearsDocument(t *testing.T) {
	sub := NewSubmission("user-1")
	sub.Stage = StageDocument
	sub.Document = acceptedSlot("oc.pdf")

	stage, err := Transition(sub, EventRejectSignatures)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The veto holds the wizard at the document stage for re-selection.
	if stage != StageDocument {
		t.Errorf("stage = %s, want %s", stage, StageDocument)
	}
	if sub.Document.Filename != "" || sub.Document.Uploaded || sub.Document.Validated {
		t.Errorf("document slot not cleared: %+v", sub.Document)
	}
	if sub.ManualConfirmation != ConfirmationRejected {
		t.Error("rejection should be recorded")
	}
}

func TestTransitionResetsAreSameStageOnly(t *testing.T) {
	sub := NewSubmission("user-1")
	sub.Stage = StageDocument
	sub.Spreadsheet = acceptedSlot("oc.xlsx")

	// The spreadsheet gate is already passed; resetting it from the
	// document stage would be a backward transition.
	if _, err := Transition(sub, EventResetSpreadsheet); err == nil {
		t.Fatal("reset of a passed stage should fail")
	}
	if !sub.Spreadsheet.Accepted() {
		t.Error("accepted spreadsheet must not be cleared")
	}

	sub.Document = acceptedSlot("oc.pdf")
	if _, err := Transition(sub, EventResetDocument); err != nil {
		t.Fatalf("same-stage reset failed: %v", err)
	}
	if sub.Document.Filename != "" {
		t.Error("document slot should be cleared by reset")
	}
}

func TestTransitionCompleteRequiresConfirmation(t *testing.T) {
	sub := NewSubmission("user-1")
	sub.Stage = StageMaterials
	sub.ManualConfirmation = ConfirmationUnset

	if _, err := Transition(sub, EventComplete); err == nil {
		t.Fatal("complete without confirmation should fail")
	}

	sub.ManualConfirmation = ConfirmationConfirmed
	stage, err := Transition(sub, EventComplete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != StageDone {
		t.Errorf("stage = %s, want %s", stage, StageDone)
	}
}

func TestTransitionForwardOnly(t *testing.T) {
	sub := NewSubmission("user-1")
	sub.SubmitterKind = SubmitterClient
	sub.Stage = StageMaterials

	// Earlier-stage events must all be rejected once the wizard moved on.
	for _, ev := range []Event{EventSelectKind, EventAcceptSpreadsheet, EventConfirmSignatures, EventRejectSignatures} {
		if _, err := Transition(sub, ev); err == nil {
			t.Errorf("event %s should fail at stage %s", ev, sub.Stage)
		}
	}
	if sub.Stage != StageMaterials {
		t.Errorf("stage moved to %s", sub.Stage)
	}
}

func TestCorrelationIdStableAcrossTransitions(t *testing.T) {
	sub := NewSubmission("user-1")
	id := sub.CorrelationId

	sub.SubmitterKind = SubmitterClient
	Transition(sub, EventSelectKind)
	sub.Spreadsheet = acceptedSlot("oc.xlsx")
	Transition(sub, EventAcceptSpreadsheet)
	sub.Document = acceptedSlot("oc.pdf")
	Transition(sub, EventConfirmSignatures)
	Transition(sub, EventComplete)

	if sub.CorrelationId != id {
		t.Error("correlation id must never change after creation")
	}
	if sub.Stage != StageDone {
		t.Errorf("stage = %s, want %s", sub.Stage, StageDone)
	}
}
