package dto

import (
	"github.com/google/uuid"
)

type StartSubmissionRequest struct {
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

type StartSubmissionResponse struct {
	CorrelationId uuid.UUID `json:"correlation_id"`
	Stage         string    `json:"stage"`
}

type SelectKindRequest struct {
	Kind string `json:"kind" validate:"required,oneof=cliente agencia"`
}

type SelectKindResponse struct {
	Stage string `json:"stage"`
}

type DocumentSlotInfo struct {
	Filename  string `json:"filename"`
	Validated bool   `json:"validated"`
	Uploaded  bool   `json:"uploaded"`
}

type AncillaryFileInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type SubmissionStateResponse struct {
	CorrelationId      uuid.UUID           `json:"correlation_id"`
	Stage              string              `json:"stage"`
	SubmitterKind      string              `json:"submitter_kind,omitempty"`
	Spreadsheet        DocumentSlotInfo    `json:"spreadsheet"`
	Document           DocumentSlotInfo    `json:"document"`
	ManualConfirmation string              `json:"manual_confirmation"`
	AncillaryFiles     []AncillaryFileInfo `json:"ancillary_files"`
	Fields             map[string]string   `json:"fields,omitempty"`
}

// SpreadsheetValidationResponse echoes the extracted field map back to the
// client so the user can review what was read before moving on.
type SpreadsheetValidationResponse struct {
	Valid         bool              `json:"valid"`
	MissingFields []string          `json:"missing_fields,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
	Stage         string            `json:"stage"`
}

type DocumentValidationResponse struct {
	Valid                bool     `json:"valid"`
	MissingFields        []string `json:"missing_fields,omitempty"`
	AwaitingConfirmation bool     `json:"awaiting_confirmation"`
	Stage                string   `json:"stage"`
}

type AttachMaterialResponse struct {
	Filename      string `json:"filename"`
	Size          int64  `json:"size"`
	MaterialCount int    `json:"material_count"`
}

type SubmitResponse struct {
	CorrelationId   uuid.UUID `json:"correlation_id"`
	Stage           string    `json:"stage"`
	UploadedFiles   []string  `json:"uploaded_files"`
	FailedMaterials []string  `json:"failed_materials,omitempty"`
	PartialSuccess  bool      `json:"partial_success"`
	Warning         string    `json:"warning,omitempty"`
}

// SubmissionCompletedMessage travels over the internal event bus from the
// intake service to the background consumer.
type SubmissionCompletedMessage struct {
	CorrelationId uuid.UUID `json:"correlation_id"`
	SubmitterKind string    `json:"submitter_kind"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	Files         []string  `json:"files"`
}
