package intake

import (
	"time"

	"github.com/google/uuid"
)

// SubmitterKind labels who is submitting. It locks the wording of the flow
// but not its logic.
type SubmitterKind string

const (
	SubmitterClient SubmitterKind = "cliente"
	SubmitterAgency SubmitterKind = "agencia"
)

func (k SubmitterKind) Valid() bool {
	return k == SubmitterClient || k == SubmitterAgency
}

// Confirmation is the manual attestation that the purchase-order PDF carries
// both required signatures. It is never computed automatically.
type Confirmation int

const (
	ConfirmationUnset Confirmation = iota
	ConfirmationConfirmed
	ConfirmationRejected
)

// Stage is the wizard position. Transitions are forward-only.
type Stage string

const (
	StageSelectKind  Stage = "select_kind"
	StageSpreadsheet Stage = "spreadsheet"
	StageDocument    Stage = "document"
	StageMaterials   Stage = "materials_and_submit"
	StageDone        Stage = "done"
)

// DocumentSlot tracks one of the two primary documents through its gate.
type DocumentSlot struct {
	Filename  string
	Validated bool
	Uploaded  bool
}

func (s DocumentSlot) Accepted() bool {
	return s.Validated && s.Uploaded
}

func (s *DocumentSlot) Clear() {
	*s = DocumentSlot{}
}

// AncillaryRef records an attached supplementary file. The bytes themselves
// are buffered by the session store until submission.
type AncillaryRef struct {
	Filename string
	Size     int64
}

// Material is an ancillary file with its content, ready for upload.
type Material struct {
	Filename string
	Data     []byte
}

// Submission is the unit of work moving through the pipeline. It is created
// when the wizard starts, mutated as each gate passes, and discarded once the
// orchestrator finishes; only the external systems keep state afterwards.
type Submission struct {
	CorrelationId      uuid.UUID
	SubmitterId        string
	ContactEmail       string
	SubmitterKind      SubmitterKind
	Spreadsheet        DocumentSlot
	Document           DocumentSlot
	AncillaryFiles     []AncillaryRef
	ManualConfirmation Confirmation
	Stage              Stage
	FieldMap           map[string]string
	CreatedAt          time.Time
}

// NewSubmission mints the correlation identifier. It is generated exactly
// once per submission attempt and reused across every external call.
func NewSubmission(submitterId string) *Submission {
	return &Submission{
		CorrelationId: uuid.New(),
		SubmitterId:   submitterId,
		Stage:         StageSelectKind,
		CreatedAt:     time.Now(),
	}
}
