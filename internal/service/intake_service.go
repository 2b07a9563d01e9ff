package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"po-intake-be/internal/dto"
	"po-intake-be/internal/pkg/logger"
	"po-intake-be/internal/repository/memory"
	"po-intake-be/internal/websocket"
	"po-intake-be/pkg/doccheck"
	"po-intake-be/pkg/events"
	"po-intake-be/pkg/intake"
	"po-intake-be/pkg/storage"

	"github.com/google/uuid"
)

// SpreadsheetChecker and DocumentChecker are the two validation gates.
type SpreadsheetChecker interface {
	Validate(data []byte) (*doccheck.SpreadsheetResult, error)
}

type DocumentChecker interface {
	Validate(data []byte) (*doccheck.PDFResult, error)
}

// ProgressSink receives saga progress for the client feed. The websocket hub
// implements it; a nil sink is allowed.
type ProgressSink interface {
	Publish(correlationId uuid.UUID, update websocket.ProgressUpdate)
}

// EventPublisher pushes lifecycle events to the external bus. May be nil when
// NATS is unavailable; intake keeps working without it.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IIntakeService interface {
	Start(ctx context.Context, userId string, req *dto.StartSubmissionRequest) (*dto.StartSubmissionResponse, error)
	SelectKind(ctx context.Context, id uuid.UUID, req *dto.SelectKindRequest) (*dto.SelectKindResponse, error)
	ValidateSpreadsheet(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.SpreadsheetValidationResponse, error)
	ValidateDocument(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.DocumentValidationResponse, error)
	ConfirmSignatures(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error)
	RejectSignatures(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error)
	ResetSpreadsheet(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error)
	ResetDocument(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error)
	AttachMaterial(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.AttachMaterialResponse, error)
	Submit(ctx context.Context, id uuid.UUID) (*dto.SubmitResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error)
}

type intakeService struct {
	store         memory.SubmissionStore
	spreadsheets  SpreadsheetChecker
	documents     DocumentChecker
	uploader      storage.Uploader
	orchestrator  IUploadOrchestrator
	publisher     IPublisherService
	eventBus      EventPublisher
	progress      ProgressSink
	logger        logger.ILogger
	uploadTimeout time.Duration
	maxMaterial   int64
}

func NewIntakeService(
	store memory.SubmissionStore,
	spreadsheets SpreadsheetChecker,
	documents DocumentChecker,
	uploader storage.Uploader,
	orchestrator IUploadOrchestrator,
	publisher IPublisherService,
	eventBus EventPublisher,
	progress ProgressSink,
	sysLogger logger.ILogger,
	uploadTimeout time.Duration,
	maxMaterialBytes int64,
) IIntakeService {
	return &intakeService{
		store:         store,
		spreadsheets:  spreadsheets,
		documents:     documents,
		uploader:      uploader,
		orchestrator:  orchestrator,
		publisher:     publisher,
		eventBus:      eventBus,
		progress:      progress,
		logger:        sysLogger,
		uploadTimeout: uploadTimeout,
		maxMaterial:   maxMaterialBytes,
	}
}

func (s *intakeService) session(id uuid.UUID) (*memory.Session, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("submission not found")
	}
	return sess, nil
}

func (s *intakeService) Start(ctx context.Context, userId string, req *dto.StartSubmissionRequest) (*dto.StartSubmissionResponse, error) {
	sub := intake.NewSubmission(userId)
	if req != nil {
		sub.ContactEmail = req.ContactEmail
	}

	s.store.Put(&memory.Session{Submission: sub})

	s.logger.Info("Intake", "Submission started", map[string]interface{}{
		"correlation_id": sub.CorrelationId.String(),
		"user_id":        userId,
	})

	return &dto.StartSubmissionResponse{
		CorrelationId: sub.CorrelationId,
		Stage:         string(sub.Stage),
	}, nil
}

func (s *intakeService) SelectKind(ctx context.Context, id uuid.UUID, req *dto.SelectKindRequest) (*dto.SelectKindResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sub := sess.Submission

	// The kind is selected once and locks the rest of the flow. The stage
	// check must run before anything touches the shared submission.
	if sub.Stage != intake.StageSelectKind {
		return nil, &intake.GuardError{Stage: sub.Stage, Event: intake.EventSelectKind, Reason: "kind already selected"}
	}

	sub.SubmitterKind = intake.SubmitterKind(req.Kind)
	stage, err := intake.Transition(sub, intake.EventSelectKind)
	if err != nil {
		return nil, err
	}
	s.store.Put(sess)

	return &dto.SelectKindResponse{Stage: string(stage)}, nil
}

func (s *intakeService) ValidateSpreadsheet(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.SpreadsheetValidationResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sub := sess.Submission

	if sub.Stage != intake.StageSpreadsheet {
		return nil, &intake.GuardError{Stage: sub.Stage, Event: intake.EventAcceptSpreadsheet, Reason: "not at spreadsheet stage"}
	}
	// Replacing an accepted file requires an explicit reset.
	if sub.Spreadsheet.Uploaded {
		return nil, &intake.GuardError{Stage: sub.Stage, Event: intake.EventAcceptSpreadsheet, Reason: "spreadsheet already accepted, reset first"}
	}

	result, err := s.spreadsheets.Validate(data)
	if err != nil {
		return nil, &intake.ValidationError{Document: "spreadsheet", Err: err}
	}
	if !result.Valid {
		return &dto.SpreadsheetValidationResponse{
			Valid:         false,
			MissingFields: result.Missing,
			Stage:         string(sub.Stage),
		}, nil
	}

	// The gate uploads immediately; submission only covers materials and
	// the downstream calls.
	if err := s.uploadPrimary(ctx, filename, data); err != nil {
		return nil, err
	}

	sub.Spreadsheet = intake.DocumentSlot{Filename: filename, Validated: true, Uploaded: true}
	sub.FieldMap = result.Fields
	if _, err := intake.Transition(sub, intake.EventAcceptSpreadsheet); err != nil {
		return nil, err
	}
	s.store.Put(sess)

	return &dto.SpreadsheetValidationResponse{
		Valid:  true,
		Fields: result.Fields,
		Stage:  string(sub.Stage),
	}, nil
}

func (s *intakeService) ValidateDocument(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.DocumentValidationResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sub := sess.Submission

	if sub.Stage != intake.StageDocument {
		return nil, &intake.GuardError{Stage: sub.Stage, Event: intake.EventConfirmSignatures, Reason: "not at document stage"}
	}
	if sub.Document.Uploaded {
		return nil, &intake.GuardError{Stage: sub.Stage, Event: intake.EventConfirmSignatures, Reason: "document already accepted, reset first"}
	}

	result, err := s.documents.Validate(data)
	if err != nil {
		return nil, &intake.ValidationError{Document: "document", Err: err}
	}
	if !result.Valid {
		return &dto.DocumentValidationResponse{
			Valid:         false,
			MissingFields: result.Missing,
			Stage:         string(sub.Stage),
		}, nil
	}

	if err := s.uploadPrimary(ctx, filename, data); err != nil {
		return nil, err
	}

	sub.Document = intake.DocumentSlot{Filename: filename, Validated: true, Uploaded: true}
	sub.ManualConfirmation = intake.ConfirmationUnset
	s.store.Put(sess)

	// The wizard holds here: signature presence is attested manually.
	return &dto.DocumentValidationResponse{
		Valid:                true,
		AwaitingConfirmation: true,
		Stage:                string(sub.Stage),
	}, nil
}

func (s *intakeService) uploadPrimary(ctx context.Context, filename string, data []byte) error {
	uctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	if err := s.uploader.Upload(uctx, storage.InboundPath(filename), data); err != nil {
		return &intake.UploadError{Stage: intake.SagaStagePrimary, Filename: filename, Err: err}
	}
	return nil
}

func (s *intakeService) ConfirmSignatures(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error) {
	return s.applyEvent(id, intake.EventConfirmSignatures)
}

func (s *intakeService) RejectSignatures(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error) {
	return s.applyEvent(id, intake.EventRejectSignatures)
}

func (s *intakeService) ResetSpreadsheet(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error) {
	return s.applyEvent(id, intake.EventResetSpreadsheet)
}

func (s *intakeService) ResetDocument(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error) {
	return s.applyEvent(id, intake.EventResetDocument)
}

func (s *intakeService) applyEvent(id uuid.UUID, ev intake.Event) (*dto.SubmissionStateResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	if _, err := intake.Transition(sess.Submission, ev); err != nil {
		return nil, err
	}
	s.store.Put(sess)

	return s.stateResponse(sess), nil
}

func (s *intakeService) AttachMaterial(ctx context.Context, id uuid.UUID, filename string, data []byte) (*dto.AttachMaterialResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sub := sess.Submission

	if sub.Stage != intake.StageMaterials {
		return nil, &intake.GuardError{Stage: sub.Stage, Event: intake.EventComplete, Reason: "not at materials stage"}
	}
	if int64(len(data)) > s.maxMaterial {
		return nil, fmt.Errorf("file too large (max %dMB)", s.maxMaterial/(1024*1024))
	}

	sess.Materials = append(sess.Materials, intake.Material{Filename: filename, Data: data})
	sub.AncillaryFiles = append(sub.AncillaryFiles, intake.AncillaryRef{Filename: filename, Size: int64(len(data))})
	s.store.Put(sess)

	return &dto.AttachMaterialResponse{
		Filename:      filename,
		Size:          int64(len(data)),
		MaterialCount: len(sess.Materials),
	}, nil
}

func (s *intakeService) Submit(ctx context.Context, id uuid.UUID) (*dto.SubmitResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sub := sess.Submission

	if sub.Stage != intake.StageMaterials {
		return nil, &intake.GuardError{Stage: sub.Stage, Event: intake.EventComplete, Reason: "not at materials stage"}
	}

	progress := func(stage intake.SagaStage, message string, failed bool) {
		if s.progress != nil {
			s.progress.Publish(sub.CorrelationId, websocket.ProgressUpdate{
				Stage:   string(stage),
				Message: message,
				Failed:  failed,
				At:      time.Now(),
			})
		}
		s.logger.Info("Intake", message, map[string]interface{}{
			"correlation_id": sub.CorrelationId.String(),
			"stage":          string(stage),
			"failed":         failed,
		})
	}

	result, err := s.orchestrator.Run(ctx, sub, sess.Materials, progress)
	if err != nil {
		// The session stays alive: retry is a manual re-trigger.
		if s.eventBus != nil {
			_ = s.eventBus.Publish(ctx, events.NewSubmissionFailed(
				sub.CorrelationId, string(intake.StageOf(err)), err.Error()))
		}
		return nil, err
	}

	if _, err := intake.Transition(sub, intake.EventComplete); err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, sub, result)
	s.store.Delete(id)

	warning := ""
	if len(result.FailedMaterials) > 0 {
		warning = fmt.Sprintf("partial success: materials failed to upload: %v", result.FailedMaterials)
	}

	return &dto.SubmitResponse{
		CorrelationId:   sub.CorrelationId,
		Stage:           string(sub.Stage),
		UploadedFiles:   result.UploadedFiles,
		FailedMaterials: result.FailedMaterials,
		PartialSuccess:  len(result.FailedMaterials) > 0,
		Warning:         warning,
	}, nil
}

// publishCompleted hands the finished submission to the background consumer
// and the external event bus. Failures here are logged, never surfaced: the
// submission itself succeeded.
func (s *intakeService) publishCompleted(ctx context.Context, sub *intake.Submission, result *SagaResult) {
	if s.publisher != nil {
		msg := dto.SubmissionCompletedMessage{
			CorrelationId: sub.CorrelationId,
			SubmitterKind: string(sub.SubmitterKind),
			ContactEmail:  sub.ContactEmail,
			Files:         result.UploadedFiles,
		}
		payload, _ := json.Marshal(msg)
		if err := s.publisher.Publish(ctx, payload); err != nil {
			s.logger.Error("Intake", "Failed to publish completion message", map[string]interface{}{
				"correlation_id": sub.CorrelationId.String(),
				"error":          err.Error(),
			})
		}
	}

	if s.eventBus != nil {
		event := events.NewSubmissionCompleted(sub.CorrelationId, string(sub.SubmitterKind), result.UploadedFiles)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Intake", "Failed to publish completion event", map[string]interface{}{
				"correlation_id": sub.CorrelationId.String(),
				"error":          err.Error(),
			})
		}
	}
}

func (s *intakeService) Get(ctx context.Context, id uuid.UUID) (*dto.SubmissionStateResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return s.stateResponse(sess), nil
}

func (s *intakeService) stateResponse(sess *memory.Session) *dto.SubmissionStateResponse {
	sub := sess.Submission

	confirmation := "unset"
	switch sub.ManualConfirmation {
	case intake.ConfirmationConfirmed:
		confirmation = "confirmed"
	case intake.ConfirmationRejected:
		confirmation = "rejected"
	}

	files := make([]dto.AncillaryFileInfo, 0, len(sub.AncillaryFiles))
	for _, f := range sub.AncillaryFiles {
		files = append(files, dto.AncillaryFileInfo{Filename: f.Filename, Size: f.Size})
	}

	return &dto.SubmissionStateResponse{
		CorrelationId:      sub.CorrelationId,
		Stage:              string(sub.Stage),
		SubmitterKind:      string(sub.SubmitterKind),
		Spreadsheet:        dto.DocumentSlotInfo{Filename: sub.Spreadsheet.Filename, Validated: sub.Spreadsheet.Validated, Uploaded: sub.Spreadsheet.Uploaded},
		Document:           dto.DocumentSlotInfo{Filename: sub.Document.Filename, Validated: sub.Document.Validated, Uploaded: sub.Document.Uploaded},
		ManualConfirmation: confirmation,
		AncillaryFiles:     files,
		Fields:             sub.FieldMap,
	}
}
