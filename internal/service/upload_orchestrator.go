package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"po-intake-be/internal/entity"
	"po-intake-be/internal/pkg/logger"
	"po-intake-be/internal/repository/contract"
	"po-intake-be/pkg/intake"
	"po-intake-be/pkg/storage"
	"po-intake-be/pkg/workflow"

	"github.com/google/uuid"
)

// SagaResult records how far the submission got. It is filled in even when
// an error is returned so the caller can report partial progress.
type SagaResult struct {
	UploadedFiles   []string
	UploadedMats    []string
	FailedMaterials []string
	Notified        bool
	Registered      bool
}

// ProgressFunc receives one line per saga step for the user-facing feed.
type ProgressFunc func(stage intake.SagaStage, message string, failed bool)

// IUploadOrchestrator runs the non-transactional sequence against the three
// external systems: blob storage, the workflow engine and the tracking store.
// There is no compensation on mid-pipeline failure; orphaned blobs are a
// tolerated cost reconciled manually via the correlation identifier.
type IUploadOrchestrator interface {
	Run(ctx context.Context, sub *intake.Submission, materials []intake.Material, progress ProgressFunc) (*SagaResult, error)
}

type uploadOrchestrator struct {
	uploader      storage.Uploader
	notifier      workflow.Notifier
	records       contract.DocumentRecordRepository
	logger        logger.ILogger
	uploadTimeout time.Duration
}

func NewUploadOrchestrator(
	uploader storage.Uploader,
	notifier workflow.Notifier,
	records contract.DocumentRecordRepository,
	sysLogger logger.ILogger,
	uploadTimeout time.Duration,
) IUploadOrchestrator {
	return &uploadOrchestrator{
		uploader:      uploader,
		notifier:      notifier,
		records:       records,
		logger:        sysLogger,
		uploadTimeout: uploadTimeout,
	}
}

func (o *uploadOrchestrator) Run(ctx context.Context, sub *intake.Submission, materials []intake.Material, progress ProgressFunc) (*SagaResult, error) {
	if progress == nil {
		progress = func(intake.SagaStage, string, bool) {}
	}
	result := &SagaResult{}

	// Stage 1: primary files. The wizard gates uploaded them already; a slot
	// that is not uploaded means the gate was bypassed, and nothing
	// downstream may run.
	for _, slot := range []struct {
		name string
		slot intake.DocumentSlot
	}{
		{"spreadsheet", sub.Spreadsheet},
		{"document", sub.Document},
	} {
		if !slot.slot.Accepted() {
			err := &intake.UploadError{
				Stage:    intake.SagaStagePrimary,
				Filename: slot.slot.Filename,
				Err:      fmt.Errorf("%s was not validated and uploaded", slot.name),
			}
			progress(intake.SagaStagePrimary, err.Error(), true)
			return result, err
		}
	}
	result.UploadedFiles = []string{sub.Spreadsheet.Filename, sub.Document.Filename}
	progress(intake.SagaStagePrimary, "primary documents uploaded", false)

	// Stage 2: ancillary materials, concurrently. A per-file failure does
	// not abort the batch; materials are supplementary.
	result.UploadedMats, result.FailedMaterials = o.uploadMaterials(ctx, sub.CorrelationId, materials)
	if len(result.FailedMaterials) > 0 {
		progress(intake.SagaStageMaterials,
			fmt.Sprintf("partial success: materials failed to upload: %v", result.FailedMaterials), false)
	} else if len(materials) > 0 {
		progress(intake.SagaStageMaterials, "materials uploaded", false)
	}

	// Stage 3: workflow notification. Failure aborts, files stay uploaded.
	notification := &workflow.Notification{
		TipoUsuario:          string(sub.SubmitterKind),
		Archivos:             result.UploadedFiles,
		DeseaSubirMateriales: len(materials) > 0,
		Materiales:           result.UploadedMats,
		Id:                   sub.CorrelationId.String(),
		Data:                 sub.FieldMap,
	}
	nctx, cancel := context.WithTimeout(ctx, o.uploadTimeout)
	err := o.notifier.Notify(nctx, notification)
	cancel()
	if err != nil {
		nerr := &intake.NotificationError{Err: err}
		progress(intake.SagaStageNotification, nerr.Error(), true)
		o.logError("workflow notification failed", sub.CorrelationId, err)
		return result, nerr
	}
	result.Notified = true
	progress(intake.SagaStageNotification, "workflow engine notified", false)

	// Stage 4: tracking registration. By now the workflow engine already
	// knows about the submission; a failure here is surfaced, not rolled
	// back.
	record := entity.DocumentRecord{
		Id:            uuid.New(),
		UserId:        sub.SubmitterId,
		FolderId:      sub.CorrelationId,
		Date:          time.Now(),
		Status:        entity.StatusUploaded,
		Filename:      sub.Document.Filename,
		SubmitterKind: string(sub.SubmitterKind),
		Fields:        sub.FieldMap,
		CreatedAt:     time.Now(),
	}
	if err := o.records.Create(ctx, &record); err != nil {
		rerr := &intake.RegistrationError{Err: err}
		progress(intake.SagaStageRegistration, rerr.Error(), true)
		o.logError("tracking registration failed", sub.CorrelationId, err)
		return result, rerr
	}
	result.Registered = true
	progress(intake.SagaStageRegistration, "submission registered", false)

	return result, nil
}

// uploadMaterials fans out one goroutine per file. Each upload carries its
// own timeout so a hung call cannot stall the saga indefinitely.
func (o *uploadOrchestrator) uploadMaterials(ctx context.Context, correlationId uuid.UUID, materials []intake.Material) (uploaded, failed []string) {
	uploaded = make([]string, 0, len(materials))
	failed = make([]string, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, m := range materials {
		wg.Add(1)
		go func(m intake.Material) {
			defer wg.Done()

			uctx, cancel := context.WithTimeout(ctx, o.uploadTimeout)
			defer cancel()

			err := o.uploader.Upload(uctx, storage.InboundPath(m.Filename), m.Data)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, m.Filename)
				o.logError("material upload failed", correlationId, errors.New(m.Filename+": "+err.Error()))
				return
			}
			uploaded = append(uploaded, m.Filename)
		}(m)
	}
	wg.Wait()

	sort.Strings(uploaded)
	sort.Strings(failed)
	return uploaded, failed
}

func (o *uploadOrchestrator) logError(message string, correlationId uuid.UUID, err error) {
	if o.logger == nil {
		return
	}
	o.logger.Error("Orchestrator", message, map[string]interface{}{
		"correlation_id": correlationId.String(),
		"error":          err.Error(),
	})
}
