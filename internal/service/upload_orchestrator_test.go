package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"po-intake-be/internal/entity"
	"po-intake-be/internal/repository/specification"
	"po-intake-be/pkg/intake"
	"po-intake-be/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTestTimeout = 2 * time.Second

type fakeUploader struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	failOn   map[string]error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string][]byte), failOn: make(map[string]error)}
}

func (f *fakeUploader) Upload(ctx context.Context, path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[path]; ok {
		return err
	}
	f.uploaded[path] = data
	return nil
}

type fakeNotifier struct {
	notifications []*workflow.Notification
	err           error
}

func (f *fakeNotifier) Notify(ctx context.Context, n *workflow.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, n)
	return nil
}

type fakeRecordRepository struct {
	created []*entity.DocumentRecord
	err     error
}

func (f *fakeRecordRepository) Create(ctx context.Context, record *entity.DocumentRecord) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, record)
	return nil
}

func (f *fakeRecordRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentRecord, error) {
	return f.created, nil
}

func (f *fakeRecordRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.created)), nil
}

func acceptedSubmission() *intake.Submission {
	sub := intake.NewSubmission("user-1")
	sub.SubmitterKind = intake.SubmitterClient
	sub.Stage = intake.StageMaterials
	sub.Spreadsheet = intake.DocumentSlot{Filename: "orden.xlsx", Validated: true, Uploaded: true}
	sub.Document = intake.DocumentSlot{Filename: "orden.pdf", Validated: true, Uploaded: true}
	sub.ManualConfirmation = intake.ConfirmationConfirmed
	sub.FieldMap = map[string]string{"NIT": "900123456"}
	return sub
}

func TestOrchestratorHappyPath(t *testing.T) {
	uploader := newFakeUploader()
	notifier := &fakeNotifier{}
	records := &fakeRecordRepository{}
	orch := NewUploadOrchestrator(uploader, notifier, records, nil, defaultTestTimeout)

	sub := acceptedSubmission()
	materials := []intake.Material{
		{Filename: "b.jpg", Data: []byte("b")},
		{Filename: "a.jpg", Data: []byte("a")},
	}

	result, err := orch.Run(context.Background(), sub, materials, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"orden.xlsx", "orden.pdf"}, result.UploadedFiles)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, result.UploadedMats)
	assert.Empty(t, result.FailedMaterials)
	assert.True(t, result.Notified)
	assert.True(t, result.Registered)

	require.Len(t, notifier.notifications, 1)
	n := notifier.notifications[0]
	assert.Equal(t, "cliente", n.TipoUsuario)
	assert.True(t, n.DeseaSubirMateriales)
	assert.Equal(t, sub.CorrelationId.String(), n.Id)
	assert.Equal(t, "900123456", n.Data["NIT"])

	require.Len(t, records.created, 1)
	rec := records.created[0]
	assert.Equal(t, sub.CorrelationId, rec.FolderId)
	assert.Equal(t, "orden.pdf", rec.Filename)
	assert.Equal(t, entity.StatusUploaded, rec.Status)
}

func TestOrchestratorPrimaryNotAcceptedAborts(t *testing.T) {
	uploader := newFakeUploader()
	notifier := &fakeNotifier{}
	records := &fakeRecordRepository{}
	orch := NewUploadOrchestrator(uploader, notifier, records, nil, defaultTestTimeout)

	sub := acceptedSubmission()
	sub.Document.Clear()

	_, err := orch.Run(context.Background(), sub, nil, nil)

	var uploadErr *intake.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, intake.SagaStagePrimary, uploadErr.Stage)
	assert.Empty(t, notifier.notifications)
	assert.Empty(t, records.created)
}

func TestOrchestratorMaterialFailureIsTolerated(t *testing.T) {
	uploader := newFakeUploader()
	uploader.failOn["EntradaDatosParaProcesar/broken.jpg"] = errors.New("503")
	notifier := &fakeNotifier{}
	records := &fakeRecordRepository{}
	orch := NewUploadOrchestrator(uploader, notifier, records, nil, defaultTestTimeout)

	sub := acceptedSubmission()
	materials := []intake.Material{
		{Filename: "ok.jpg", Data: []byte("x")},
		{Filename: "broken.jpg", Data: []byte("y")},
	}

	result, err := orch.Run(context.Background(), sub, materials, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"ok.jpg"}, result.UploadedMats)
	assert.Equal(t, []string{"broken.jpg"}, result.FailedMaterials)

	// The pipeline keeps going: notification and registration both happen.
	require.Len(t, notifier.notifications, 1)
	assert.Equal(t, []string{"ok.jpg"}, notifier.notifications[0].Materiales)
	assert.Len(t, records.created, 1)
}

func TestOrchestratorNotificationFailureStopsBeforeRegistration(t *testing.T) {
	uploader := newFakeUploader()
	notifier := &fakeNotifier{err: errors.New("engine down")}
	records := &fakeRecordRepository{}
	orch := NewUploadOrchestrator(uploader, notifier, records, nil, defaultTestTimeout)

	sub := acceptedSubmission()

	result, err := orch.Run(context.Background(), sub, nil, nil)

	var notifErr *intake.NotificationError
	require.ErrorAs(t, err, &notifErr)
	assert.False(t, result.Notified)
	assert.Empty(t, records.created, "registration must not run after a failed notification")
}

func TestOrchestratorRegistrationFailure(t *testing.T) {
	uploader := newFakeUploader()
	notifier := &fakeNotifier{}
	records := &fakeRecordRepository{err: errors.New("db down")}
	orch := NewUploadOrchestrator(uploader, notifier, records, nil, defaultTestTimeout)

	sub := acceptedSubmission()

	result, err := orch.Run(context.Background(), sub, nil, nil)

	var regErr *intake.RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.True(t, result.Notified, "notification already went out")
	assert.False(t, result.Registered)
	assert.Equal(t, intake.SagaStageRegistration, intake.StageOf(err))
}

func TestOrchestratorProgressFeed(t *testing.T) {
	uploader := newFakeUploader()
	notifier := &fakeNotifier{}
	records := &fakeRecordRepository{}
	orch := NewUploadOrchestrator(uploader, notifier, records, nil, defaultTestTimeout)

	sub := acceptedSubmission()

	var stages []intake.SagaStage
	progress := func(stage intake.SagaStage, message string, failed bool) {
		stages = append(stages, stage)
		assert.False(t, failed)
	}

	_, err := orch.Run(context.Background(), sub, nil, progress)
	require.NoError(t, err)

	assert.Equal(t, []intake.SagaStage{
		intake.SagaStagePrimary,
		intake.SagaStageNotification,
		intake.SagaStageRegistration,
	}, stages)
}
