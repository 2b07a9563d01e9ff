package service

import (
	"context"
	"fmt"
	"time"

	"po-intake-be/internal/dto"
	"po-intake-be/internal/entity"
	"po-intake-be/internal/repository/contract"
	"po-intake-be/internal/repository/specification"

	"github.com/google/uuid"
)

const defaultPageSize = 50

type IRecordService interface {
	Register(ctx context.Context, req *dto.RegisterRecordRequest) (*dto.RegisterRecordResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RecordResponse, error)
	GetByUser(ctx context.Context, userId string, page, limit int) ([]*dto.RecordResponse, error)
	GetByFolder(ctx context.Context, folderId uuid.UUID) ([]*dto.RecordResponse, error)
}

type recordService struct {
	records contract.DocumentRecordRepository
}

func NewRecordService(records contract.DocumentRecordRepository) IRecordService {
	return &recordService{records: records}
}

func (s *recordService) Register(ctx context.Context, req *dto.RegisterRecordRequest) (*dto.RegisterRecordResponse, error) {
	folderId, err := uuid.Parse(req.IdFolder)
	if err != nil {
		return nil, fmt.Errorf("invalid folder id: %w", err)
	}

	record := entity.DocumentRecord{
		Id:            uuid.New(),
		UserId:        req.IdUser,
		FolderId:      folderId,
		Date:          req.Fecha,
		Status:        req.Status,
		Filename:      req.Filename,
		SubmitterKind: req.TipoUsuario,
		Fields:        req.Data,
		CreatedAt:     time.Now(),
	}

	if err := s.records.Create(ctx, &record); err != nil {
		return nil, err
	}

	return &dto.RegisterRecordResponse{Id: record.Id.String()}, nil
}

func (s *recordService) Get(ctx context.Context, id uuid.UUID) (*dto.RecordResponse, error) {
	record, err := s.records.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("record not found")
	}
	return toRecordResponse(record), nil
}

func (s *recordService) GetByUser(ctx context.Context, userId string, page, limit int) ([]*dto.RecordResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	records, err := s.records.FindAll(ctx,
		specification.ByUser{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}
	return toRecordResponses(records), nil
}

// GetByFolder lists every record sharing one correlation id, the entry point
// for manual reconciliation of a half-finished submission.
func (s *recordService) GetByFolder(ctx context.Context, folderId uuid.UUID) ([]*dto.RecordResponse, error) {
	records, err := s.records.FindAll(ctx,
		specification.ByFolder{FolderId: folderId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toRecordResponses(records), nil
}

func toRecordResponse(r *entity.DocumentRecord) *dto.RecordResponse {
	return &dto.RecordResponse{
		Id:            r.Id.String(),
		IdUser:        r.UserId,
		IdFolder:      r.FolderId.String(),
		Fecha:         r.Date,
		Status:        r.Status,
		Filename:      r.Filename,
		SubmitterKind: r.SubmitterKind,
		Fields:        r.Fields,
	}
}

func toRecordResponses(records []*entity.DocumentRecord) []*dto.RecordResponse {
	result := make([]*dto.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, toRecordResponse(r))
	}
	return result
}
