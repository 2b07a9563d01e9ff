package implementation

import (
	"context"
	"errors"

	"po-intake-be/internal/entity"
	"po-intake-be/internal/mapper"
	"po-intake-be/internal/model"
	"po-intake-be/internal/repository/contract"
	"po-intake-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DocumentRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentRecordMapper
}

func NewDocumentRecordRepository(db *gorm.DB) contract.DocumentRecordRepository {
	return &DocumentRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentRecordMapper(),
	}
}

func (r *DocumentRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRecordRepositoryImpl) Create(ctx context.Context, record *entity.DocumentRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentRecord, error) {
	var m model.DocumentRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentRecord, error) {
	var models []*model.DocumentRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DocumentRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
