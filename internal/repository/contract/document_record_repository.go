package contract

import (
	"context"

	"po-intake-be/internal/entity"
	"po-intake-be/internal/repository/specification"
)

type DocumentRecordRepository interface {
	Create(ctx context.Context, record *entity.DocumentRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
