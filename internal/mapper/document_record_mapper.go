package mapper

import (
	"encoding/json"

	"po-intake-be/internal/entity"
	"po-intake-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentRecordMapper struct{}

func NewDocumentRecordMapper() *DocumentRecordMapper {
	return &DocumentRecordMapper{}
}

func (m *DocumentRecordMapper) ToEntity(r *model.DocumentRecord) *entity.DocumentRecord {
	if r == nil {
		return nil
	}

	var fields map[string]string
	if len(r.Fields) > 0 {
		// A malformed column yields a nil map rather than an error; the
		// field echo is informational.
		_ = json.Unmarshal(r.Fields, &fields)
	}

	return &entity.DocumentRecord{
		Id:            r.Id,
		UserId:        r.UserId,
		FolderId:      r.FolderId,
		Date:          r.Date,
		Status:        r.Status,
		Filename:      r.Filename,
		SubmitterKind: r.SubmitterKind,
		Fields:        fields,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *DocumentRecordMapper) ToModel(r *entity.DocumentRecord) *model.DocumentRecord {
	if r == nil {
		return nil
	}

	var fields datatypes.JSON
	if r.Fields != nil {
		data, _ := json.Marshal(r.Fields)
		fields = datatypes.JSON(data)
	}

	return &model.DocumentRecord{
		Id:            r.Id,
		UserId:        r.UserId,
		FolderId:      r.FolderId,
		Date:          r.Date,
		Status:        r.Status,
		Filename:      r.Filename,
		SubmitterKind: r.SubmitterKind,
		Fields:        fields,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *DocumentRecordMapper) ToEntities(records []*model.DocumentRecord) []*entity.DocumentRecord {
	entities := make([]*entity.DocumentRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
