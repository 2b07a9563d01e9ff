package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUser filters tracking records by the external user id that submitted.
type ByUser struct {
	UserId string
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByFolder filters by the correlation identifier.
type ByFolder struct {
	FolderId uuid.UUID
}

func (s ByFolder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id = ?", s.FolderId)
}
