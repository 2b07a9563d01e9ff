package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DocumentRecord struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        string         `gorm:"type:varchar(255);not null;index"`
	FolderId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Date          time.Time      `gorm:"not null"`
	Status        string         `gorm:"type:varchar(50);not null"`
	Filename      string         `gorm:"type:varchar(512);not null"`
	SubmitterKind string         `gorm:"type:varchar(20);not null"`
	Fields        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (DocumentRecord) TableName() string {
	return "load_documents"
}
