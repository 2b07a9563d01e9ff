package entity

import (
	"time"

	"github.com/google/uuid"
)

// StatusUploaded is the only status this pipeline writes; downstream systems
// move the record further.
const StatusUploaded = "uploaded"

// DocumentRecord is the tracking row persisted at the end of a successful
// submission. FolderId is the correlation identifier and is the key for any
// later manual reconciliation.
type DocumentRecord struct {
	Id            uuid.UUID
	UserId        string
	FolderId      uuid.UUID
	Date          time.Time
	Status        string
	Filename      string
	SubmitterKind string
	Fields        map[string]string
	CreatedAt     time.Time
}
