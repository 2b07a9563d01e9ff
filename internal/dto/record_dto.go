package dto

import "time"

// RegisterRecordRequest mirrors the legacy tracking contract; field names are
// consumed by existing clients and must stay as they are. TipoUsuario and
// Data are optional so external rows can match what the saga path writes.
type RegisterRecordRequest struct {
	IdUser      string            `json:"iduser" validate:"required"`
	IdFolder    string            `json:"idfolder" validate:"required,uuid"`
	Fecha       time.Time         `json:"fecha" validate:"required"`
	Status      string            `json:"status" validate:"required"`
	Filename    string            `json:"filename" validate:"required"`
	TipoUsuario string            `json:"tipoUsuario" validate:"omitempty,oneof=cliente agencia"`
	Data        map[string]string `json:"data,omitempty"`
}

type RegisterRecordResponse struct {
	Id string `json:"id"`
}

type RecordResponse struct {
	Id            string            `json:"id"`
	IdUser        string            `json:"iduser"`
	IdFolder      string            `json:"idfolder"`
	Fecha         time.Time         `json:"fecha"`
	Status        string            `json:"status"`
	Filename      string            `json:"filename"`
	SubmitterKind string            `json:"submitter_kind,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}
