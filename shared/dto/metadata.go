package dto

import (
	"parkflow/shared/constant"
	"parkflow/shared/model"
	"parkflow/shared/timezone"
)

// Metadata is the audit block rendered on every resource, in app time.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(meta.CreatedAt, constant.DateFormat),
		CreatedBy:  meta.CreatedBy,
		ModifiedAt: timezone.Format(meta.ModifiedAt, constant.DateFormat),
		ModifiedBy: meta.ModifiedBy,
	}
}
