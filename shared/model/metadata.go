package model

import "time"

// Metadata is embedded by every table model for the audit columns.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedAt time.Time `db:"modified_at"`
	ModifiedBy string    `db:"modified_by"`
}

// NewMetadata stamps a row created by actor at now.
func NewMetadata(actor string, now time.Time) Metadata {
	return Metadata{
		CreatedAt:  now,
		CreatedBy:  actor,
		ModifiedAt: now,
		ModifiedBy: actor,
	}
}
