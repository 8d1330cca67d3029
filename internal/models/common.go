package models

import "time"

// AuditFields holds the bookkeeping timestamps shared by all persisted rows.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
