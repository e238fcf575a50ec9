package models

import "time"

const (
	ImportStatusRunning   = "running"
	ImportStatusCompleted = "completed"
	ImportStatusAborted   = "aborted"
)

// ImportRun is the audit record of one pass of the historical importer.
type ImportRun struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RunTag     string     `gorm:"type:varchar(16);uniqueIndex;not null" json:"run_tag"`
	Source     string     `gorm:"type:varchar(255)" json:"source"`
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`
	Imported   int        `gorm:"not null" json:"imported"`
	Skipped    int        `gorm:"not null" json:"skipped"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
