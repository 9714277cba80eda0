package models

// ImportStatus is the processing state of an import job.
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// ImportJob records one CSV import, including its outcome.
type ImportJob struct {
	DefaultModel
	SourceName string       `json:"source_name"`
	ImportType string       `json:"import_type" gorm:"index"`
	Status     ImportStatus `json:"status" gorm:"index"`
	Message    string       `json:"message,omitempty"`
}
