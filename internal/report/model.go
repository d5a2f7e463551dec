package report

import (
	"time"

	"gorm.io/datatypes"
)

// Models lists every table of the report schema.
var Models = []interface{}{
	&Run{},
	&EventRecord{},
	&DiagnosticRecord{},
}

// Run is one invocation of the converter.
type Run struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
	Source        string    `json:"source" gorm:"size:255"`
	Variant       string    `json:"variant" gorm:"size:8"`
	FailurePolicy string    `json:"failurePolicy" gorm:"size:16"`
	Events        int       `json:"events"`
	Translated    int       `json:"translated"`
	Failed        int       `json:"failed"`
	Diagnostics   int       `json:"diagnostics"`
	DurationMs    int64     `json:"durationMs"`
	Aborted       bool      `json:"aborted"`
}

func (*Run) TableName() string {
	return "runs"
}

// EventRecord is the outcome of one event page within a run.
type EventRecord struct {
	ID       uint   `json:"id" gorm:"primarykey;autoIncrement"`
	RunID    string `json:"runId" gorm:"size:36;index:idx_event_run"`
	EventID  int    `json:"eventId" gorm:"index:idx_event_run"`
	Page     int    `json:"page"`
	Name     string `json:"name" gorm:"size:255"`
	Source   string `json:"source" gorm:"size:255"`
	Commands int    `json:"commands"`
	// Status is translated, failed or skipped
	Status string `json:"status" gorm:"size:16"`
	Text   string `json:"text" gorm:"type:text"`
}

func (*EventRecord) TableName() string {
	return "event_records"
}

// DiagnosticRecord is one diagnostic with the parameters of the row it
// points at.
type DiagnosticRecord struct {
	ID           uint           `json:"id" gorm:"primarykey;autoIncrement"`
	RunID        string         `json:"runId" gorm:"size:36;index"`
	EventID      int            `json:"eventId"`
	Page         int            `json:"page"`
	CommandIndex int            `json:"commandIndex"`
	Code         int            `json:"code"`
	Kind         string         `json:"kind" gorm:"size:32;index"`
	Message      string         `json:"message" gorm:"type:text"`
	Parameters   datatypes.JSON `json:"parameters"`
}

func (*DiagnosticRecord) TableName() string {
	return "diagnostic_records"
}
