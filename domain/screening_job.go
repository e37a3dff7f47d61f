package domain

import "time"

// ScreeningJob statuses.
const (
	JobQueued     = "queued"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// ScreeningJob tracks one asynchronous screening request from the moment it
// is queued until the worker records the resulting session or a failure.
type ScreeningJob struct {
	ID        string    `gorm:"column:job_id;primaryKey;size:64" json:"job_id"`
	Status    string    `gorm:"size:16;not null;default:'queued'" json:"status"`
	Payload   JSONMap   `gorm:"type:json" json:"payload"`
	SessionID *string   `gorm:"size:64" json:"session_id"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ScreeningJob) TableName() string { return "screening_jobs" }
