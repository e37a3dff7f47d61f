package domain

import "time"

// Session statuses. A session moves IN_PROGRESS -> COMPLETED exactly once.
const (
	SessionInProgress = "IN_PROGRESS"
	SessionCompleted  = "COMPLETED"
)

// Final decisions recorded on a completed session.
const (
	DecisionHire   = "HIRE"
	DecisionHold   = "HOLD"
	DecisionReject = "REJECT"
)

// Session is one full screening attempt by one candidate. final_score,
// final_decision and completed_at stay NULL until completion.
type Session struct {
	ID            string     `gorm:"column:session_id;primaryKey;size:64" json:"session_id"`
	CandidateID   string     `gorm:"size:64;not null;index:idx_sessions_candidate" json:"candidate_id"`
	Candidate     Candidate  `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"-"`
	Status        string     `gorm:"size:16;not null" json:"status"`
	FinalScore    *float64   `json:"final_score"`
	FinalDecision *string    `gorm:"size:16" json:"final_decision"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

func (Session) TableName() string { return "sessions" }
