package domain

import "time"

// RoundResult is one scored round within a session. Rows are insert-only;
// a retried round appends a second row for the same round_no rather than
// updating the first. Violations and entropy_value are reserved for future
// scorers, raw_score currently mirrors score.
type RoundResult struct {
	ID           string     `gorm:"column:result_id;primaryKey;size:64" json:"result_id"`
	SessionID    string     `gorm:"size:64;not null;index:idx_round_results_session_round,priority:1" json:"session_id"`
	Session      Session    `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	RoundNo      int        `gorm:"not null;index:idx_round_results_session_round,priority:2" json:"round_no"`
	Owner        string     `gorm:"size:64" json:"owner"`
	QuestionID   *string    `gorm:"size:64" json:"question_id"`
	Question     string     `gorm:"type:text" json:"question"`
	Answer       string     `gorm:"type:longtext" json:"answer"`
	RawScore     float64    `json:"raw_score"`
	Score        float64    `json:"score"`
	Passed       bool       `gorm:"not null" json:"passed"`
	Threshold    float64    `json:"threshold"`
	Violations   StringList `gorm:"type:json" json:"violations"`
	Metrics      JSONMap    `gorm:"type:json" json:"metrics"`
	Features     JSONMap    `gorm:"type:json" json:"features"`
	EntropyValue *float64   `json:"entropy_value"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (RoundResult) TableName() string { return "round_results" }
