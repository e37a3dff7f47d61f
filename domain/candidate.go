package domain

import "time"

// Candidate is the identity record for one applicant. Rows are upserted by
// id: mutable contact fields are overwritten in place, created_at is kept.
type Candidate struct {
	ID        string    `gorm:"column:candidate_id;primaryKey;size:64" json:"candidate_id"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Email     string    `gorm:"size:255" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Role      string    `gorm:"size:255" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (Candidate) TableName() string { return "candidates" }
