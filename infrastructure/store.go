package infrastructure

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"candidate-screener/domain"
)

// Store is the durable record of candidates, sessions and per-round
// results. Every method runs as its own transaction; nothing spans a full
// round or session.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// newID builds an opaque prefixed identifier, e.g. "sess_3f1c9a0b72de".
func newID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// UpsertCandidate inserts a candidate, or overwrites the mutable contact
// fields if the id already exists. An empty candidateID generates a fresh
// one. Returns the candidate id either way.
func (s *Store) UpsertCandidate(ctx context.Context, candidateID, fullName, email, phone, role string) (string, error) {
	cid := candidateID
	if cid == "" {
		cid = newID("cand")
	}

	var existing domain.Candidate
	err := s.db.WithContext(ctx).First(&existing, "candidate_id = ?", cid).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"full_name": fullName,
			"email":     email,
			"phone":     phone,
			"role":      role,
		}
		if err := s.db.WithContext(ctx).Model(&domain.Candidate{}).
			Where("candidate_id = ?", cid).
			Updates(updates).Error; err != nil {
			return "", err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		cand := domain.Candidate{
			ID:        cid,
			FullName:  fullName,
			Email:     email,
			Phone:     phone,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.db.WithContext(ctx).Create(&cand).Error; err != nil {
			return "", err
		}
	default:
		return "", err
	}

	return cid, nil
}

// CreateSession opens a fresh IN_PROGRESS session for the candidate.
func (s *Store) CreateSession(ctx context.Context, candidateID string) (string, error) {
	sess := domain.Session{
		ID:          newID("sess"),
		CandidateID: candidateID,
		Status:      domain.SessionInProgress,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", err
	}
	return sess.ID, nil
}

// SaveRoundResult appends one immutable round row. The store assigns the
// result id and created_at; reserved fields default to empty rather than
// NULL so the persisted shape stays stable.
func (s *Store) SaveRoundResult(ctx context.Context, rr *domain.RoundResult) (string, error) {
	rr.ID = newID("res")
	rr.CreatedAt = time.Now().UTC()
	if rr.Violations == nil {
		rr.Violations = domain.StringList{}
	}
	if rr.Metrics == nil {
		rr.Metrics = domain.JSONMap{}
	}
	if rr.Features == nil {
		rr.Features = domain.JSONMap{}
	}
	if err := s.db.WithContext(ctx).Create(rr).Error; err != nil {
		return "", err
	}
	return rr.ID, nil
}

// CompleteSession records the final score and decision and marks the
// session COMPLETED. The normal flow calls this exactly once per session.
func (s *Store) CompleteSession(ctx context.Context, sessionID string, finalScore float64, finalDecision string) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(&domain.Session{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":         domain.SessionCompleted,
			"final_score":    finalScore,
			"final_decision": finalDecision,
			"completed_at":   now,
		}).Error
}

// GetSession returns the session, or nil when it does not exist.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess domain.Session
	err := s.db.WithContext(ctx).First(&sess, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetRoundResults returns all rounds for a session ordered by round_no,
// then creation time; duplicate round numbers from retries keep insertion
// order.
func (s *Store) GetRoundResults(ctx context.Context, sessionID string) ([]domain.RoundResult, error) {
	var rounds []domain.RoundResult
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("round_no ASC, created_at ASC").
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}
	return rounds, nil
}

// ListSessions returns sessions newest first, optionally filtered by
// candidate. A non-positive limit falls back to 50.
func (s *Store) ListSessions(ctx context.Context, candidateID string, limit int) ([]domain.Session, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Model(&domain.Session{})
	if candidateID != "" {
		q = q.Where("candidate_id = ?", candidateID)
	}
	var sessions []domain.Session
	err := q.Order("created_at DESC").Limit(limit).Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateJob stores a queued screening job holding the raw request payload.
func (s *Store) CreateJob(ctx context.Context, payload domain.JSONMap) (string, error) {
	job := domain.ScreeningJob{
		ID:      newID("job"),
		Status:  domain.JobQueued,
		Payload: payload,
	}
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return "", err
	}
	return job.ID, nil
}

// GetJob returns the job, or nil when it does not exist.
func (s *Store) GetJob(ctx context.Context, jobID string) (*domain.ScreeningJob, error) {
	var job domain.ScreeningJob
	err := s.db.WithContext(ctx).First(&job, "job_id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkJobProcessing flags the job as picked up by the worker.
func (s *Store) MarkJobProcessing(ctx context.Context, jobID string) error {
	return s.updateJob(ctx, jobID, map[string]interface{}{"status": domain.JobProcessing})
}

// CompleteJob records the session produced by the job.
func (s *Store) CompleteJob(ctx context.Context, jobID, sessionID string) error {
	return s.updateJob(ctx, jobID, map[string]interface{}{
		"status":     domain.JobCompleted,
		"session_id": sessionID,
	})
}

// FailJob marks the job failed with a diagnostic message.
func (s *Store) FailJob(ctx context.Context, jobID, message string) error {
	return s.updateJob(ctx, jobID, map[string]interface{}{
		"status": domain.JobFailed,
		"error":  message,
	})
}

func (s *Store) updateJob(ctx context.Context, jobID string, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&domain.ScreeningJob{}).
		Where("job_id = ?", jobID).
		Updates(updates).Error
}
