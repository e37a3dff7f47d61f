package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"candidate-screener/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, Migrate(db), "failed to migrate test schema")

	return NewStore(db)
}

func TestUpsertCandidateInsertThenOverwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cid, err := s.UpsertCandidate(ctx, "", "Ada Lovelace", "ada@example.com", "111", "Backend Engineer")
	require.NoError(t, err)
	assert.Contains(t, cid, "cand_")

	var created domain.Candidate
	require.NoError(t, s.db.First(&created, "candidate_id = ?", cid).Error)
	firstSeen := created.CreatedAt

	// Same id again: mutable fields overwritten in place, created_at kept.
	got, err := s.UpsertCandidate(ctx, cid, "Ada L.", "ada@new.example.com", "222", "Platform Engineer")
	require.NoError(t, err)
	assert.Equal(t, cid, got)

	var updated domain.Candidate
	require.NoError(t, s.db.First(&updated, "candidate_id = ?", cid).Error)
	assert.Equal(t, "Ada L.", updated.FullName)
	assert.Equal(t, "ada@new.example.com", updated.Email)
	assert.Equal(t, "222", updated.Phone)
	assert.Equal(t, "Platform Engineer", updated.Role)
	assert.WithinDuration(t, firstSeen, updated.CreatedAt, time.Second)
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cid, err := s.UpsertCandidate(ctx, "", "Bob", "", "", "Backend Engineer")
	require.NoError(t, err)

	sid, err := s.CreateSession(ctx, cid)
	require.NoError(t, err)
	assert.Contains(t, sid, "sess_")

	sess, err := s.GetSession(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, cid, sess.CandidateID)
	assert.Equal(t, domain.SessionInProgress, sess.Status)
	assert.Nil(t, sess.FinalScore)
	assert.Nil(t, sess.FinalDecision)
	assert.Nil(t, sess.CompletedAt)
}

func TestGetSessionAbsent(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.GetSession(context.Background(), "sess_nope")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSaveRoundResultRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cid, _ := s.UpsertCandidate(ctx, "", "Carol", "", "", "Backend Engineer")
	sid, _ := s.CreateSession(ctx, cid)

	rid, err := s.SaveRoundResult(ctx, &domain.RoundResult{
		SessionID: sid,
		RoundNo:   1,
		Owner:     "Interviewer L1",
		Question:  "Resume Screening",
		Answer:    "some resume text",
		RawScore:  72.5,
		Score:     72.5,
		Passed:    true,
		Threshold: 60.0,
		Features:  domain.JSONMap{"score": 72.5, "reason": "OK"},
	})
	require.NoError(t, err)
	assert.Contains(t, rid, "res_")

	rounds, err := s.GetRoundResults(ctx, sid)
	require.NoError(t, err)
	require.Len(t, rounds, 1)

	rr := rounds[0]
	assert.Equal(t, rid, rr.ID)
	assert.Equal(t, 1, rr.RoundNo)
	assert.Equal(t, "Interviewer L1", rr.Owner)
	assert.Equal(t, 72.5, rr.Score)
	assert.Equal(t, rr.RawScore, rr.Score)
	assert.True(t, rr.Passed)
	assert.Equal(t, 60.0, rr.Threshold)
	// Reserved fields come back as empty, never NULL-ish nils.
	assert.NotNil(t, rr.Violations)
	assert.Empty(t, rr.Violations)
	assert.NotNil(t, rr.Metrics)
	assert.Nil(t, rr.EntropyValue)
	// JSON payload survives the column round trip.
	assert.Equal(t, "OK", rr.Features["reason"])
	assert.Equal(t, 72.5, rr.Features["score"])
}

func TestGetRoundResultsOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cid, _ := s.UpsertCandidate(ctx, "", "Dave", "", "", "Backend Engineer")
	sid, _ := s.CreateSession(ctx, cid)

	// Insert out of order, including a duplicate round 1 (a retry simply
	// appends).
	for _, no := range []int{2, 1, 3, 1} {
		_, err := s.SaveRoundResult(ctx, &domain.RoundResult{
			SessionID: sid,
			RoundNo:   no,
			Owner:     "test",
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	rounds, err := s.GetRoundResults(ctx, sid)
	require.NoError(t, err)
	require.Len(t, rounds, 4)

	var order []int
	for _, rr := range rounds {
		order = append(order, rr.RoundNo)
	}
	assert.Equal(t, []int{1, 1, 2, 3}, order)
	// Duplicate round numbers keep insertion order.
	assert.True(t, rounds[0].CreatedAt.Before(rounds[1].CreatedAt))
}

func TestCompleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cid, _ := s.UpsertCandidate(ctx, "", "Eve", "", "", "Backend Engineer")
	sid, _ := s.CreateSession(ctx, cid)

	require.NoError(t, s.CompleteSession(ctx, sid, 88.5, domain.DecisionHire))

	sess, err := s.GetSession(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.SessionCompleted, sess.Status)
	require.NotNil(t, sess.FinalScore)
	assert.Equal(t, 88.5, *sess.FinalScore)
	require.NotNil(t, sess.FinalDecision)
	assert.Equal(t, domain.DecisionHire, *sess.FinalDecision)
	assert.NotNil(t, sess.CompletedAt)
}

func TestListSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, _ := s.UpsertCandidate(ctx, "", "Alice", "", "", "Backend Engineer")
	bob, _ := s.UpsertCandidate(ctx, "", "Bob", "", "", "Backend Engineer")

	var aliceSessions []string
	for i := 0; i < 3; i++ {
		sid, err := s.CreateSession(ctx, alice)
		require.NoError(t, err)
		aliceSessions = append(aliceSessions, sid)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := s.CreateSession(ctx, bob)
	require.NoError(t, err)

	// Newest first across all candidates.
	all, err := s.ListSessions(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, bob, all[0].CandidateID)

	// Candidate filter plus limit.
	got, err := s.ListSessions(ctx, alice, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, aliceSessions[2], got[0].ID)
	assert.Equal(t, aliceSessions[1], got[1].ID)
}

func TestJobLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jobID, err := s.CreateJob(ctx, domain.JSONMap{"resume_text": "hello"})
	require.NoError(t, err)
	assert.Contains(t, jobID, "job_")

	job, err := s.GetJob(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, domain.JobQueued, job.Status)
	assert.Equal(t, "hello", job.Payload["resume_text"])
	assert.Nil(t, job.SessionID)

	require.NoError(t, s.MarkJobProcessing(ctx, jobID))
	job, _ = s.GetJob(ctx, jobID)
	assert.Equal(t, domain.JobProcessing, job.Status)

	require.NoError(t, s.CompleteJob(ctx, jobID, "sess_abc123"))
	job, _ = s.GetJob(ctx, jobID)
	assert.Equal(t, domain.JobCompleted, job.Status)
	require.NotNil(t, job.SessionID)
	assert.Equal(t, "sess_abc123", *job.SessionID)
}

func TestFailJob(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jobID, err := s.CreateJob(ctx, domain.JSONMap{})
	require.NoError(t, err)

	require.NoError(t, s.FailJob(ctx, jobID, "broker unreachable"))

	job, err := s.GetJob(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, domain.JobFailed, job.Status)
	assert.Equal(t, "broker unreachable", job.Error)
}

func TestGetJobAbsent(t *testing.T) {
	s := newTestStore(t)

	job, err := s.GetJob(context.Background(), "job_missing")
	require.NoError(t, err)
	assert.Nil(t, job)
}
