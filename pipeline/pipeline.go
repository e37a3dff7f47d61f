package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"candidate-screener/domain"
	"candidate-screener/scoring"
)

// Store is the persistence surface the evaluator writes through.
// Implemented by infrastructure.Store.
type Store interface {
	UpsertCandidate(ctx context.Context, candidateID, fullName, email, phone, role string) (string, error)
	CreateSession(ctx context.Context, candidateID string) (string, error)
	SaveRoundResult(ctx context.Context, rr *domain.RoundResult) (string, error)
	CompleteSession(ctx context.Context, sessionID string, finalScore float64, finalDecision string) error
}

// Payload is the caller-supplied input for one full screening run. Each
// round scores its own field verbatim; no round feeds another.
type Payload struct {
	FullName         string                 `json:"full_name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	Role             string                 `json:"role"`
	ResumeText       string                 `json:"resume_text"`
	TechnicalAnswers map[string]interface{} `json:"technical_answers"`
	ScenarioAnswer   string                 `json:"scenario_answer"`
}

// Outcome is the aggregated result of a screening run. FailedAt names the
// level that short-circuited the run; Decision is set only when level 3 was
// reached. Levels past the failing one are absent.
type Outcome struct {
	FinalPass bool                     `json:"final_pass"`
	FailedAt  string                   `json:"failed_at,omitempty"`
	Decision  string                   `json:"decision,omitempty"`
	SessionID string                   `json:"session_id"`
	Level1    *scoring.Result          `json:"level1,omitempty"`
	Level2    *scoring.TechnicalResult `json:"level2,omitempty"`
	Level3    *scoring.Result          `json:"level3,omitempty"`
}

// Evaluator chains the three screening rounds over a persistence store,
// short-circuiting on the first failed round before level 3.
type Evaluator struct {
	store Store
}

func New(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// Evaluate runs one candidate end to end: upsert the candidate, open a
// fresh session, score and persist each round in order, and complete the
// session with a final decision. A failed level 1 or 2 completes the
// session as REJECT; level 3 always completes it, HIRE on pass and HOLD
// otherwise. Storage failures abort the run and propagate; already
// persisted rounds for the session are left intact.
func (e *Evaluator) Evaluate(ctx context.Context, payload Payload) (*Outcome, error) {
	fullName := payload.FullName
	if fullName == "" {
		fullName = "Unknown"
	}
	role := payload.Role
	if role == "" {
		role = "Backend Engineer"
	}

	candidateID, err := e.store.UpsertCandidate(ctx, "", fullName, payload.Email, payload.Phone, role)
	if err != nil {
		return nil, fmt.Errorf("upsert candidate: %w", err)
	}

	sessionID, err := e.store.CreateSession(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Round 1 — resume screening
	l1 := scoring.ScreenResume(payload.ResumeText)
	_, err = e.store.SaveRoundResult(ctx, &domain.RoundResult{
		SessionID: sessionID,
		RoundNo:   1,
		Owner:     "Interviewer L1",
		Question:  "Resume Screening",
		Answer:    payload.ResumeText,
		RawScore:  l1.Score,
		Score:     l1.Score,
		Passed:    l1.Pass,
		Threshold: scoring.Level1Threshold,
		Features:  domain.JSONMap(l1.Map()),
	})
	if err != nil {
		return nil, fmt.Errorf("save round 1: %w", err)
	}

	if !l1.Pass {
		if err := e.store.CompleteSession(ctx, sessionID, l1.Score, domain.DecisionReject); err != nil {
			return nil, fmt.Errorf("complete session: %w", err)
		}
		return &Outcome{FailedAt: "level1", SessionID: sessionID, Level1: &l1}, nil
	}

	// Round 2 — technical evaluation
	l2 := scoring.GradeTechnical(payload.TechnicalAnswers)
	l2Score := l2.ProbPass * 100.0
	answerJSON, err := json.Marshal(payload.TechnicalAnswers)
	if err != nil {
		return nil, fmt.Errorf("encode technical answers: %w", err)
	}
	_, err = e.store.SaveRoundResult(ctx, &domain.RoundResult{
		SessionID: sessionID,
		RoundNo:   2,
		Owner:     "Interviewer L2",
		Question:  "Technical Evaluation",
		Answer:    string(answerJSON),
		RawScore:  l2Score,
		Score:     l2Score,
		Passed:    l2.Pass,
		Threshold: scoring.Level2Threshold * 100,
		Metrics:   domain.JSONMap(l2.Map()),
	})
	if err != nil {
		return nil, fmt.Errorf("save round 2: %w", err)
	}

	if !l2.Pass {
		if err := e.store.CompleteSession(ctx, sessionID, l2Score, domain.DecisionReject); err != nil {
			return nil, fmt.Errorf("complete session: %w", err)
		}
		return &Outcome{FailedAt: "level2", SessionID: sessionID, Level1: &l1, Level2: &l2}, nil
	}

	// Round 3 — scenario reasoning; evaluated to completion either way
	l3 := scoring.AssessScenario(payload.ScenarioAnswer)
	_, err = e.store.SaveRoundResult(ctx, &domain.RoundResult{
		SessionID: sessionID,
		RoundNo:   3,
		Owner:     "Interviewer L3",
		Question:  "Scenario-Based Reasoning",
		Answer:    payload.ScenarioAnswer,
		RawScore:  l3.Score,
		Score:     l3.Score,
		Passed:    l3.Pass,
		Threshold: scoring.Level3Threshold,
		Metrics:   domain.JSONMap(l3.Map()),
	})
	if err != nil {
		return nil, fmt.Errorf("save round 3: %w", err)
	}

	decision := domain.DecisionHold
	if l3.Pass {
		decision = domain.DecisionHire
	}
	if err := e.store.CompleteSession(ctx, sessionID, l3.Score, decision); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	return &Outcome{
		FinalPass: l3.Pass,
		Decision:  decision,
		SessionID: sessionID,
		Level1:    &l1,
		Level2:    &l2,
		Level3:    &l3,
	}, nil
}
