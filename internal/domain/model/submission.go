// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/vpchung/challengescoring/internal/domain/frame"
)

// Submission is a participant's prediction file as received by the harness.
type Submission struct {
	SubmissionID  string       // unique id for idempotency
	ParticipantID string       // who submitted
	Predictions   *frame.Frame // prediction table, one row per identifier
	ReceivedAt    time.Time
}

// NewSubmission builds a Submission with a fresh id and receipt timestamp.
func NewSubmission(participantID string, predictions *frame.Frame) Submission {
	return Submission{
		SubmissionID:  uuid.NewString(),
		ParticipantID: participantID,
		Predictions:   predictions,
		ReceivedAt:    time.Now(),
	}
}

// Evaluation captures the outcome of scoring one submission.
type Evaluation struct {
	SubmissionID  string
	ParticipantID string
	Score         float64
	BayesFactor   *float64 // nil on a participant's first submission
	Advanced      bool     // false means the previous best was reported again
	EvaluatedAt   time.Time
}
