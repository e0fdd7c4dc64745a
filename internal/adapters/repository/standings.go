// Package repository defines the standings store interface and its
// in-memory implementation.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vpchung/challengescoring/internal/domain/frame"
	"github.com/vpchung/challengescoring/pkg/metrics"
)

// Entry represents one row of the challenge standings.
type Entry struct {
	Rank          int
	ParticipantID string
	Score         float64
	BayesFactor   *float64 // nil until a participant has resubmitted
	Advanced      bool     // whether the last evaluation advanced the reported score
	SubmissionID  string   // submission backing the reported score
	UpdatedAt     time.Time
}

// Store provides read/write access to the standings state.
type Store interface {
	// Record stores the outcome of a participant's latest evaluation and
	// the predictions future submissions will be compared against.
	Record(ctx context.Context, entry Entry, reference *frame.Frame) error

	// Reference returns the predictions a participant's next submission
	// is compared against. Returns ErrNotFound for unknown participants.
	Reference(ctx context.Context, participantID string) (*frame.Frame, error)

	// Rank returns the current rank and score for a participant.
	// Returns ErrNotFound if the participant is unknown.
	Rank(ctx context.Context, participantID string) (Entry, error)

	// TopN returns the top-N entries ordered by score descending.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of participants in the standings.
	Count(ctx context.Context) int
}

// StandingsStore implements Store with a map plus a lazily rebuilt sorted
// snapshot. Standings change once per evaluation, not per read, so reads
// share the snapshot until the next write invalidates it.
type StandingsStore struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	references map[string]*frame.Frame
	larger     bool // true when higher scores rank first

	snapshot []Entry // sorted, nil when stale
}

// NewStandingsStore creates an empty standings store.
func NewStandingsStore(opts ...StoreOption) *StandingsStore {
	s := &StandingsStore{
		entries:    make(map[string]Entry),
		references: make(map[string]*frame.Frame),
		larger:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record stores the outcome of a participant's latest evaluation.
func (s *StandingsStore) Record(ctx context.Context, entry Entry, reference *frame.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ParticipantID] = entry
	s.references[entry.ParticipantID] = reference
	s.snapshot = nil

	metrics.UpdateParticipantCount(len(s.entries))
	return nil
}

// Reference returns the predictions to compare a participant's next
// submission against.
func (s *StandingsStore) Reference(ctx context.Context, participantID string) (*frame.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.references[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	return ref, nil
}

// Rank returns the current rank and score for a participant.
func (s *StandingsStore) Rank(ctx context.Context, participantID string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[participantID]; !ok {
		return Entry{}, ErrNotFound
	}
	for _, e := range s.sortedLocked() {
		if e.ParticipantID == participantID {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// TopN returns the top-N entries ordered by score.
func (s *StandingsStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := s.sortedLocked()
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]Entry, n)
	copy(out, sorted[:n])
	return out, nil
}

// Count returns the number of participants in the standings.
func (s *StandingsStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// sortedLocked rebuilds the snapshot if stale. Ties break on participant
// id so ordering is stable across rebuilds. Must be called with s.mu held
// for writing.
func (s *StandingsStore) sortedLocked() []Entry {
	if s.snapshot != nil {
		return s.snapshot
	}

	sorted := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			if s.larger {
				return sorted[i].Score > sorted[j].Score
			}
			return sorted[i].Score < sorted[j].Score
		}
		return sorted[i].ParticipantID < sorted[j].ParticipantID
	})
	for i := range sorted {
		sorted[i].Rank = i + 1
	}
	s.snapshot = sorted
	return sorted
}
