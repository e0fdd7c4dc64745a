// Package app provides the core service that ties the submission queue,
// worker pool, deduper, ladder, and standings store together.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	submissionqueue "github.com/vpchung/challengescoring/internal/adapters/mq/queue"
	workerpool "github.com/vpchung/challengescoring/internal/adapters/mq/worker"
	"github.com/vpchung/challengescoring/internal/adapters/repository"
	"github.com/vpchung/challengescoring/internal/domain/dedupe"
	"github.com/vpchung/challengescoring/internal/domain/frame"
	"github.com/vpchung/challengescoring/internal/domain/ladder"
	"github.com/vpchung/challengescoring/internal/domain/model"
	"github.com/vpchung/challengescoring/internal/domain/score"
	"github.com/vpchung/challengescoring/pkg/logger"
	"github.com/vpchung/challengescoring/pkg/metrics"
)

// Service implements submission intake and asynchronous evaluation for
// one challenge.
type Service struct {
	mu sync.RWMutex

	// Core components
	standings  repository.Store
	deduper    dedupe.Deduper
	queue      submissionqueue.Queue
	workerPool *workerpool.Pool

	// Challenge definition
	goldStandard       *frame.Frame
	goldStandardColumn string
	timeColumn         string
	eventColumn        string
	idColumns          []string
	predictionColumn   string
	metricName         string
	metric             score.Metric

	// Ladder parameters
	bootstrapN       int
	reportBootstrapN int
	bayesThreshold   float64
	parallelism      int

	// Harness sizing
	workerCount int
	queueSize   int
	dedupeSize  int

	// Per-participant evaluation locks. The ladder compares each
	// submission against the participant's reference, so evaluations
	// for the same participant must not interleave.
	participantMu map[string]*sync.Mutex
	participantML sync.Mutex

	started bool

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		metricName:       score.MetricPearson,
		bootstrapN:       ladder.DefaultBootstrapN,
		reportBootstrapN: ladder.DefaultReportBootstrapN,
		bayesThreshold:   ladder.DefaultBayesThreshold,
		workerCount:      runtime.NumCPU(),
		queueSize:        10_000,
		dedupeSize:       100_000,
		participantMu:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	if s.goldStandard == nil {
		return ErrMissingGoldStandard
	}
	metric, err := score.Lookup(s.metricName)
	if err != nil {
		return fmt.Errorf("resolving metric %q: %w", s.metricName, err)
	}
	s.metric = metric

	s.standings = repository.NewStandingsStore(
		repository.WithLargerIsBetter(s.orientation()),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = submissionqueue.NewInMemoryQueue(
		submissionqueue.WithCapacity(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "challenge scoring service started",
		logger.String("metric", s.metricName),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("bootstrapN", s.bootstrapN),
		logger.Float64("bayesThreshold", s.bayesThreshold),
	)
	return nil
}

// Stop gracefully shuts down the service, draining queued submissions.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping challenge scoring service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "challenge scoring service stopped")
}

// Submit records and enqueues a submission for asynchronous evaluation.
// Duplicate submission ids are acknowledged without being re-evaluated.
// Returns false when the service is not started or the queue is full.
func (s *Service) Submit(ctx context.Context, sub model.Submission) bool {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return false
	}

	if s.deduper.SeenAndRecord(ctx, sub.SubmissionID) {
		metrics.RecordSubmissionDuplicate()
		s.logger.Debug(ctx, "duplicate submission, skipping",
			logger.String("submissionID", sub.SubmissionID),
			logger.String("participantID", sub.ParticipantID),
		)
		return true
	}

	if !s.queue.Enqueue(ctx, sub) {
		// Allow a retry once there is room again.
		s.deduper.Unrecord(ctx, sub.SubmissionID)
		s.logger.Warn(ctx, "submission rejected, queue full",
			logger.String("submissionID", sub.SubmissionID),
		)
		return false
	}
	return true
}

// Evaluate scores one submission through the ladder and records the
// outcome. It is the workers' entry point.
func (s *Service) Evaluate(ctx context.Context, sub model.Submission) (model.Evaluation, error) {
	// Serialize per participant so the reference read and the standings
	// write form one atomic step.
	lock := s.lockFor(sub.ParticipantID)
	lock.Lock()
	defer lock.Unlock()

	reference, err := s.standings.Reference(ctx, sub.ParticipantID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return model.Evaluation{}, fmt.Errorf("loading reference for %s: %w", sub.ParticipantID, err)
	}

	report, err := ladder.BootLadderBoot(ctx, ladder.Config{
		Predictions:        sub.Predictions,
		PredictionColumn:   s.predictionColumn,
		GoldStandard:       s.goldStandard,
		GoldStandardColumn: s.goldStandardColumn,
		TimeColumn:         s.timeColumn,
		EventColumn:        s.eventColumn,
		IDColumns:          s.idColumns,
		PrevPredictions:    reference,
		Metric:             s.metric,
		BootstrapN:         s.bootstrapN,
		ReportBootstrapN:   s.reportBootstrapN,
		BayesThreshold:     s.bayesThreshold,
		Parallelism:        s.parallelism,
	})
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("evaluating submission %s: %w", sub.SubmissionID, err)
	}

	now := time.Now()
	entry := repository.Entry{
		ParticipantID: sub.ParticipantID,
		Score:         report.Score,
		BayesFactor:   report.BayesFactor,
		Advanced:      report.Decision == ladder.Advance,
		SubmissionID:  sub.SubmissionID,
		UpdatedAt:     now,
	}
	if err := s.standings.Record(ctx, entry, report.ReferencePredictions); err != nil {
		return model.Evaluation{}, fmt.Errorf("recording standings for %s: %w", sub.ParticipantID, err)
	}

	return model.Evaluation{
		SubmissionID:  sub.SubmissionID,
		ParticipantID: sub.ParticipantID,
		Score:         report.Score,
		BayesFactor:   report.BayesFactor,
		Advanced:      report.Decision == ladder.Advance,
		EvaluatedAt:   now,
	}, nil
}

// TopN returns the top N standings entries.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	return s.standings.TopN(ctx, n)
}

// Rank returns the standings entry for one participant.
func (s *Service) Rank(ctx context.Context, participantID string) (repository.Entry, error) {
	return s.standings.Rank(ctx, participantID)
}

// QueueLen returns the number of submissions waiting for evaluation.
func (s *Service) QueueLen(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return s.queue.Len(ctx)
}

// ParticipantCount returns the number of participants in the standings.
func (s *Service) ParticipantCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return s.standings.Count(ctx)
}

func (s *Service) orientation() bool {
	metric, err := score.Lookup(s.metricName)
	if err != nil {
		return true
	}
	return metric.LargerIsBetter
}

func (s *Service) lockFor(participantID string) *sync.Mutex {
	s.participantML.Lock()
	defer s.participantML.Unlock()

	lock, ok := s.participantMu[participantID]
	if !ok {
		lock = &sync.Mutex{}
		s.participantMu[participantID] = lock
	}
	return lock
}
